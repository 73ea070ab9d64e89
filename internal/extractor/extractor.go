package extractor

import (
	"context"

	"github.com/threadlint/threadlint/internal/descriptor"
)

// Extractor turns raw source text into the structural model the analysis
// engine consumes. Implementations report unparseable input through
// SourceUnit.ParseError rather than an error: a broken file must never abort
// a scan. The error return is reserved for infrastructure failures such as a
// cancelled context.
type Extractor interface {
	Extract(ctx context.Context, path string, content []byte) (*descriptor.SourceUnit, error)
}
