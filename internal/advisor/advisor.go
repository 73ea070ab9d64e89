package advisor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/httpclient"
)

// TokenEnvVar names the environment variable carrying the advisor API token.
// The token is never read from the config file.
const TokenEnvVar = "THREADLINT_ADVISOR_TOKEN"

const systemPrompt = "You are a Java concurrency reviewer. For the reported findings, explain in one short paragraph how to make the class safe for concurrent use. Name the exact JDK types to switch to and avoid generic advice."

// Advisor turns per-unit issue digests into remediation prose by calling an
// OpenAI-compatible chat-completions endpoint.
type Advisor struct {
	httpc  *resty.Client
	model  string
	logger hclog.Logger
}

// New builds an advisor from the config. It fails when the advisor section is
// incomplete or the API token is missing from the environment.
func New(cfg *config.Config, logger hclog.Logger) (*Advisor, error) {
	if cfg.Advisor.URL == "" || cfg.Advisor.Model == "" {
		return nil, fmt.Errorf("advisor requires both url and model in the config")
	}
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return nil, fmt.Errorf("advisor token is not set; export %s", TokenEnvVar)
	}

	httpc := httpclient.InitializeRestyClient(logger, cfg)
	httpc.SetBaseURL(cfg.Advisor.URL)
	httpc.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))

	return &Advisor{
		httpc:  httpc,
		model:  cfg.Advisor.Model,
		logger: logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend requests remediation prose for every unit that produced issues.
// Failed requests are logged and skipped, so a flaky endpoint degrades to
// fewer recommendations instead of a failed scan. The returned map is keyed
// by unit path.
func (a *Advisor) Recommend(ctx context.Context, results []findings.Result) map[string]string {
	recommendations := make(map[string]string)
	for _, result := range results {
		if result.Err || len(result.Issues) == 0 {
			continue
		}
		text, err := a.recommendUnit(ctx, result)
		if err != nil {
			a.logger.Warn("recommendation request failed", "path", result.Path, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		recommendations[result.Path] = text
	}
	return recommendations
}

func (a *Advisor) recommendUnit(ctx context.Context, result findings.Result) (string, error) {
	var r chatResponse
	resp, err := a.httpc.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: a.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: issueDigest(result)},
			},
			Temperature: 0.2,
		}).
		SetResult(&r).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%d on requesting recommendations for '%s'", resp.StatusCode(), result.Path)
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("empty completion for '%s'", result.Path)
	}
	text := strings.TrimSpace(r.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion for '%s'", result.Path)
	}
	return text, nil
}

// issueDigest renders a unit's findings as the user prompt.
func issueDigest(result findings.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Findings for %s:\n", result.Path)
	for _, issue := range result.Issues {
		fmt.Fprintf(&b, "- [%s] %s in class %s", strings.ToUpper(issue.Severity.String()), issue.Category, issue.Class)
		if issue.Line > 0 {
			fmt.Fprintf(&b, " (line %d)", issue.Line)
		}
		fmt.Fprintf(&b, ": %s\n", issue.Description)
	}
	return b.String()
}

// Apply copies the recommendations onto the matching results. Issues and
// verdicts stay untouched.
func Apply(results []findings.Result, recommendations map[string]string) {
	for i := range results {
		if text, ok := recommendations[results[i].Path]; ok {
			results[i].Recommendation = text
		}
	}
}
