package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared/config"
)

func sampleResults() []findings.Result {
	return []findings.Result{
		findings.NewResult("src/Cache.java", 1, []findings.Issue{
			{
				Category:    findings.CategorySharedMutableState,
				Class:       "SessionCache",
				Line:        12,
				Severity:    findings.SeverityHigh,
				Description: "non-final field 'sessions' of type 'HashMap<String, Session>' is shared mutable state",
			},
		}),
		findings.NewErrorResult("src/Broken.java", "syntax errors left no parseable class declarations"),
		findings.NewResult("src/Constants.java", 1, nil),
	}
}

func newAdvisor(t *testing.T, url string) *Advisor {
	t.Helper()
	t.Setenv(TokenEnvVar, "secret")
	cfg := &config.Config{Advisor: config.Advisor{Enabled: true, URL: url, Model: "test-model"}}
	a, err := New(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	return a
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		advisor config.Advisor
		token   string
		wantErr bool
	}{
		{name: "complete", advisor: config.Advisor{URL: "https://llm.example/v1", Model: "m"}, token: "secret"},
		{name: "missing url", advisor: config.Advisor{Model: "m"}, token: "secret", wantErr: true},
		{name: "missing model", advisor: config.Advisor{URL: "https://llm.example/v1"}, token: "secret", wantErr: true},
		{name: "missing token", advisor: config.Advisor{URL: "https://llm.example/v1", Model: "m"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenEnvVar, tt.token)
			_, err := New(&config.Config{Advisor: tt.advisor}, hclog.NewNullLogger())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecommendAttachesProse(t *testing.T) {
	var gotRequest chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Replace the HashMap with ConcurrentHashMap.  "}}]}`))
	}))
	defer server.Close()

	a := newAdvisor(t, server.URL)
	got := a.Recommend(context.Background(), sampleResults())

	require.Len(t, got, 1)
	assert.Equal(t, "Replace the HashMap with ConcurrentHashMap.", got["src/Cache.java"])

	assert.Equal(t, "test-model", gotRequest.Model)
	require.Len(t, gotRequest.Messages, 2)
	assert.Contains(t, gotRequest.Messages[1].Content, "SessionCache")
	assert.Contains(t, gotRequest.Messages[1].Content, "line 12")
}

func TestRecommendDegradesOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	a := newAdvisor(t, server.URL)
	got := a.Recommend(context.Background(), sampleResults())

	assert.Empty(t, got)
}

func TestRecommendEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	a := newAdvisor(t, server.URL)
	got := a.Recommend(context.Background(), sampleResults())

	assert.Empty(t, got)
}

func TestApply(t *testing.T) {
	results := sampleResults()
	Apply(results, map[string]string{"src/Cache.java": "Use ConcurrentHashMap."})

	assert.Equal(t, "Use ConcurrentHashMap.", results[0].Recommendation)
	assert.Empty(t, results[1].Recommendation)
	assert.Empty(t, results[2].Recommendation)
	assert.True(t, results[0].Issues[0].Severity >= findings.SeverityHigh, "issues stay untouched")
}

func TestIssueDigest(t *testing.T) {
	digest := issueDigest(sampleResults()[0])

	assert.Contains(t, digest, "Findings for src/Cache.java")
	assert.Contains(t, digest, "[HIGH] SHARED_MUTABLE_STATE in class SessionCache (line 12)")
	assert.Contains(t, digest, "shared mutable state")
}
