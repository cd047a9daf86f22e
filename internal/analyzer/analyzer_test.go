package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/config"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

// stubClient returns a canned completion and records what it was asked
type stubClient struct {
	completion string
	err        error
	lastReq    models.CompletionRequest
	unloaded   []string
}

func (s *stubClient) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	s.lastReq = req
	return s.completion, s.err
}

func (s *stubClient) Unload(ctx context.Context, model string) error {
	s.unloaded = append(s.unloaded, model)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestAnalyzeMapsCompletionToRecord(t *testing.T) {
	client := &stubClient{completion: `{
		"personal": {"name": "Jane Roe", "title": "Software Engineer"},
		"links": {"github": "https://github.com/janeroe", "linkedin": "null"},
		"experience": [
			{"company": "Acme", "role": "Software Engineer", "period": "2021-Present"}
		],
		"skills": {"languages": ["Go", "Python"]}
	}`}

	a := NewAnalyzer(testConfig(t), client)
	cv, err := a.Analyze(context.Background(), "Jane Roe\nSoftware Engineer at Acme (2021-Present)")
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", cv.Personal.Name)
	assert.Equal(t, "Software Engineer", cv.Personal.Title)
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Acme", cv.Experience[0].Company)
	assert.Equal(t, "2021-Present", cv.Experience[0].Period)
	assert.Equal(t, []string{"Go", "Python"}, cv.Skills.Languages)

	// "null" string links are pruned, real ones kept
	assert.Equal(t, map[string]string{"github": "https://github.com/janeroe"}, cv.Links)
}

func TestAnalyzeRequestShape(t *testing.T) {
	client := &stubClient{completion: `{"personal": {"name": "A"}, "experience": []}`}
	cfg := testConfig(t)

	a := NewAnalyzer(cfg, client)
	_, err := a.Analyze(context.Background(), "raw cv text goes here")
	require.NoError(t, err)

	assert.Equal(t, cfg.LLM.BrainModel, client.lastReq.Model)
	assert.True(t, client.lastReq.Options.JSONOnly)
	assert.Equal(t, cfg.LLM.AnalysisTemperature, client.lastReq.Options.Temperature)

	// The raw text must reach the model verbatim
	require.Len(t, client.lastReq.Messages, 2)
	assert.Equal(t, models.RoleSystem, client.lastReq.Messages[0].Role)
	assert.Contains(t, client.lastReq.Messages[1].Content, "raw cv text goes here")
}

func TestAnalyzeUnloadsModelAfterRun(t *testing.T) {
	client := &stubClient{completion: `{"personal": {"name": "A"}, "experience": []}`}
	cfg := testConfig(t)

	a := NewAnalyzer(cfg, client)
	_, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.LLM.BrainModel}, client.unloaded)
}

func TestAnalyzeTolerantOfFencedCompletion(t *testing.T) {
	client := &stubClient{completion: "Here is the data:\n```json\n{\"personal\": {\"name\": \"B\"}, \"experience\": []}\n```"}

	a := NewAnalyzer(testConfig(t), client)
	cv, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "B", cv.Personal.Name)
}

func TestAnalyzeNoJSONIsParseError(t *testing.T) {
	client := &stubClient{completion: "I'm sorry, I cannot extract this document."}

	a := NewAnalyzer(testConfig(t), client)
	_, err := a.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, utils.KindExtractionParse, utils.KindOf(err))

	// The model was still unloaded despite the failure
	assert.NotEmpty(t, client.unloaded)
}

func TestAnalyzeMissingKeysKeepsPartialRecord(t *testing.T) {
	// No "experience" key at all: recoverable, fields default
	client := &stubClient{completion: `{"personal": {"name": "C", "title": "Dev"}}`}

	a := NewAnalyzer(testConfig(t), client)
	cv, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "C", cv.Personal.Name)
	assert.Empty(t, cv.Experience)
}

func TestAnalyzeTypeMismatchKeepsDecodedFields(t *testing.T) {
	// "experience" as an object instead of an array: the decoder stops
	// there but personal already decoded
	client := &stubClient{completion: `{"personal": {"name": "D"}, "experience": {"company": "X"}}`}

	a := NewAnalyzer(testConfig(t), client)
	cv, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "D", cv.Personal.Name)
	assert.Empty(t, cv.Experience)
}

func TestAnalyzePropagatesClientError(t *testing.T) {
	client := &stubClient{err: utils.NewServerUnavailableError("connection refused")}

	a := NewAnalyzer(testConfig(t), client)
	_, err := a.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, utils.KindServerUnavailable, utils.KindOf(err))
}

func TestExtractionPromptForbidsInvention(t *testing.T) {
	msgs := buildExtractionMessages("CV BODY")
	require.Len(t, msgs, 2)

	joined := msgs[0].Content + msgs[1].Content
	assert.Contains(t, joined, "NO INVENTION")
	assert.Contains(t, joined, "CV BODY")
	assert.True(t, strings.Contains(joined, "null"), "prompt must instruct null for missing fields")
}
