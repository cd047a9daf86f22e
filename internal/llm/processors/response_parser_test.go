package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripThinking(t *testing.T) {
	in := "<think>\nLet me work through this CV...\n</think>\n{\"name\": \"x\"}"
	assert.Equal(t, `{"name": "x"}`, StripThinking(in))

	// No thinking block is a no-op
	assert.Equal(t, "plain text", StripThinking("plain text"))

	// Multiple blocks all go
	in = "<think>a</think>middle<think>b</think>"
	assert.Equal(t, "middle", StripThinking(in))
}

func TestExtractJSONFromFence(t *testing.T) {
	in := "Here is the extracted data:\n```json\n{\"personal\": {\"name\": \"Jane Roe\"}}\n```\nLet me know if you need anything else."
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"personal": {"name": "Jane Roe"}}`, out)
}

func TestExtractJSONFromBareFence(t *testing.T) {
	in := "```\n{\"a\": 1}\n```"
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, out)
}

func TestExtractJSONFromProse(t *testing.T) {
	in := `Sure! The result is {"skills": {"languages": ["Go"]}} as requested.`
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills": {"languages": ["Go"]}}`, out)
}

func TestExtractJSONAfterThinking(t *testing.T) {
	in := "<think>The CV mentions {braces} which should not confuse anything</think>\n{\"personal\": {\"name\": \"A\"}}"
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"personal": {"name": "A"}}`, out)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	in := `prefix {"bio": "loves {curly} braces and \"quotes\"", "n": 2} suffix`
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bio": "loves {curly} braces and \"quotes\"", "n": 2}`, out)
}

func TestExtractJSONSkipsInvalidCandidates(t *testing.T) {
	// The first brace opens a non-JSON fragment; the scan must move on to
	// the real object
	in := `{not json at all} and then {"valid": true}`
	out, err := ExtractJSON(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true}`, out)
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not process the document, sorry.")
	require.Error(t, err)

	_, err = ExtractJSON("")
	require.Error(t, err)
}

func TestExtractHTMLFromFence(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><head></head><body>hi</body></html>"
	in := "Here you go:\n```html\n" + doc + "\n```"
	out, err := ExtractHTML(in)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExtractHTMLFromProse(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><body>x</body></html>"
	in := "Sure, here's the portfolio:\n\n" + doc + "\n\nHope you like it!"
	out, err := ExtractHTML(in)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExtractHTMLWithoutDoctype(t *testing.T) {
	doc := "<html><body>minimal</body></html>"
	out, err := ExtractHTML("noise " + doc + " noise")
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExtractHTMLCaseInsensitive(t *testing.T) {
	doc := "<!doctype HTML>\n<HTML><BODY>x</BODY></HTML>"
	out, err := ExtractHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}

func TestExtractHTMLNoDocument(t *testing.T) {
	_, err := ExtractHTML("I can describe the page but here is no markup.")
	require.Error(t, err)

	// Opening tag without a closing tag is incomplete
	_, err = ExtractHTML("<html><body>truncated")
	require.Error(t, err)
}
