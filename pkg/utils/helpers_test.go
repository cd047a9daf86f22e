package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetStringOrDefault(t *testing.T) {
	assert.Equal(t, "override", GetStringOrDefault("override", "fallback"))
	assert.Equal(t, "fallback", GetStringOrDefault("", "fallback"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "2.50s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "1.5m", FormatDuration(90*time.Second))
	assert.Equal(t, "2.0h", FormatDuration(2*time.Hour))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{".pdf", ".txt"}, ".pdf"))
	assert.False(t, Contains([]string{".pdf"}, ".docx"))
	assert.False(t, Contains(nil, ".pdf"))
}

func TestGenerateRequestIDUnique(t *testing.T) {
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}
