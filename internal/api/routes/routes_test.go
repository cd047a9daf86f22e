package routes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/config"
)

func TestGenerationBudgetCoversBothPhases(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.LLM.Timeout = 600 * time.Second
	cfg.Server.ReadTimeout = 30 * time.Second

	budget := generationBudget(cfg)
	assert.Equal(t, 1230*time.Second, budget)

	// Two calls each running up to the per-call limit must both fit: a slow
	// first phase may not starve the second
	assert.GreaterOrEqual(t, budget, 2*cfg.LLM.Timeout)
}
