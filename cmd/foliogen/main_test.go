package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "foliogen", rootCmd.Use)
	assert.Equal(t, "Foliogen: generate a portfolio website from a CV", rootCmd.Short)
}

func TestGenerateCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"generate"})
	require.NoError(t, err)
	assert.Equal(t, "generate <cv.pdf>", cmd.Use)

	for _, name := range []string{"config", "output", "brain-model", "coder-model"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}
