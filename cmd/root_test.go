package cmd

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownSignalsAreCatchable(t *testing.T) {
	assert.Contains(t, shutdownSignals, os.Interrupt)
	assert.Contains(t, shutdownSignals, syscall.SIGTERM)
	assert.NotContains(t, shutdownSignals, os.Kill)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "reclink", root.Name())

	eval, _, err := root.Find([]string{"eval"})
	require.NoError(t, err)
	assert.Equal(t, "eval", eval.Name())

	for _, name := range []string{"run", "report", "inspect"} {
		sub, _, err := root.Find([]string{"eval", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}
