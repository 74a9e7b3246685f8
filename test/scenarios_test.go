package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearlworks/countdown/internal/platform/logger"
)

func TestScenarios(t *testing.T) {
	results := RunAll(logger.Discard())
	require.Len(t, results, len(Scenarios()))
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.ScenarioName, r.Reason)
	}
}

func TestHarnessCountsCancelReasons(t *testing.T) {
	h, err := NewHarness(logger.Discard())
	require.NoError(t, err)
	t.Cleanup(h.Engine.Shutdown)

	_, err = h.Engine.Suicide(h.Player)
	require.NoError(t, err)
	require.True(t, h.Engine.CancelSuicide(h.Player))

	assert.Equal(t, []string{"explicit"}, h.CancelReasons())
	assert.Equal(t, []string{"You will die in 10 seconds. Don't move!"}, h.Messages())
}
