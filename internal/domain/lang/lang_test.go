package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert.Equal(t, "You will die in 30 seconds. Don't move!", Render(SuicideInSeconds, 30))
	assert.Equal(t, "Suicide cancelled.", Render(SuicideCancelled))
	assert.Equal(t, "no_such_key", Render(Key("no_such_key"), 1))
}
