package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolStateColor_MapsKnownStates(t *testing.T) {
	assert.Equal(t, StateRunning, ToolStateColor("running"))
	assert.Equal(t, StateSuccess, ToolStateColor("success"))
	assert.Equal(t, StateFailed, ToolStateColor("failed"))
	assert.Equal(t, StateSkipped, ToolStateColor("skipped"))
}

func TestToolStateColor_DefaultsToPending(t *testing.T) {
	assert.Equal(t, StatePending, ToolStateColor("pending"))
	assert.Equal(t, StatePending, ToolStateColor("unknown"))
	assert.Equal(t, StatePending, ToolStateColor(""))
}
