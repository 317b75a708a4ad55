package webkit

import (
	"testing"

	webkitlib "github.com/bnema/puregotk-webkit/webkit"
	"github.com/stretchr/testify/assert"

	"github.com/Zeal1001/casement/internal/application/port"
)

func TestWebProcessTerminationReasonString(t *testing.T) {
	assert.Equal(t, "crashed", webProcessTerminationReasonString(webkitlib.WebProcessCrashedValue))
	assert.Equal(t, "exceeded_memory", webProcessTerminationReasonString(webkitlib.WebProcessExceededMemoryLimitValue))
	assert.Equal(t, "terminated_by_api", webProcessTerminationReasonString(webkitlib.WebProcessTerminatedByApiValue))
	assert.Equal(t, "unknown", webProcessTerminationReasonString(webkitlib.WebProcessTerminationReason(99)))
}

func TestMapTerminationReason(t *testing.T) {
	assert.Equal(t, port.CrashProcessDied, mapTerminationReason(webkitlib.WebProcessCrashedValue))
	assert.Equal(t, port.CrashMemoryExceeded, mapTerminationReason(webkitlib.WebProcessExceededMemoryLimitValue))
	assert.Equal(t, port.CrashTerminatedByAPI, mapTerminationReason(webkitlib.WebProcessTerminatedByApiValue))
	assert.Equal(t, port.CrashUnknown, mapTerminationReason(webkitlib.WebProcessTerminationReason(99)))
}

func TestMappedReasonsRenderForNotices(t *testing.T) {
	assert.Equal(t, "crashed", mapTerminationReason(webkitlib.WebProcessCrashedValue).String())
	assert.Equal(t, "exceeded_memory", mapTerminationReason(webkitlib.WebProcessExceededMemoryLimitValue).String())
}
