package diagnostics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticJSON(t *testing.T) {
	b, err := json.Marshal(Bounced(4, -1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"info","code":"SEQ.BOUNCE","summary":"Reversed at chain end","evidence":{"active":4,"direction":-1}}`, string(b))
}

func TestDriverFailed(t *testing.T) {
	d := DriverFailed(errors.New("spi write: EIO"))
	assert.Equal(t, Err, d.Severity)
	assert.Equal(t, CodeDriver, d.Code)
	assert.Equal(t, "spi write: EIO", d.Detail)
	assert.NotEmpty(t, d.SuggestedFixes)
}
