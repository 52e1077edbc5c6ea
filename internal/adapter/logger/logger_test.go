package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter("api", "debug", &buf)

	lgr.Error("order_create_failed", "Failed to create order", "req-1",
		map[string]interface{}{"business_id": 7}, errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "api", entry[FieldService])
	assert.Equal(t, "order_create_failed", entry[FieldAction])
	assert.Equal(t, "Failed to create order", entry[FieldMessage])
	assert.Equal(t, "req-1", entry[FieldRequestID])
	assert.Contains(t, entry, FieldTimestamp)

	details, ok := entry[FieldDetails].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, details["business_id"])

	errInfo, ok := entry[FieldError].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", errInfo["msg"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewWithWriter("api", "info", &buf)

	lgr.Debug("noisy", "should be dropped", "", nil)
	assert.Zero(t, buf.Len())

	lgr.Info("kept", "should be written", "", nil)
	assert.NotZero(t, buf.Len())
}
