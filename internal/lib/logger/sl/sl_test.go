package sl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Warn("expected result:", sl.Err(assert.AnError))

	assert.Contains(t, logBuf.String(), "error=\""+assert.AnError.Error()+"\"")
}

func TestErr_Nil(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Info("no error", sl.Err(nil))

	assert.NotContains(t, logBuf.String(), "error=")
}

func TestOp(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Info("with op", sl.Op("Employee.Save"))

	assert.Contains(t, logBuf.String(), "op=Employee.Save")
}
