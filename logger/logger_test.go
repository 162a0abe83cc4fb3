package logger

import (
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	t.Setenv("LIB_LOG_FOLDER", t.TempDir())
	InitLogger(logging.ERROR)
	logBuffer = nil
}

func TestGetLogsRespectsCount(t *testing.T) {
	initTestLogger(t)

	for i := 0; i < 5; i++ {
		Info("entry", i)
	}

	assert.Len(t, GetLogs(3, "INFO"), 3)
	assert.Len(t, GetLogs(5, "INFO"), 5)
	assert.Len(t, GetLogs(10, "INFO"), 5)
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	initTestLogger(t)

	Info("routine entry")
	Error("broken entry")

	logs := GetLogs(10, "ERROR")
	assert.Len(t, logs, 1)
	assert.True(t, strings.Contains(logs[0], "broken entry"))

	// Newest first.
	logs = GetLogs(10, "INFO")
	assert.Len(t, logs, 2)
	assert.True(t, strings.Contains(logs[0], "broken entry"))
}
