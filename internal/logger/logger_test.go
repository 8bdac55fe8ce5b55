package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeWithWriter(t *testing.T) {
	t.Run("JSON at info hides debug", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWithWriter(&buf, "info", "json")

		Debug("hidden")
		Info("borrowing created", "borrowingID", "b-1")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"borrowing created"`)
		assert.Contains(t, out, `"borrowingID":"b-1"`)
	})

	t.Run("Text at debug shows tracing", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWithWriter(&buf, "DEBUG", "text")

		EnterMethod("borrowingRepository.Create", "memberCode", "M001")
		DatabaseResult("borrowingRepository.Update", 1, nil)

		out := buf.String()
		assert.Contains(t, out, "method=borrowingRepository.Create")
		assert.Contains(t, out, "event=enter")
		assert.Contains(t, out, "rows_affected=1")
	})

	t.Run("Errors always logged", func(t *testing.T) {
		var buf bytes.Buffer
		InitializeWithWriter(&buf, "error", "text")

		DatabaseResult("borrowingRepository.ListOverdue", 0, errors.New("timeout"))
		WithJob("ReportOverdueBorrowings").Warn("dropped")

		out := buf.String()
		assert.Contains(t, out, "Database call failed")
		assert.Contains(t, out, "error=timeout")
		assert.NotContains(t, out, "dropped")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}
