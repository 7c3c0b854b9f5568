package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDiagnosticsReplacesNotMerges(t *testing.T) {
	c := NewCache(Options{})
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{{"message": "one"}, {"message": "two"}})
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{{"message": "three"}})

	entry, ok := c.GetDiagnostics("file:///a.rs")
	assert.True(t, ok)
	assert.Len(t, entry.Diagnostics, 1)
}

func TestStoreDiagnosticsEmptyListOverwrites(t *testing.T) {
	c := NewCache(Options{})
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{{"message": "one"}})
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{})

	entry, ok := c.GetDiagnostics("file:///a.rs")
	assert.True(t, ok)
	assert.Empty(t, entry.Diagnostics)
}

func TestClearDiagnosticsRemovesEntry(t *testing.T) {
	c := NewCache(Options{})
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{{"message": "one"}})
	c.ClearDiagnostics("file:///a.rs")

	_, ok := c.GetDiagnostics("file:///a.rs")
	assert.False(t, ok)
}

func TestDiagnosticsLRUEvictionAtCapacityBoundary(t *testing.T) {
	c := NewCache(Options{DiagnosticsCap: 2})
	c.StoreDiagnostics("file:///a.rs", nil, nil)
	c.StoreDiagnostics("file:///b.rs", nil, nil)
	c.StoreDiagnostics("file:///c.rs", nil, nil) // evicts a.rs, the least-recently-updated

	_, ok := c.GetDiagnostics("file:///a.rs")
	assert.False(t, ok)
	_, ok = c.GetDiagnostics("file:///b.rs")
	assert.True(t, ok)
	_, ok = c.GetDiagnostics("file:///c.rs")
	assert.True(t, ok)
	assert.Equal(t, 2, c.DiagnosticsCount())
}

func TestDiagnosticsUpdateRefreshesRecency(t *testing.T) {
	c := NewCache(Options{DiagnosticsCap: 2})
	c.StoreDiagnostics("file:///a.rs", nil, nil)
	c.StoreDiagnostics("file:///b.rs", nil, nil)
	c.StoreDiagnostics("file:///a.rs", nil, []Diagnostic{{"message": "refresh"}}) // a.rs touched again
	c.StoreDiagnostics("file:///c.rs", nil, nil)                                  // now b.rs is oldest, evicted

	_, ok := c.GetDiagnostics("file:///b.rs")
	assert.False(t, ok)
	_, ok = c.GetDiagnostics("file:///a.rs")
	assert.True(t, ok)
}

func TestLogRingBufferDropsOldestOnOverflow(t *testing.T) {
	c := NewCache(Options{LogCap: 2})
	c.StoreLog(LogInfo, "one")
	c.StoreLog(LogInfo, "two")
	c.StoreLog(LogInfo, "three")

	logs := c.GetLogs(0, 0)
	assert.Len(t, logs, 2)
	assert.Equal(t, "two", logs[0].Message)
	assert.Equal(t, "three", logs[1].Message)
}

func TestGetLogsFiltersByMinLevel(t *testing.T) {
	c := NewCache(Options{})
	c.StoreLog(LogDebug, "debug msg")
	c.StoreLog(LogError, "error msg")

	logs := c.GetLogs(0, LogWarn)
	assert.Len(t, logs, 1)
	assert.Equal(t, "error msg", logs[0].Message)
}

func TestGetLogsRespectsLimit(t *testing.T) {
	c := NewCache(Options{})
	for i := 0; i < 10; i++ {
		c.StoreLog(LogInfo, "x")
	}
	logs := c.GetLogs(3, 0)
	assert.Len(t, logs, 3)
}

func TestMessageRingBuffer(t *testing.T) {
	c := NewCache(Options{MessageCap: 1})
	c.StoreMessage(LogInfo, "first")
	c.StoreMessage(LogInfo, "second")

	msgs := c.GetMessages(0)
	assert.Len(t, msgs, 1)
	assert.Equal(t, "second", msgs[0].Message)
}

func TestClearAllDiagnostics(t *testing.T) {
	c := NewCache(Options{})
	c.StoreDiagnostics("file:///a.rs", nil, nil)
	c.StoreDiagnostics("file:///b.rs", nil, nil)
	c.ClearAllDiagnostics()
	assert.Equal(t, 0, c.DiagnosticsCount())
}
