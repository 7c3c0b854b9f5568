// Package notifications caches the asynchronous notifications LSP servers
// push outside the request/response cycle: published diagnostics, log
// messages, and show-message popups.
package notifications

import (
	"container/list"
	"sync"
)

const (
	// DefaultDiagnosticsCap bounds the diagnostics map by distinct URI,
	// least-recently-updated evicted on overflow.
	DefaultDiagnosticsCap = 1000
	// DefaultLogCap bounds the window/logMessage ring buffer.
	DefaultLogCap = 500
	// DefaultMessageCap bounds the window/showMessage ring buffer.
	DefaultMessageCap = 100
)

// Diagnostic is a single LSP diagnostic entry as published by
// textDocument/publishDiagnostics, kept opaque to this package (the
// Translator reshapes it for MCP responses).
type Diagnostic = map[string]any

// DiagnosticsEntry is the last publishDiagnostics payload for one URI.
type DiagnosticsEntry struct {
	URI         string
	Version     *int32
	Diagnostics []Diagnostic
	Seq         uint64
}

// LogLevel mirrors window/logMessage's MessageType.
type LogLevel int

const (
	LogError LogLevel = 1
	LogWarn  LogLevel = 2
	LogInfo  LogLevel = 3
	LogDebug LogLevel = 4
)

// LogEntry is one window/logMessage notification.
type LogEntry struct {
	Level     LogLevel
	Message   string
	Timestamp uint64
}

// ServerMessage is one window/showMessage notification.
type ServerMessage struct {
	Type      LogLevel
	Message   string
	Timestamp uint64
}

// Cache is the per-client notification cache described by the Data Model:
// a URI-keyed, LRU-evicted diagnostics map plus two bounded ring buffers.
// All methods are safe for concurrent use; reads are non-blocking snapshots.
type Cache struct {
	mu sync.Mutex

	diagCap int
	diag    map[string]*list.Element // uri -> element holding *DiagnosticsEntry
	diagLRU *list.List                // front = most recently updated

	logCap int
	logs   []LogEntry // ring buffer, oldest at index 0

	msgCap int
	msgs   []ServerMessage

	seq uint64
	now func() uint64
}

// Options configures non-default capacities; zero values fall back to the
// package defaults.
type Options struct {
	DiagnosticsCap int
	LogCap         int
	MessageCap     int
	// Now supplies a monotonic timestamp source; defaults to an internal
	// sequence counter so tests do not depend on wall-clock time.
	Now func() uint64
}

func NewCache(opts Options) *Cache {
	c := &Cache{
		diagCap: orDefault(opts.DiagnosticsCap, DefaultDiagnosticsCap),
		logCap:  orDefault(opts.LogCap, DefaultLogCap),
		msgCap:  orDefault(opts.MessageCap, DefaultMessageCap),
		diag:    make(map[string]*list.Element),
		diagLRU: list.New(),
		now:     opts.Now,
	}
	if c.now == nil {
		c.now = c.nextSeq
	}
	return c
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (c *Cache) nextSeq() uint64 {
	c.seq++
	return c.seq
}

// StoreDiagnostics replaces the cached entry for uri in its entirety (LSP
// diagnostics publications are always a full replacement, never a merge).
// If the insertion pushes the map past its URI cap, the least-recently-
// updated entry (by StoreDiagnostics/touch order, not by this call) is
// evicted first.
func (c *Cache) StoreDiagnostics(uri string, version *int32, diags []Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &DiagnosticsEntry{URI: uri, Version: version, Diagnostics: diags, Seq: c.now()}

	if el, ok := c.diag[uri]; ok {
		el.Value = entry
		c.diagLRU.MoveToFront(el)
		return
	}

	if len(c.diag) >= c.diagCap {
		c.evictOldestLocked()
	}
	el := c.diagLRU.PushFront(entry)
	c.diag[uri] = el
}

func (c *Cache) evictOldestLocked() {
	oldest := c.diagLRU.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*DiagnosticsEntry)
	delete(c.diag, entry.URI)
	c.diagLRU.Remove(oldest)
}

// ClearDiagnostics removes the cached entry for uri, used on did_close.
func (c *Cache) ClearDiagnostics(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.diag[uri]; ok {
		c.diagLRU.Remove(el)
		delete(c.diag, uri)
	}
}

// ClearAllDiagnostics empties the diagnostics map.
func (c *Cache) ClearAllDiagnostics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diag = make(map[string]*list.Element)
	c.diagLRU = list.New()
}

// GetDiagnostics returns a snapshot of the cached diagnostics for uri, and
// whether an entry exists at all. Touching the entry does not count as an
// update for LRU purposes — only StoreDiagnostics refreshes recency.
func (c *Cache) GetDiagnostics(uri string) (DiagnosticsEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.diag[uri]
	if !ok {
		return DiagnosticsEntry{}, false
	}
	return *el.Value.(*DiagnosticsEntry), true
}

// DiagnosticsCount returns the number of distinct URIs currently cached.
func (c *Cache) DiagnosticsCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diag)
}

// StoreLog appends a log entry, dropping the oldest entry if the ring
// buffer is already at capacity.
func (c *Cache) StoreLog(level LogLevel, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = pushRing(c.logs, LogEntry{Level: level, Message: message, Timestamp: c.now()}, c.logCap)
}

// GetLogs returns up to limit of the most recent log entries, newest last,
// optionally filtered to entries at or above minLevel severity (lower
// numeric value == more severe, matching LSP's MessageType ordering).
func (c *Cache) GetLogs(limit int, minLevel LogLevel) []LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var filtered []LogEntry
	for _, e := range c.logs {
		if minLevel != 0 && e.Level > minLevel {
			continue
		}
		filtered = append(filtered, e)
	}
	return tailLimit(filtered, limit)
}

// ClearLogs empties the log ring buffer.
func (c *Cache) ClearLogs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = nil
}

// StoreMessage appends a show-message entry, dropping the oldest on
// overflow.
func (c *Cache) StoreMessage(kind LogLevel, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = pushRing(c.msgs, ServerMessage{Type: kind, Message: message, Timestamp: c.now()}, c.msgCap)
}

// GetMessages returns up to limit of the most recent show-message entries,
// newest last.
func (c *Cache) GetMessages(limit int) []ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ServerMessage, len(c.msgs))
	copy(out, c.msgs)
	return tailLimit(out, limit)
}

// ClearMessages empties the show-message ring buffer.
func (c *Cache) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

func pushRing[T any](buf []T, v T, cap int) []T {
	buf = append(buf, v)
	if len(buf) > cap {
		buf = buf[len(buf)-cap:]
	}
	return buf
}

func tailLimit[T any](s []T, limit int) []T {
	if limit <= 0 || limit >= len(s) {
		return s
	}
	return s[len(s)-limit:]
}
