package lspclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mcplsbridge/config"
	"mcplsbridge/errs"
	"mcplsbridge/notifications"
)

func TestNewSpawnsProcessAndStartsInitializing(t *testing.T) {
	c, err := New(config.ServerSpec{Command: "cat"}, notifications.NewCache(notifications.Options{}))
	assert.NoError(t, err)
	defer c.Close()

	assert.Equal(t, Initializing, c.Status())
}

func TestNewRejectsMissingCommand(t *testing.T) {
	_, err := New(config.ServerSpec{Command: "definitely-not-a-real-binary-xyz"}, notifications.NewCache(notifications.Options{}))
	assert.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	c, err := New(config.ServerSpec{Command: "cat"}, notifications.NewCache(notifications.Options{}))
	assert.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
	assert.Equal(t, Terminated, c.Status())
}

func TestStatusStringValues(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "terminated", Terminated.String())
}

func TestApplyNotificationStoresDiagnostics(t *testing.T) {
	cache := notifications.NewCache(notifications.Options{})
	c := &Client{cache: cache}
	c.applyNotification(queuedNotification{
		kind:  notifyDiagnostics,
		uri:   "file:///a.go",
		diags: []notifications.Diagnostic{{"message": "x"}},
	})

	entry, ok := cache.GetDiagnostics("file:///a.go")
	assert.True(t, ok)
	assert.Len(t, entry.Diagnostics, 1)
}

func TestEnqueueNotificationDropsOnOverflow(t *testing.T) {
	c := &Client{
		spec:     config.ServerSpec{LanguageID: "go"},
		notifyCh: make(chan queuedNotification, 1),
	}
	c.enqueueNotification(queuedNotification{kind: notifyLogMessage, text: "one"})
	c.enqueueNotification(queuedNotification{kind: notifyLogMessage, text: "two"})

	assert.Equal(t, uint64(1), c.DroppedNotifications())
}

func TestMarkTerminatedCancelsContextAndFailsRequests(t *testing.T) {
	c, err := New(config.ServerSpec{Command: "cat"}, notifications.NewCache(notifications.Options{}))
	assert.NoError(t, err)
	defer c.Close()

	c.MarkTerminated()
	assert.Equal(t, Terminated, c.Status())

	var result any
	err = c.Request(context.Background(), "shutdown", nil, &result, time.Second)
	assert.True(t, errs.Of(err, errs.ServerTerminated))
}
