// Package lspclient owns one LSP child process and its framed JSON-RPC
// connection: spawning, the initialize/initialized/shutdown/exit lifecycle,
// request/notification plumbing, and routing of asynchronous notifications
// into a notifications.Cache.
package lspclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"github.com/sourcegraph/jsonrpc2"

	"mcplsbridge/config"
	"mcplsbridge/errs"
	"mcplsbridge/logger"
	"mcplsbridge/notifications"
	"mcplsbridge/transport"
)

// notifyChannelCap bounds the consumer channel queued publishDiagnostics/
// logMessage/showMessage notifications wait on, per spec.md §5's
// back-pressure policy: a contended cache must never stall the jsonrpc2
// read loop that feeds handler.Handle.
const notifyChannelCap = 256

// Client is one LSP server process plus its jsonrpc2 connection.
type Client struct {
	mu sync.RWMutex

	spec   config.ServerSpec
	cmd    *exec.Cmd
	ctx    context.Context
	cancel context.CancelFunc
	conn   *jsonrpc2.Conn

	status             Status
	positionEncoding   string
	serverCapabilities protocol.ServerCapabilities
	lastError          error

	cache    *notifications.Cache
	notifyCh chan queuedNotification
	dropped  atomic.Uint64
}

// New spawns the child process described by spec but does not yet speak
// LSP to it — call Initialize to complete the handshake.
func New(spec config.ServerSpec, cache *notifications.Cache) (*Client, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, errs.New(errs.InitFailed, fmt.Errorf("stdin pipe: %w", err))
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		cancel()
		return nil, errs.New(errs.InitFailed, fmt.Errorf("stdout pipe: %w", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		cancel()
		return nil, errs.New(errs.InitFailed, fmt.Errorf("stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		cancel()
		return nil, errs.New(errs.InitFailed, fmt.Errorf("spawning %s: %w", spec.Command, err))
	}

	c := &Client{
		spec:             spec,
		cmd:              cmd,
		ctx:              ctx,
		cancel:           cancel,
		status:           Initializing,
		positionEncoding: "utf-16",
		cache:            cache,
		notifyCh:         make(chan queuedNotification, notifyChannelCap),
	}

	rwc := transport.NewStdioTransport(stdin, stdout)
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	c.conn = jsonrpc2.NewConn(ctx, stream, &handler{client: c})

	go transport.DrainStderr(stderr, func(line string) {
		logger.Debug(fmt.Sprintf("[%s stderr] %s", spec.Command, line))
	})
	go c.consumeNotifications()

	logger.Info(fmt.Sprintf("spawned LSP server %s %v (pid %d)", spec.Command, spec.Args, cmd.Process.Pid))
	return c, nil
}

// Status returns the client's current lifecycle state.
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// PositionEncoding returns the encoding negotiated during Initialize.
func (c *Client) PositionEncoding() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.positionEncoding
}

// ServerCapabilities returns the capabilities the server advertised.
func (c *Client) ServerCapabilities() protocol.ServerCapabilities {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverCapabilities
}

// Spec returns the ServerSpec this client was created from.
func (c *Client) Spec() config.ServerSpec { return c.spec }

// requestTimeout returns the per-request timeout methods.go's LSP calls
// should use: the spec's configured timeout_seconds, falling back to
// defaultRequestTimeout when unset.
func (c *Client) requestTimeout() time.Duration {
	if c.spec.TimeoutSeconds > 0 {
		return time.Duration(c.spec.TimeoutSeconds) * time.Second
	}
	return defaultRequestTimeout
}

// Initialize performs the initialize/initialized handshake against
// rootURI, advertising preferred position encodings in the order
// utf-8, utf-16, utf-32, and negotiating whichever the server returns.
func (c *Client) Initialize(ctx context.Context, rootURI string, timeout time.Duration) (*protocol.InitializeResult, error) {
	pid := int32(c.cmd.Process.Pid)
	rootUri := protocol.DocumentUri(rootURI)
	params := protocol.InitializeParams{
		ProcessId: &pid,
		RootUri:   &rootUri,
		Capabilities: protocol.ClientCapabilities{
			General: &protocol.GeneralClientCapabilities{
				PositionEncodings: []protocol.PositionEncodingKind{
					protocol.PositionEncodingKindUTF8,
					protocol.PositionEncodingKindUTF16,
					protocol.PositionEncodingKindUTF32,
				},
			},
		},
	}
	if len(c.spec.InitializationOptions) > 0 {
		params.InitializationOptions = c.spec.InitializationOptions
	}

	var result protocol.InitializeResult
	if err := c.Request(ctx, "initialize", params, &result, timeout); err != nil {
		c.setStatus(Terminated)
		return nil, errs.New(errs.InitFailed, err)
	}

	c.mu.Lock()
	c.serverCapabilities = result.Capabilities
	if result.Capabilities.PositionEncoding != nil {
		c.positionEncoding = string(*result.Capabilities.PositionEncoding)
	}
	c.mu.Unlock()

	if err := c.conn.Notify(ctx, "initialized", protocol.InitializedParams{}); err != nil {
		c.setStatus(Terminated)
		return nil, errs.New(errs.InitFailed, err)
	}

	c.setStatus(Ready)
	return &result, nil
}

// Shutdown sends the shutdown request and marks the client ShuttingDown.
func (c *Client) Shutdown(ctx context.Context) error {
	c.setStatus(ShuttingDown)
	var result any
	return c.Request(ctx, "shutdown", nil, &result, 5*time.Second)
}

// Exit sends the exit notification and marks the client Terminated. Close
// still needs to be called to reap the child process.
func (c *Client) Exit(ctx context.Context) error {
	err := c.conn.Notify(ctx, "exit", nil)
	c.setStatus(Terminated)
	return err
}

// Close tears down the connection and the child process, waiting up to two
// seconds for a graceful exit before force-killing.
func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	c.cancel()

	if c.cmd != nil && c.cmd.Process != nil {
		done := make(chan error, 1)
		go func() { done <- c.cmd.Wait() }()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			<-done
		}
	}

	c.setStatus(Terminated)
	return nil
}

// consumeNotifications drains notifyCh until the client's context is
// cancelled, applying each queued notification to the cache on its own
// goroutine so a contended cache never stalls the jsonrpc2 read loop that
// feeds handler.Handle.
func (c *Client) consumeNotifications() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case n := <-c.notifyCh:
			c.applyNotification(n)
		}
	}
}

func (c *Client) applyNotification(n queuedNotification) {
	if c.cache == nil {
		return
	}
	switch n.kind {
	case notifyDiagnostics:
		c.cache.StoreDiagnostics(n.uri, n.version, n.diags)
	case notifyShowMessage:
		c.cache.StoreMessage(n.level, n.text)
	case notifyLogMessage:
		c.cache.StoreLog(n.level, n.text)
	}
}

// enqueueNotification hands n to the consumer goroutine with a non-blocking
// send, dropping it and incrementing the drop counter on overflow rather
// than stalling the read loop — the back-pressure policy of spec.md §5.
func (c *Client) enqueueNotification(n queuedNotification) {
	select {
	case c.notifyCh <- n:
	default:
		c.dropped.Add(1)
		logger.Warn("notification channel full, dropping notification", c.spec.LanguageID)
	}
}

// DroppedNotifications returns the number of notifications dropped so far
// because the consumer channel was full.
func (c *Client) DroppedNotifications() uint64 {
	return c.dropped.Load()
}

// MarkTerminated transitions the client straight to Terminated and cancels
// its context, for when the downstream connection drops out from under it
// (crash, unexpected exit) rather than through the normal
// Shutdown/Exit/Close sequence. It does not touch the child process, which
// is already gone by the time DisconnectNotify fires. Safe to call more
// than once.
func (c *Client) MarkTerminated() {
	c.setStatus(Terminated)
	c.cancel()
}

// Request sends a request with a timeout, wrapping transport and
// downstream-error failures into the closed error kind enumeration.
func (c *Client) Request(ctx context.Context, method string, params, result any, timeout time.Duration) error {
	if c.ctx.Err() != nil {
		return errs.New(errs.ServerTerminated, c.ctx.Err())
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := c.conn.Call(reqCtx, method, params, result)
	if err == nil {
		return nil
	}

	if reqCtx.Err() == context.DeadlineExceeded {
		return errs.New(errs.Timeout, err)
	}
	if rpcErr, ok := err.(*jsonrpc2.Error); ok {
		return errs.FromLSP(int32(rpcErr.Code), rpcErr.Message, err)
	}
	if errors.Is(err, jsonrpc2.ErrClosed) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.New(errs.ServerTerminated, err)
	}
	c.mu.Lock()
	c.lastError = err
	c.mu.Unlock()
	return errs.New(errs.TransportFraming, err)
}

// Notify sends a notification with no response expected.
func (c *Client) Notify(ctx context.Context, method string, params any) error {
	if c.ctx.Err() != nil {
		return errs.New(errs.ServerTerminated, c.ctx.Err())
	}
	return c.conn.Notify(ctx, method, params)
}

// DisconnectNotify returns a channel closed when the underlying connection
// terminates, letting a dispatcher retire a ClientEntry on crash.
func (c *Client) DisconnectNotify() <-chan struct{} {
	return c.conn.DisconnectNotify()
}
