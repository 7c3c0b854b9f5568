// Package dispatch owns the registry of configured LSP server specs and
// decides, for a given file, which spec handles it — spawning its client
// lazily on first demand and coalescing concurrent spawns of the same spec.
package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mcplsbridge/async"
	"mcplsbridge/config"
	"mcplsbridge/documents"
	"mcplsbridge/errs"
	"mcplsbridge/globmatch"
	"mcplsbridge/logger"
	"mcplsbridge/lspclient"
	"mcplsbridge/notifications"
	"mcplsbridge/utils"
)

// Entry is a spawned and initialized client for one configured
// language, plus the document tracker scoped to that client.
type Entry struct {
	Spec   config.ServerSpec
	Client *lspclient.Client
	Docs   *documents.Tracker
}

// Registry is the Dispatcher and Server Registry component: one instance
// per broker, shared by every MCP tool call.
type Registry struct {
	cfg   *config.Config
	cache *notifications.Cache
	globs *globmatch.Cache

	mu      sync.RWMutex
	entries map[string]*Entry // keyed by LanguageID

	spawning sync.Map // languageID -> *sync.Mutex, coalesces concurrent spawns
}

func NewRegistry(cfg *config.Config, cache *notifications.Cache) *Registry {
	return &Registry{
		cfg:     cfg,
		cache:   cache,
		globs:   globmatch.NewCache(),
		entries: make(map[string]*Entry),
	}
}

// Cache returns the shared notification cache, attached once per broker.
func (r *Registry) Cache() *notifications.Cache { return r.cache }

// InferLanguage picks the language id for path: the extension map is
// consulted first (Open Question (a), resolved extension-map-wins), then
// each spec's file_patterns glob, then project-marker heuristics among
// any specs whose patterns tie.
func (r *Registry) InferLanguage(path string) (string, error) {
	spec, err := r.resolveSpec(path)
	if err != nil {
		return "", err
	}
	return spec.LanguageID, nil
}

// resolveSpec picks the ServerSpec responsible for path: the extension map
// is consulted first (Open Question (a), resolved extension-map-wins), then
// each spec's file_patterns glob, then project-marker heuristics among any
// specs whose patterns tie. The returned spec is the one Dispatch spawns,
// so that whichever spec heuristics picks among several overlapping
// candidates is the one that actually gets spawned, not just its language
// id (which DispatchLanguage would then have to re-resolve ambiguously).
func (r *Registry) resolveSpec(path string) (*config.ServerSpec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "" {
		if lang, ok := r.cfg.LanguageForExtension(ext); ok {
			if spec, ok := r.cfg.ServerSpecForLanguage(lang); ok {
				return spec, nil
			}
		}
	}

	slashPath := filepath.ToSlash(path)
	var candidates []config.ServerSpec
	for _, spec := range r.cfg.LSPServers {
		if r.globs.MatchAny(spec.FilePatterns, slashPath) {
			candidates = append(candidates, spec)
		}
	}

	if len(candidates) == 0 {
		return nil, errs.Newf(errs.NoServerForFile, "no configured LSP server matches %s", path)
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	chosen := r.resolveByHeuristics(path, candidates)
	if chosen == nil {
		return nil, errs.Newf(errs.HeuristicsReject, "multiple servers match %s and none win the project-marker heuristics", path)
	}
	return chosen, nil
}

// resolveByHeuristics walks upward from path's directory, up to
// heuristics_max_depth levels, looking for each candidate's configured
// project markers. The first candidate whose marker is found nearest to
// path wins; if no candidate's markers are found anywhere up the tree, nil
// is returned so the caller can reject with HeuristicsReject.
func (r *Registry) resolveByHeuristics(path string, candidates []config.ServerSpec) *config.ServerSpec {
	dir := filepath.Dir(path)
	maxDepth := r.cfg.Workspace.HeuristicsMaxDepth
	if maxDepth <= 0 {
		maxDepth = 4
	}

	for depth := 0; depth < maxDepth; depth++ {
		for i := range candidates {
			for _, marker := range candidates[i].Heuristics.ProjectMarkers {
				if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
					return &candidates[i]
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil
}

// Dispatch returns the Entry responsible for path, spawning and
// initializing its client on first demand. Concurrent Dispatch calls for
// the same language id coalesce onto a single spawn.
func (r *Registry) Dispatch(ctx context.Context, path string) (*Entry, error) {
	spec, err := r.resolveSpec(path)
	if err != nil {
		return nil, err
	}
	return r.dispatchSpec(ctx, *spec)
}

// DispatchLanguage returns the Entry for an already-known language id,
// using the first configured spec declared for that language.
func (r *Registry) DispatchLanguage(ctx context.Context, lang string) (*Entry, error) {
	spec, ok := r.cfg.ServerSpecForLanguage(lang)
	if !ok {
		return nil, errs.Newf(errs.NoServerForFile, "no [[lsp_servers]] configured for language %q", lang)
	}
	return r.dispatchSpec(ctx, *spec)
}

// dispatchSpec returns the Entry for spec, spawning and initializing its
// client on first demand. Concurrent dispatchSpec calls for the same
// language id coalesce onto a single spawn.
func (r *Registry) dispatchSpec(ctx context.Context, spec config.ServerSpec) (*Entry, error) {
	lang := spec.LanguageID

	r.mu.RLock()
	entry, ok := r.entries[lang]
	r.mu.RUnlock()
	if ok && entry.Client.Status() == lspclient.Ready {
		return entry, nil
	}

	lockIface, _ := r.spawning.LoadOrStore(lang, &sync.Mutex{})
	lock := lockIface.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	entry, ok = r.entries[lang]
	r.mu.RUnlock()
	if ok && entry.Client.Status() == lspclient.Ready {
		return entry, nil
	}

	return r.spawn(ctx, spec)
}

func (r *Registry) spawn(ctx context.Context, spec config.ServerSpec) (*Entry, error) {
	client, err := lspclient.New(spec, r.cache)
	if err != nil {
		logger.Error("failed to spawn LSP server", spec.Command, err)
		return nil, err
	}

	rootURI := ""
	if len(r.cfg.Workspace.Roots) > 0 {
		rootURI = utils.FilePathToURI(r.cfg.Workspace.Roots[0])
	}

	timeout := time.Duration(spec.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if _, err := client.Initialize(ctx, rootURI, timeout); err != nil {
		logger.Error("LSP server failed to initialize", spec.LanguageID, err)
		client.Close()
		return nil, err
	}

	entry := &Entry{Spec: spec, Client: client, Docs: documents.NewTracker()}

	r.mu.Lock()
	r.entries[spec.LanguageID] = entry
	r.mu.Unlock()

	go r.watchDisconnect(spec.LanguageID, client)

	return entry, nil
}

// watchDisconnect retires lang's entry the moment its client's transport
// drops: the client is marked Terminated so in-flight and future Requests
// fail ServerTerminated instead of a raw transport error, and the entry is
// removed from r.entries so the next Dispatch respawns a fresh client
// rather than handing back the dead one.
func (r *Registry) watchDisconnect(lang string, client *lspclient.Client) {
	<-client.DisconnectNotify()
	logger.Warn("LSP server disconnected", lang)
	client.MarkTerminated()

	r.mu.Lock()
	entry, ok := r.entries[lang]
	if ok && entry.Client == client {
		delete(r.entries, lang)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	for _, uri := range entry.Docs.CloseAll() {
		r.cache.ClearDiagnostics(uri)
	}
}

// CloseAll shuts down every spawned client, used at broker shutdown. Each
// client's shutdown/exit/close sequence involves a request round-trip and a
// process wait, so the entries are drained concurrently rather than one at
// a time.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.entries = make(map[string]*Entry)
	r.mu.Unlock()

	if len(entries) == 0 {
		return
	}

	ops := make([]func() (struct{}, error), 0, len(entries))
	for _, e := range entries {
		e := e
		ops = append(ops, func() (struct{}, error) {
			if e.Client.Status() == lspclient.Ready {
				_ = e.Client.Shutdown(ctx)
				_ = e.Client.Exit(ctx)
			}
			_ = e.Client.Close()
			return struct{}{}, nil
		})
	}

	// async.Map's ctx is only used to abandon waiting on stragglers; the
	// shutdown goroutines themselves always run to completion and close the
	// child process regardless.
	if _, err := async.Map(ctx, ops); err != nil {
		logger.Warn("CloseAll: context cancelled before all clients finished shutting down", err)
	}
}

// Entries returns a snapshot of every currently spawned entry, used by
// fan-out tools (workspace symbol search, multi-language operations).
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}
