package watcher

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"asset-cache/core/assets"
	"asset-cache/core/vfs"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// KindRouter maps a key to its asset kind. *kinds.Router implements it.
type KindRouter interface {
	KindFor(key string) (string, bool)
}

// Watcher applies filesystem changes under the mounted protocols to the manager.
type Watcher struct {
	cfg      Config
	resolver *vfs.Resolver
	manager  *assets.Manager
	router   KindRouter
	logger   *zap.Logger

	mu  sync.Mutex
	fsw *fsnotify.Watcher
	wg  sync.WaitGroup
}

// New creates a watcher. Start begins watching.
func New(cfg Config, resolver *vfs.Resolver, manager *assets.Manager, router KindRouter, logger *zap.Logger) *Watcher {
	return &Watcher{
		cfg:      cfg,
		resolver: resolver,
		manager:  manager,
		router:   router,
		logger:   logger,
	}
}

// Start watches every mount recursively until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		return errors.New("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	for _, protocol := range w.resolver.Protocols() {
		root, _ := w.resolver.Root(protocol)
		if err := w.addRecursive(root); err != nil {
			w.logger.Warn("Failed to watch mount",
				zap.String("protocol", protocol),
				zap.String("root", root),
				zap.Error(err))
		}
	}

	if w.cfg.InitialScan {
		w.scan()
	}

	w.wg.Add(1)
	go w.run(ctx, fsw)
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fsw := w.fsw
	w.mu.Unlock()
	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) addRecursive(root string) error {
	fs := w.resolver.Fs()
	if exists, err := afero.DirExists(fs, root); err != nil || !exists {
		return os.ErrNotExist
	}
	return afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// scan loads every routable file as part of the startup listing.
func (w *Watcher) scan() {
	for _, protocol := range w.resolver.Protocols() {
		keys, err := w.resolver.Keys(protocol)
		if err != nil {
			w.logger.Warn("Failed to list mount", zap.String("protocol", protocol), zap.Error(err))
			continue
		}
		for _, key := range keys {
			e := NewEvent(key, Created)
			e.Initial = true
			w.Apply(e)
		}
	}
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	debounce := w.cfg.Debounce()
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var batch []fsnotify.Event
	for {
		select {
		case <-ctx.Done():
			_ = fsw.Close()
			return
		case e, ok := <-fsw.Events:
			if !ok {
				return
			}
			if e.Has(fsnotify.Create) {
				if info, err := w.resolver.Fs().Stat(e.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(e.Name); err != nil {
						w.logger.Warn("Failed to watch directory", zap.String("path", e.Name), zap.Error(err))
					}
				}
			}
			batch = append(batch, e)
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		case <-timer.C:
			for _, c := range coalesce(batch) {
				w.applyChange(c)
			}
			batch = nil
		}
	}
}

func (w *Watcher) applyChange(c change) {
	path, ok := w.resolver.ConvertToProtocol(c.path)
	if !ok {
		return
	}
	if c.status != Renamed {
		w.Apply(NewEvent(path, c.status))
		return
	}
	oldPath, ok := w.resolver.ConvertToProtocol(c.oldPath)
	if !ok {
		w.Apply(NewEvent(path, Created))
		return
	}
	w.Apply(NewRenameEvent(oldPath, path))
}

// Apply drives the manager with one change.
// Removed files are unloaded, renamed files follow their entry, and created
// or modified files are reloaded. Startup listings load without reloading.
// Keys with no kind are treated as directories.
func (w *Watcher) Apply(e Event) {
	l := w.logger.With(zap.String("key", e.Key), zap.Stringer("status", e.Status))

	kind, routed := w.router.KindFor(e.Key)
	if !routed {
		w.applyGroup(e)
		return
	}
	b, ok := w.manager.Binding(kind)
	if !ok {
		l.Debug("No storage for kind", zap.String("kind", kind))
		return
	}

	switch e.Status {
	case Removed:
		b.Unload(e.Key)
	case Renamed:
		if oldKind, ok := w.router.KindFor(e.OldKey); ok && oldKind != kind {
			if old, ok := w.manager.Binding(oldKind); ok {
				old.Unload(e.OldKey)
			}
			w.manager.RemoveAssetInfo(e.OldKey)
			b.Load(e.Key, assets.LoadReload)
			return
		}
		b.Rename(e.OldKey, e.Key)
	default:
		if !w.resolver.Exists(e.Key) {
			if e.IsCompiled() {
				l.Error("Source of compiled artifact does not exist, cleaning up", zap.String("path", e.Path))
				if err := w.resolver.Remove(e.Path); err != nil {
					l.Warn("Failed to remove compiled artifact", zap.Error(err))
				}
			}
			return
		}
		flags := assets.LoadReload
		if e.Initial {
			flags = assets.LoadStandard
		}
		b.Load(e.Key, flags)
	}
	l.Debug("Applied file change")
}

// applyGroup handles directory removals and renames across every kind.
func (w *Watcher) applyGroup(e Event) {
	switch e.Status {
	case Removed:
		prefix := e.Key + "/"
		for _, b := range w.manager.Bindings() {
			b.UnloadGroup(prefix)
		}
	case Renamed:
		oldPrefix, newPrefix := e.OldKey+"/", e.Key+"/"
		for _, b := range w.manager.Bindings() {
			for _, entry := range b.Entries(oldPrefix) {
				b.Rename(entry.Key, newPrefix+strings.TrimPrefix(entry.Key, oldPrefix))
			}
		}
		w.manager.RenameAssetInfo(e.OldKey, e.Key)
	}
}
