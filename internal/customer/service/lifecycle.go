package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/roommanager/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const watchDebounce = 250 * time.Millisecond

// RegisterInitialLoad fills the index before the HTTP server starts serving.
// A failure aborts startup.
func RegisterInitialLoad(lc fx.Lifecycle, l *Loader) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := l.Load(ctx)
			return err
		},
	})
}

type Watcher struct {
	log    *zap.Logger
	loader *Loader
	path   string
	fs     *fsnotify.Watcher
	done   chan struct{}
}

// NewWatcher watches the directory holding path, so editors that replace the
// file instead of writing in place still trigger a reload.
func NewWatcher(log *zap.Logger, loader *Loader, path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		_ = fs.Close()
		return nil, err
	}
	return &Watcher{
		log:    log.Named("customer.watcher"),
		loader: loader,
		path:   filepath.Clean(path),
		fs:     fs,
		done:   make(chan struct{}),
	}, nil
}

func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() { w.reload(ctx) })
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	w.log.Info("customers file changed", zap.String("path", w.path))
	if _, err := w.loader.Load(ctx); err != nil {
		w.log.Error("reload after file change failed", zap.Error(err))
	}
}

func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

// RegisterWatcher starts the file watcher when the file source is in use and
// CUSTOMERS_WATCH is enabled.
func RegisterWatcher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, l *Loader) {
	if !cfg.Customers.Watch || !cfg.UsesSource(config.SourceFile) {
		return
	}
	var (
		w      *Watcher
		cancel context.CancelFunc
	)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			w, err = NewWatcher(log, l, cfg.Customers.File)
			if err != nil {
				return err
			}
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			go w.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			if w == nil {
				return nil
			}
			cancel()
			return w.Close()
		},
	})
}
