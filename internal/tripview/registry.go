package tripview

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tripwatch.villagelink.org/internal/animator"
	"tripwatch.villagelink.org/internal/feed"
)

// defaultMaxWidgets bounds the live widget set. Widget keys derive from
// caller-supplied query input, so an uncapped registry would let arbitrary
// callers grow goroutines and feed subscriptions without limit.
const defaultMaxWidgets = 64

// Registry hands out one live Widget per distinct (path, layout, header)
// request so repeated viewers of the same route share a marker animation.
type Registry struct {
	composer *Composer
	manager  *feed.Manager
	renderer animator.MapRenderer
	logger   *slog.Logger

	mu         sync.Mutex
	maxWidgets int
	widgets    map[string]*registryEntry
}

type registryEntry struct {
	widget   *Widget
	lastUsed time.Time
}

func NewRegistry(composer *Composer, manager *feed.Manager, renderer animator.MapRenderer, logger *slog.Logger) *Registry {
	return &Registry{
		composer:   composer,
		manager:    manager,
		renderer:   renderer,
		logger:     logger,
		maxWidgets: defaultMaxWidgets,
		widgets:    make(map[string]*registryEntry),
	}
}

// Widget returns the live widget for the given options, starting one on
// first use. Widget lifetimes are owned by the registry, not by the
// requesting caller; when the live set is full the least recently requested
// widget is stopped to make room. Shutdown stops them all.
func (r *Registry) Widget(opts Options) *Widget {
	key := widgetKey(opts)

	r.mu.Lock()
	if e, ok := r.widgets[key]; ok {
		e.lastUsed = time.Now()
		w := e.widget
		r.mu.Unlock()
		return w
	}

	var evicted *Widget
	if len(r.widgets) >= r.maxWidgets {
		evicted = r.evictOldestLocked()
	}

	w := NewWidget(opts, r.composer, r.renderer, r.logger)
	w.Start(context.Background(), r.manager)
	r.widgets[key] = &registryEntry{widget: w, lastUsed: time.Now()}
	r.mu.Unlock()

	if evicted != nil {
		evicted.Stop()
	}
	return w
}

// evictOldestLocked removes the least recently requested widget from the
// map and returns it for the caller to stop outside the lock.
func (r *Registry) evictOldestLocked() *Widget {
	var oldestKey string
	var oldest time.Time
	found := false
	for key, e := range r.widgets {
		if !found || e.lastUsed.Before(oldest) {
			oldestKey = key
			oldest = e.lastUsed
			found = true
		}
	}
	if !found {
		return nil
	}
	w := r.widgets[oldestKey].widget
	delete(r.widgets, oldestKey)
	return w
}

// Shutdown stops every live widget.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	widgets := make([]*Widget, 0, len(r.widgets))
	for _, e := range r.widgets {
		widgets = append(widgets, e.widget)
	}
	r.widgets = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, w := range widgets {
		w.Stop()
	}
}

func widgetKey(opts Options) string {
	var b strings.Builder
	b.WriteString(string(opts.Layout))
	if opts.ShowHeader {
		b.WriteString("|header")
	}
	for _, stop := range opts.DesiredPath {
		b.WriteString("|")
		b.WriteString(stop)
	}
	return b.String()
}
