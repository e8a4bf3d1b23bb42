package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgallion1/pagewise/internal/bridge"
	"github.com/dgallion1/pagewise/internal/paginate"
)

var (
	// ErrSurfaceNotReady classifies a command issued before the surface
	// finished loading. Such commands are queued, not dropped.
	ErrSurfaceNotReady = errors.New("surface: not ready")

	// ErrUnknownSurface is returned for handles that are not (or no longer)
	// mounted.
	ErrUnknownSurface = errors.New("surface: unknown surface")
)

// Handle identifies one mounted surface. A remounted page gets a new handle,
// so commands addressed to a stale handle are dropped.
type Handle struct {
	id   uint64
	page int
}

// Page returns the page index the handle was mounted for.
func (h Handle) Page() int { return h.page }

func (h Handle) String() string { return fmt.Sprintf("surface#%d(page %d)", h.id, h.page) }

// Sink receives scripts for delivery to a surface. Delivery is
// fire-and-forget.
type Sink interface {
	Deliver(h Handle, script string)
}

// BootstrapSink is implemented by sinks that keep the bootstrap script apart
// from commands so it cannot be lost to buffering.
type BootstrapSink interface {
	DeliverBootstrap(h Handle, script string)
}

// Forgetter is implemented by sinks that hold per-surface state.
type Forgetter interface {
	Forget(h Handle)
}

type mounted struct {
	handle   Handle
	page     paginate.Page
	document string
	loaded   bool
	queue    []bridge.Command
}

// Registry tracks the surfaces mounted for one reader. It is owned by a
// single goroutine and is not safe for concurrent use.
type Registry struct {
	sink   Sink
	log    *slog.Logger
	theme  Theme
	nextID uint64
	byPage map[int]*mounted
}

// NewRegistry creates a registry that renders with the given initial theme.
func NewRegistry(sink Sink, theme Theme, log *slog.Logger) *Registry {
	return &Registry{
		sink:   sink,
		log:    log,
		theme:  theme,
		byPage: make(map[int]*mounted),
	}
}

// Theme returns the current theme.
func (r *Registry) Theme() Theme { return r.theme }

// Mount renders a page with the current theme and registers a new handle for
// its index, replacing any surface previously mounted there.
func (r *Registry) Mount(page paginate.Page) (Handle, error) {
	doc, err := RenderDocument(page, r.theme)
	if err != nil {
		return Handle{}, err
	}
	if old, ok := r.byPage[page.Index]; ok {
		r.forget(old.handle)
	}
	r.nextID++
	h := Handle{id: r.nextID, page: page.Index}
	r.byPage[page.Index] = &mounted{handle: h, page: page, document: doc}
	r.log.Debug("surface mounted", "surface", h.String())
	return h, nil
}

// Document returns the rendered HTML for a mounted handle.
func (r *Registry) Document(h Handle) (string, error) {
	m, err := r.lookup(h)
	if err != nil {
		return "", err
	}
	return m.document, nil
}

// Loaded records a load-end signal. The bootstrap script is delivered on
// every load-end, followed by any commands queued while the surface was not
// ready.
func (r *Registry) Loaded(h Handle) error {
	m, err := r.lookup(h)
	if err != nil {
		return err
	}
	boot, err := Bootstrap(r.theme)
	if err != nil {
		return err
	}
	m.loaded = true
	if bs, ok := r.sink.(BootstrapSink); ok {
		bs.DeliverBootstrap(h, boot)
	} else {
		r.sink.Deliver(h, boot)
	}

	queued := m.queue
	m.queue = nil
	for _, cmd := range queued {
		r.deliver(m, cmd)
	}
	return nil
}

// Inject sends a command to a surface. Commands for a surface that has not
// loaded yet are queued; queued theme commands collapse to the latest one.
func (r *Registry) Inject(h Handle, cmd bridge.Command) error {
	m, err := r.lookup(h)
	if err != nil {
		r.log.Debug("dropping command for stale surface", "surface", h.String(), "kind", cmd.Kind)
		return err
	}
	if !m.loaded {
		r.enqueue(m, cmd)
		r.log.Debug("command queued", "surface", h.String(), "kind", cmd.Kind, "reason", ErrSurfaceNotReady)
		return nil
	}
	r.deliver(m, cmd)
	return nil
}

// Send addresses a command by page index.
func (r *Registry) Send(index int, cmd bridge.Command) error {
	m, ok := r.byPage[index]
	if !ok {
		r.log.Debug("no surface mounted for page", "page", index, "kind", cmd.Kind)
		return fmt.Errorf("page %d: %w", index, ErrUnknownSurface)
	}
	return r.Inject(m.handle, cmd)
}

// SetTheme changes the theme and sends it to every mounted surface. Surfaces
// mounted afterwards render with the new theme directly.
func (r *Registry) SetTheme(t Theme) {
	r.theme = t
	for _, index := range r.Mounted() {
		m := r.byPage[index]
		_ = r.Inject(m.handle, bridge.Theme(t.Dark))
	}
}

// Unmount removes the surface mounted for a page index.
func (r *Registry) Unmount(index int) bool {
	m, ok := r.byPage[index]
	if !ok {
		return false
	}
	delete(r.byPage, index)
	r.forget(m.handle)
	r.log.Debug("surface unmounted", "surface", m.handle.String())
	return true
}

// Handle returns the handle mounted for a page index.
func (r *Registry) Handle(index int) (Handle, bool) {
	m, ok := r.byPage[index]
	if !ok {
		return Handle{}, false
	}
	return m.handle, true
}

// Ready reports whether the surface for a page index has loaded.
func (r *Registry) Ready(index int) bool {
	m, ok := r.byPage[index]
	return ok && m.loaded
}

// Queued returns the commands waiting for a surface to load.
func (r *Registry) Queued(h Handle) []bridge.Command {
	m, err := r.lookup(h)
	if err != nil {
		return nil
	}
	out := make([]bridge.Command, len(m.queue))
	copy(out, m.queue)
	return out
}

// Mounted returns the mounted page indexes in ascending order.
func (r *Registry) Mounted() []int {
	out := make([]int, 0, len(r.byPage))
	for index := range r.byPage {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

func (r *Registry) lookup(h Handle) (*mounted, error) {
	m, ok := r.byPage[h.page]
	if !ok || m.handle != h {
		return nil, fmt.Errorf("%s: %w", h, ErrUnknownSurface)
	}
	return m, nil
}

func (r *Registry) enqueue(m *mounted, cmd bridge.Command) {
	if cmd.Kind == bridge.KindTheme {
		for i, q := range m.queue {
			if q.Kind == bridge.KindTheme {
				m.queue = append(m.queue[:i], m.queue[i+1:]...)
				break
			}
		}
	}
	m.queue = append(m.queue, cmd)
}

func (r *Registry) deliver(m *mounted, cmd bridge.Command) {
	script, err := cmd.Script()
	if err != nil {
		r.log.Error("encode command", "surface", m.handle.String(), "error", err)
		return
	}
	r.sink.Deliver(m.handle, script)
}

func (r *Registry) forget(h Handle) {
	if f, ok := r.sink.(Forgetter); ok {
		f.Forget(h)
	}
}
