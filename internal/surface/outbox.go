package surface

import "sync"

// Outbox is a Sink that buffers scripts per surface until the client drains
// them.
type Outbox struct {
	mu      sync.Mutex
	boot    map[Handle]string
	scripts map[Handle][]string
	limit   int
}

// NewOutbox creates an outbox keeping at most limit command scripts per
// surface; the oldest are discarded beyond that. The bootstrap script is
// held apart and never discarded. limit <= 0 means unbounded.
func NewOutbox(limit int) *Outbox {
	return &Outbox{
		boot:    make(map[Handle]string),
		scripts: make(map[Handle][]string),
		limit:   limit,
	}
}

func (o *Outbox) Deliver(h Handle, script string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	q := append(o.scripts[h], script)
	if o.limit > 0 && len(q) > o.limit {
		q = q[len(q)-o.limit:]
	}
	o.scripts[h] = q
}

// DeliverBootstrap stores the bootstrap for a surface, replacing any
// undrained one. Drain returns it ahead of every command.
func (o *Outbox) DeliverBootstrap(h Handle, script string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.boot[h] = script
}

// Drain returns and clears the scripts buffered for a surface.
func (o *Outbox) Drain(h Handle) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	q := o.scripts[h]
	delete(o.scripts, h)
	boot, ok := o.boot[h]
	delete(o.boot, h)
	out := make([]string, 0, len(q)+1)
	if ok {
		out = append(out, boot)
	}
	return append(out, q...)
}

func (o *Outbox) Forget(h Handle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.scripts, h)
	delete(o.boot, h)
}
