package workspace

// Registry maps entry ids to the live leaf currently displaying that entry.
// It is a cache over the panel's authoritative leaf set, never persisted,
// rebuilt from scratch each session, and revalidated against the panel via
// Sweep on every layout change.
type Registry struct {
	leaves map[string]*Leaf
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{leaves: make(map[string]*Leaf)}
}

// Register associates an entry id with a leaf, overwriting any prior
// association without closing it. Closing first is the caller's job.
func (r *Registry) Register(id string, l *Leaf) {
	r.leaves[id] = l
}

// Forget removes an association without closing the underlying leaf.
func (r *Registry) Forget(id string) {
	delete(r.leaves, id)
}

// Leaf returns the leaf registered under id, or nil.
func (r *Registry) Leaf(id string) *Leaf {
	return r.leaves[id]
}

// Len returns the number of tracked associations.
func (r *Registry) Len() int { return len(r.leaves) }

// Tracked returns every currently tracked leaf. The same leaf appears once
// even when multiple ids map to it.
func (r *Registry) Tracked() []*Leaf {
	seen := make(map[*Leaf]struct{}, len(r.leaves))
	var out []*Leaf
	for _, l := range r.leaves {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Sweep drops every association whose leaf is not in the authoritative live
// set. This keeps the registry consistent when a leaf is closed outside the
// reconciler's control; it runs on every layout-change notification.
func (r *Registry) Sweep(live []*Leaf) {
	alive := make(map[*Leaf]struct{}, len(live))
	for _, l := range live {
		alive[l] = struct{}{}
	}
	for id, l := range r.leaves {
		if _, ok := alive[l]; !ok {
			delete(r.leaves, id)
		}
	}
}

// Clear drops all associations. Leaves are not closed; callers detach them
// before or after as appropriate.
func (r *Registry) Clear() {
	r.leaves = make(map[string]*Leaf)
}
