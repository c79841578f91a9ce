// Package workspace models the side panel: the ordered set of open leaves
// (tabs) and the registry tracking which leaf displays which pinned entry.
package workspace

import "github.com/marcus/pinboard/internal/vault"

// Leaf is one open tab in the side panel. Leaves are created by the panel
// and identified by pointer; a detached leaf is never resurrected.
type Leaf struct {
	File   *vault.File
	Pinned bool
	Scroll int
}

// Panel is the side panel's ordered leaf list plus the active index.
type Panel struct {
	leaves []*Leaf
	active int
}

// NewPanel returns an empty side panel.
func NewPanel() *Panel {
	return &Panel{}
}

// Leaves returns the authoritative ordered set of live leaves.
func (p *Panel) Leaves() []*Leaf {
	out := make([]*Leaf, len(p.leaves))
	copy(out, p.leaves)
	return out
}

// Len returns the number of open leaves.
func (p *Panel) Len() int { return len(p.leaves) }

// Active returns the focused leaf, or nil when the panel is empty.
func (p *Panel) Active() *Leaf {
	if len(p.leaves) == 0 {
		return nil
	}
	p.normalizeActive()
	return p.leaves[p.active]
}

// ActiveIndex returns the focused leaf index.
func (p *Panel) ActiveIndex() int {
	p.normalizeActive()
	return p.active
}

// FindByPath returns the leaf displaying the file at the given
// vault-relative path, or nil. This is the duplicate-prevention lookup: at
// most one leaf per distinct file is ever open.
func (p *Panel) FindByPath(path string) *Leaf {
	for _, l := range p.leaves {
		if l.File != nil && l.File.Path == path {
			return l
		}
	}
	return nil
}

// Open appends a blank leaf and focuses it.
func (p *Panel) Open() *Leaf {
	l := &Leaf{}
	p.leaves = append(p.leaves, l)
	p.active = len(p.leaves) - 1
	return l
}

// Reveal focuses an existing leaf. No-op when the leaf is not in the panel.
func (p *Panel) Reveal(l *Leaf) {
	for i, cur := range p.leaves {
		if cur == l {
			p.active = i
			return
		}
	}
}

// Detach closes a leaf, removing it from the panel. Returns true if the
// leaf was open.
func (p *Panel) Detach(l *Leaf) bool {
	for i, cur := range p.leaves {
		if cur == l {
			p.closeAt(i)
			return true
		}
	}
	return false
}

// CloseAt closes the leaf at index i (user-driven close).
func (p *Panel) CloseAt(i int) bool {
	if i < 0 || i >= len(p.leaves) {
		return false
	}
	p.closeAt(i)
	return true
}

func (p *Panel) closeAt(i int) {
	p.leaves = append(p.leaves[:i], p.leaves[i+1:]...)
	if len(p.leaves) == 0 {
		p.active = 0
		return
	}
	if i < p.active {
		p.active--
	} else if i == p.active && p.active >= len(p.leaves) {
		p.active = len(p.leaves) - 1
	}
}

// Cycle moves focus by delta, wrapping.
func (p *Panel) Cycle(delta int) {
	if len(p.leaves) < 2 {
		return
	}
	p.normalizeActive()
	idx := (p.active + delta) % len(p.leaves)
	if idx < 0 {
		idx += len(p.leaves)
	}
	p.active = idx
}

// Contains reports whether the leaf is currently open in the panel.
func (p *Panel) Contains(l *Leaf) bool {
	for _, cur := range p.leaves {
		if cur == l {
			return true
		}
	}
	return false
}

func (p *Panel) normalizeActive() {
	if p.active < 0 || p.active >= len(p.leaves) {
		p.active = 0
	}
}
