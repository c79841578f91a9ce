package workspace

import "testing"

func TestRegisterAndForget(t *testing.T) {
	r := NewRegistry()
	a := &Leaf{}
	b := &Leaf{}

	r.Register("note-1", a)
	if r.Leaf("note-1") != a {
		t.Fatal("Leaf(note-1) != registered leaf")
	}

	// Overwrite without closing: the old leaf stays alive, the id just
	// points elsewhere.
	r.Register("note-1", b)
	if r.Leaf("note-1") != b {
		t.Error("Register did not overwrite")
	}

	r.Forget("note-1")
	if r.Leaf("note-1") != nil {
		t.Error("Forget left the association")
	}
	r.Forget("note-1") // idempotent
}

func TestTrackedDeduplicates(t *testing.T) {
	r := NewRegistry()
	shared := &Leaf{}
	r.Register("note-1", shared)
	r.Register("note-2", shared)
	r.Register("note-3", &Leaf{})

	if got := len(r.Tracked()); got != 2 {
		t.Errorf("Tracked() returned %d leaves, want 2", got)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestSweepDropsDeadLeaves(t *testing.T) {
	r := NewRegistry()
	alive := &Leaf{}
	dead := &Leaf{}
	r.Register("note-1", alive)
	r.Register("note-2", dead)
	r.Register("note-3", dead)

	r.Sweep([]*Leaf{alive})

	if r.Leaf("note-1") != alive {
		t.Error("Sweep dropped a live association")
	}
	if r.Leaf("note-2") != nil || r.Leaf("note-3") != nil {
		t.Error("Sweep kept associations to a closed leaf")
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	r.Register("note-1", &Leaf{})
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", r.Len())
	}
}
