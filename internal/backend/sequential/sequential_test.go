package sequential

import (
	"testing"

	"github.com/stride-hpc/stride/internal/exec"
)

func TestLaunch_SingleChunkInOrder(t *testing.T) {
	e := New()
	var chunks [][2]int
	err := e.Launch(10, exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
		if u.ID() != 0 {
			t.Errorf("Unit ID = %d, want 0", u.ID())
		}
		chunks = append(chunks, [2]int{lo, hi})
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != [2]int{0, 10} {
		t.Errorf("Chunks = %v, want [[0 10]]", chunks)
	}
}

func TestLaunch_Empty(t *testing.T) {
	e := New()
	err := e.Launch(0, exec.Tuning{}, func(*exec.Unit, int, int) {
		t.Error("Chunk invoked for empty launch")
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
}

func TestLaunch_RunsDeferred(t *testing.T) {
	e := New()
	finished := false
	err := e.Launch(1, exec.Tuning{}, func(u *exec.Unit, _, _ int) {
		u.Defer(func() { finished = true })
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if !finished {
		t.Error("Deferred cleanup did not run")
	}
}

func TestEngineShape(t *testing.T) {
	e := New()
	if e.Name() != "sequential" || e.Width() != 1 || e.Platform() != exec.Host {
		t.Error("Engine identity mismatch")
	}
	if e.Scratch() != nil {
		t.Error("Sequential engine should have no scratch arena")
	}
	if p := e.Exec(); p.Tag() != exec.Sequential || p.Engine() != exec.Engine(e) {
		t.Error("Exec policy not bound to the engine")
	}
}
