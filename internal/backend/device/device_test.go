package device

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/exec"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	if !IsAvailable() {
		t.Skip("no WebGPU adapter available")
	}
	e, err := New()
	if err != nil {
		t.Skipf("device init failed: %v", err)
	}
	t.Cleanup(e.Release)
	return e
}

func TestLaunch_BlockDecomposition(t *testing.T) {
	e := newTestEngine(t)
	n := 10000
	seen := make([]int32, n)
	err := e.Launch(n, exec.Tuning{Block: 64}, func(_ *exec.Unit, lo, hi int) {
		if hi-lo > 64 {
			t.Errorf("Block [%d, %d) exceeds size 64", lo, hi)
		}
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

func TestLaunch_ReleasedEngine(t *testing.T) {
	e := &Engine{workers: 4, block: DefaultBlock}
	err := e.Launch(10, exec.Tuning{}, func(*exec.Unit, int, int) {
		t.Error("body ran on a released engine")
	})
	if !errors.Is(err, stride.ErrConfiguration) {
		t.Errorf("Error = %v, want ErrConfiguration", err)
	}
}

func TestSumFloat32(t *testing.T) {
	e := newTestEngine(t)
	data := make([]float32, 4096)
	for i := range data {
		data[i] = 1.0
	}
	got, err := e.SumFloat32(data)
	if err != nil {
		t.Fatalf("SumFloat32 failed: %v", err)
	}
	if got != 4096 {
		t.Errorf("SumFloat32 = %v, want 4096", got)
	}
}

func TestSumFloat32_RaggedTail(t *testing.T) {
	e := newTestEngine(t)
	// Size not a multiple of the workgroup size.
	data := make([]float32, 1000)
	for i := range data {
		data[i] = 0.5
	}
	got, err := e.SumFloat32(data)
	if err != nil {
		t.Fatalf("SumFloat32 failed: %v", err)
	}
	if math.Abs(float64(got)-500) > 1e-3 {
		t.Errorf("SumFloat32 = %v, want 500", got)
	}
}

func TestMinMaxFloat32(t *testing.T) {
	e := newTestEngine(t)
	data := make([]float32, 777)
	for i := range data {
		data[i] = float32(i % 100)
	}
	data[400] = -7
	data[500] = 250

	minGot, err := e.MinFloat32(data)
	if err != nil {
		t.Fatalf("MinFloat32 failed: %v", err)
	}
	if minGot != -7 {
		t.Errorf("MinFloat32 = %v, want -7", minGot)
	}

	maxGot, err := e.MaxFloat32(data)
	if err != nil {
		t.Fatalf("MaxFloat32 failed: %v", err)
	}
	if maxGot != 250 {
		t.Errorf("MaxFloat32 = %v, want 250", maxGot)
	}
}

func TestReductions_Empty(t *testing.T) {
	e := newTestEngine(t)
	sum, err := e.SumFloat32(nil)
	if err != nil || sum != 0 {
		t.Errorf("SumFloat32(nil) = %v, %v, want 0, nil", sum, err)
	}
	minGot, err := e.MinFloat32(nil)
	if err != nil || !math.IsInf(float64(minGot), 1) {
		t.Errorf("MinFloat32(nil) = %v, %v, want +Inf, nil", minGot, err)
	}
}
