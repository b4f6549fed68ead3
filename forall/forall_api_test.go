// Copyright 2025 Stride HPC Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package forall_test

import (
	"math"
	"testing"

	"github.com/stride-hpc/stride/backend/pool"
	"github.com/stride-hpc/stride/backend/sequential"
	"github.com/stride-hpc/stride/exec"
	"github.com/stride-hpc/stride/forall"
	"github.com/stride-hpc/stride/indexset"
	"github.com/stride-hpc/stride/reduce"
	"github.com/stride-hpc/stride/segment"
)

// TestDaxpy exercises the canonical saxpy-style loop through the public
// API on two backends.
func TestDaxpy(t *testing.T) {
	n := 1024
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = 1
	}

	r, err := segment.NewRange(0, n)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}

	a := 2.0
	eng := pool.New(pool.WithWorkers(4))
	if err := forall.Forall(eng.Exec(), r, func(i int) {
		y[i] += a * x[i]
	}); err != nil {
		t.Fatalf("Forall failed: %v", err)
	}

	for i := range y {
		if y[i] != 1+a*float64(i) {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], 1+a*float64(i))
		}
	}
}

// TestDotProduct runs a reduction through ForallUnit with an explicit
// reducer, the way long-lived reducers are meant to be used.
func TestDotProduct(t *testing.T) {
	n := 2048
	x := make([]float64, n)
	y := make([]float64, n)
	want := 0.0
	for i := range x {
		x[i] = float64(i % 17)
		y[i] = float64(i % 13)
		want += x[i] * y[i]
	}

	r, _ := segment.NewRange(0, n)
	eng := pool.New(pool.WithWorkers(4))
	p := eng.Reduce()

	dot, err := reduce.NewSum(p, 0.0)
	if err != nil {
		t.Fatalf("NewSum failed: %v", err)
	}
	defer dot.Close()

	err = forall.ForallUnit(p, r, func(u *exec.Unit) func(int) {
		d := dot.Fork(u)
		u.Defer(d.Close)
		return func(i int) { d.Add(x[i] * y[i]) }
	})
	if err != nil {
		t.Fatalf("ForallUnit failed: %v", err)
	}

	if math.Abs(dot.Get()-want) > 1e-9 {
		t.Errorf("Dot = %v, want %v", dot.Get(), want)
	}
}

// TestIndexSetWorkflow builds a composite set from raw indices and
// iterates it under a mixed policy pair.
func TestIndexSetWorkflow(t *testing.T) {
	indices := []int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
		40, 37, 91,
		64, 65, 66, 67, 68, 69, 70, 71, 72, 73, 74, 75, 76, 77, 78, 79,
	}
	set := indexset.Build(indices)

	touched := make(map[int]int)
	seq := sequential.New()
	sp := exec.SetPolicy{SegIter: seq.Exec(), SegExec: seq.Exec()}
	if err := forall.ForallSet(sp, set, func(i int) {
		touched[i]++
	}); err != nil {
		t.Fatalf("ForallSet failed: %v", err)
	}

	if len(touched) != len(indices) {
		t.Fatalf("Touched %d distinct indices, want %d", len(touched), len(indices))
	}
	for _, i := range indices {
		if touched[i] != 1 {
			t.Errorf("Index %d touched %d times", i, touched[i])
		}
	}
}

// TestConvenienceReductions covers the one-call reduction helpers.
func TestConvenienceReductions(t *testing.T) {
	vals := []float64{4, -2, 9, 9, 0}
	r, _ := segment.NewRange(0, len(vals))
	p := sequential.New().Reduce()

	sum, err := forall.SumOf(p, r, func(i int) float64 { return vals[i] })
	if err != nil || sum != 20 {
		t.Errorf("SumOf = %v, %v, want 20, nil", sum, err)
	}

	v, loc, err := forall.MaxLocOf(p, r, -1e30, -1, func(i int) float64 { return vals[i] })
	if err != nil || v != 9 || loc != 2 {
		t.Errorf("MaxLocOf = %v at %d, %v, want 9 at 2 (first occurrence)", v, loc, err)
	}
}
