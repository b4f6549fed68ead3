package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/internal/backend/pool"
	"github.com/stride-hpc/stride/internal/backend/sequential"
	"github.com/stride-hpc/stride/internal/exec"
)

func TestSum_Direct(t *testing.T) {
	p := sequential.New().Reduce()
	s, err := NewSum(p, 10)
	require.NoError(t, err)
	defer s.Close()

	s.Add(5)
	s.Add(7)
	assert.Equal(t, 22, s.Get())
}

func TestSum_ChildStartsAtIdentity(t *testing.T) {
	// A child must contribute only what it accumulates itself; the
	// parent's running total folds in exactly once.
	p := sequential.New().Reduce()
	s, err := NewSum(p, 10)
	require.NoError(t, err)
	defer s.Close()

	s.Add(5)

	u := exec.NewUnit(0)
	ch := s.Fork(u)
	ch.Add(1)
	ch.Close()

	assert.Equal(t, 16, s.Get(), "forking after accumulation must not double-count")
}

func TestSumWithIdentity_SeedsChildren(t *testing.T) {
	// The neutral element and the reported offset are distinct: children
	// start from the identity while init folds in exactly once.
	p := sequential.New().Reduce()
	s, err := NewSumWithIdentity(p, 10, 2)
	require.NoError(t, err)
	defer s.Close()

	ch := s.Fork(exec.NewUnit(0))
	ch.Add(3)
	ch.Close()

	assert.Equal(t, 15, s.Get())
}

func TestSumWithIdentity_BlockStrategy(t *testing.T) {
	// Under the block strategy every unit slot starts at the identity, so
	// a non-neutral identity contributes once per slot.
	eng := pool.New(pool.WithWorkers(2), pool.WithMinChunk(50))
	s, err := NewSumWithIdentity(eng.Reduce(), 0, 1)
	require.NoError(t, err)
	defer s.Close()

	n := 100
	err = eng.Launch(n, exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
		ch := s.Fork(u)
		u.Defer(ch.Close)
		for i := lo; i < hi; i++ {
			ch.Add(i)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, n*(n-1)/2+2, s.Get())
}

func TestSum_ChildCloseIdempotent(t *testing.T) {
	p := sequential.New().Reduce()
	s, err := NewSum(p, 0)
	require.NoError(t, err)
	defer s.Close()

	ch := s.Fork(exec.NewUnit(0))
	ch.Add(3)
	ch.Close()
	ch.Close()
	assert.Equal(t, 3, s.Get())
}

func TestSum_BlockStrategyParallel(t *testing.T) {
	eng := pool.New(pool.WithWorkers(4), pool.WithMinChunk(16))
	p := eng.Reduce()

	s, err := NewSum(p, 0)
	require.NoError(t, err)
	defer s.Close()

	n := 10000
	err = eng.Launch(n, exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
		ch := s.Fork(u)
		u.Defer(ch.Close)
		for i := lo; i < hi; i++ {
			ch.Add(i)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, n*(n-1)/2, s.Get())
}

func TestSum_GetWithoutConsuming(t *testing.T) {
	eng := pool.New(pool.WithWorkers(2))
	s, err := NewSum(eng.Reduce(), 0)
	require.NoError(t, err)
	defer s.Close()

	ch := s.Fork(exec.NewUnit(1))
	ch.Add(4)
	ch.Close()

	assert.Equal(t, 4, s.Get())
	assert.Equal(t, 4, s.Get(), "Get must not consume slot contents")
}

func TestSum_GetStableAfterClose(t *testing.T) {
	eng := pool.New(pool.WithWorkers(2))
	s, err := NewSum(eng.Reduce(), 1)
	require.NoError(t, err)

	ch := s.Fork(exec.NewUnit(0))
	ch.Add(2)
	ch.Close()

	s.Close()
	s.Close()
	assert.Equal(t, 3, s.Get())
}

func TestFork_Flattens(t *testing.T) {
	// Forking a child attaches the grandchild to the root.
	eng := pool.New(pool.WithWorkers(4))
	s, err := NewSum(eng.Reduce(), 0)
	require.NoError(t, err)
	defer s.Close()

	ch := s.Fork(exec.NewUnit(0))
	grandchild := ch.Fork(exec.NewUnit(1))
	grandchild.Add(5)
	grandchild.Close()
	ch.Close()

	assert.Equal(t, 5, s.Get())
}

func TestMin_InitParticipates(t *testing.T) {
	p := sequential.New().Reduce()
	m, err := NewMin(p, 100)
	require.NoError(t, err)
	defer m.Close()

	m.Min(150)
	assert.Equal(t, 100, m.Get(), "result must never exceed the initial value")
	m.Min(42)
	assert.Equal(t, 42, m.Get())
}

func TestMax_Parallel(t *testing.T) {
	eng := pool.New(pool.WithWorkers(4), pool.WithMinChunk(8))
	m, err := NewMax(eng.Reduce(), -1.0)
	require.NoError(t, err)
	defer m.Close()

	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i % 97)
	}
	vals[731] = 1e9

	err = eng.Launch(len(vals), exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
		ch := m.Fork(u)
		u.Defer(ch.Close)
		for i := lo; i < hi; i++ {
			ch.Max(vals[i])
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1e9, m.Get())
}

func TestMinLoc_FirstWins(t *testing.T) {
	p := sequential.New().Reduce()
	m, err := NewMinLoc(p, 1e30, -1)
	require.NoError(t, err)
	defer m.Close()

	m.MinLoc(5, 3)
	m.MinLoc(5, 7) // tie: location must not move
	m.MinLoc(9, 1)

	assert.Equal(t, 5.0, m.Get())
	assert.Equal(t, 3, m.Loc())
}

func TestMinLoc_DefaultLocWhenUnbeaten(t *testing.T) {
	p := sequential.New().Reduce()
	m, err := NewMinLoc(p, 0.0, -1)
	require.NoError(t, err)
	defer m.Close()

	m.MinLoc(10, 4)
	assert.Equal(t, 0.0, m.Get())
	assert.Equal(t, -1, m.Loc())
}

func TestMaxLoc_Parallel(t *testing.T) {
	eng := pool.New(pool.WithWorkers(4), pool.WithMinChunk(8))
	m, err := NewMaxLoc(eng.Reduce(), -1.0, -1)
	require.NoError(t, err)
	defer m.Close()

	vals := make([]float64, 500)
	for i := range vals {
		vals[i] = float64(i % 10)
	}
	vals[123] = 777

	err = eng.Launch(len(vals), exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
		ch := m.Fork(u)
		u.Defer(ch.Close)
		for i := lo; i < hi; i++ {
			ch.MaxLoc(vals[i], i)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 777.0, m.Get())
	assert.Equal(t, 123, m.Loc())
}

func TestArenaExhaustion(t *testing.T) {
	eng := pool.New(pool.WithWorkers(2), pool.WithReductionIDs(1))

	first, err := NewSum(eng.Reduce(), 0)
	require.NoError(t, err)

	_, err = NewSum(eng.Reduce(), 0)
	assert.ErrorIs(t, err, stride.ErrResourceExhausted)

	first.Close()
	second, err := NewSum(eng.Reduce(), 0)
	require.NoError(t, err, "closing a reducer must return its id to the pool")
	second.Close()
}

func TestNoEnginePolicy(t *testing.T) {
	_, err := NewSum(exec.Policy{}, 0)
	assert.ErrorIs(t, err, stride.ErrConfiguration)
}

func TestForallPatternPolicyRejected(t *testing.T) {
	_, err := NewSum(sequential.New().Exec(), 0)
	assert.ErrorIs(t, err, stride.ErrConfiguration)
}

func TestSum_OrderIndependence(t *testing.T) {
	// Integer sums must agree across widths and schedules.
	n := 5000
	want := n * (n - 1) / 2

	for _, workers := range []int{1, 2, 4, 8} {
		eng := pool.New(pool.WithWorkers(workers), pool.WithMinChunk(16))
		s, err := NewSum(eng.Reduce(), 0)
		require.NoError(t, err)

		err = eng.Launch(n, exec.Tuning{}, func(u *exec.Unit, lo, hi int) {
			ch := s.Fork(u)
			u.Defer(ch.Close)
			for i := lo; i < hi; i++ {
				ch.Add(i)
			}
		})
		require.NoError(t, err)
		assert.Equal(t, want, s.Get(), "workers=%d", workers)
		s.Close()
	}
}
