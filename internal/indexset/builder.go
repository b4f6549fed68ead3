package indexset

import "github.com/stride-hpc/stride/internal/segment"

// Builder policy constants. A run of consecutive ascending indices is
// split out as a Range only when it starts on a RangeAlign boundary;
// inputs no longer than RangeMinLength are never split at all.
const (
	DefaultRangeAlign     = 4
	DefaultRangeMinLength = 32
)

type buildConfig struct {
	align  int
	minLen int
}

// Option configures the index set builder.
type Option func(*buildConfig)

// WithRangeAlign sets the alignment boundary a range run must start on to
// be emitted as a Range segment.
func WithRangeAlign(align int) Option {
	return func(c *buildConfig) {
		if align > 1 {
			c.align = align
		}
	}
}

// WithRangeMinLength sets the input length below which the builder always
// emits a single List segment.
func WithRangeMinLength(n int) Option {
	return func(c *buildConfig) {
		if n >= 0 {
			c.minLen = n
		}
	}
}

// Build classifies a raw index array into a minimal cover of Range and
// List segments. The concatenated iteration order of the result always
// equals the input array exactly.
//
// The scan is a greedy heuristic, not an optimal cover: a first pass
// counts how many segments an alignment-constrained split would produce,
// and the split is only performed when that count clears the density
// cutoff count < L*(align-1)/align. Otherwise, or when the input is no
// longer than the minimum length, the whole input becomes one List.
func Build(indices []int, opts ...Option) *IndexSet {
	cfg := buildConfig{align: DefaultRangeAlign, minLen: DefaultRangeMinLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	set := New()
	length := len(indices)

	if length <= cfg.minLen {
		set.pushOwned(segment.NewList(indices))
		return set
	}

	if cost := scanCost(indices, cfg.align); cost >= length*(cfg.align-1)/cfg.align {
		// Splitting would not pay for itself.
		set.pushOwned(segment.NewList(indices))
		return set
	}

	emit(set, indices, cfg.align)
	return set
}

// scanCost simulates segment emission without allocating, returning the
// storage cost of the split: 2 units per range (begin + length) and
// 1+count units per list (count + singletons).
func scanCost(indices []int, align int) int {
	cost := 0
	inrange := -1

	scanVal := indices[0]
	sliceCount := 0
	for ii := 1; ii < len(indices); ii++ {
		lookAhead := indices[ii]

		if inrange == -1 {
			if lookAhead == scanVal+1 && scanVal%align == 0 {
				inrange = 1
			} else {
				inrange = 0
			}
		}

		if lookAhead == scanVal+1 {
			if inrange == 0 && scanVal%align == 0 {
				if sliceCount != 0 {
					cost += 1 + sliceCount
				}
				inrange = 1
				sliceCount = 0
			}
			sliceCount++
		} else {
			if inrange == 1 {
				sliceCount++
				cost += 2
				inrange = 0
				sliceCount = 0
			} else {
				sliceCount++
			}
		}

		scanVal = lookAhead
	}

	switch {
	case inrange == 1:
		cost += 2
	case inrange == 0:
		cost += 1 + sliceCount + 1
	default:
		// Single-element input.
		cost += 2
	}
	cost++ // termination marker, kept for parity with the cutoff formula

	return cost
}

// emit performs the second pass, appending alternating Range and List
// segments to set. A run of consecutive ascending values starting on an
// alignment boundary becomes a Range; everything else accumulates into
// List segments, flushed when a qualifying range run begins or the scan
// ends. Runs too short to reach an alignment boundary stay in the List.
func emit(set *IndexSet, indices []int, align int) {
	inrange := -1

	scanVal := indices[0]
	sliceCount := 0
	dobegin := scanVal // value for range runs, position for list runs
	for ii := 1; ii < len(indices); ii++ {
		lookAhead := indices[ii]

		if inrange == -1 {
			if lookAhead == scanVal+1 && scanVal%align == 0 {
				inrange = 1
			} else {
				inrange = 0
				dobegin = ii - 1
			}
		}

		if lookAhead == scanVal+1 {
			if inrange == 0 && scanVal%align == 0 {
				if sliceCount != 0 {
					set.pushOwned(segment.NewList(indices[dobegin : dobegin+sliceCount]))
				}
				inrange = 1
				dobegin = scanVal
				sliceCount = 0
			}
			sliceCount++
		} else {
			if inrange == 1 {
				sliceCount++
				pushRange(set, dobegin, dobegin+sliceCount)
				inrange = 0
				sliceCount = 0
				dobegin = ii
			} else {
				sliceCount++
			}
		}

		scanVal = lookAhead
	}

	switch {
	case inrange == 1:
		sliceCount++
		pushRange(set, dobegin, dobegin+sliceCount)
	case inrange == 0:
		sliceCount++
		set.pushOwned(segment.NewList(indices[dobegin : dobegin+sliceCount]))
	default:
		set.pushOwned(segment.NewList(indices[:1]))
	}
}

func pushRange(set *IndexSet, begin, end int) {
	r, _ := segment.NewRange(begin, end) // begin < end by construction
	set.pushOwned(r)
}
