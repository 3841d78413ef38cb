/*
 * Copyright (c) 2024 MDStore Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package interval

import (
	"testing"
)

// checkInvariants validates the full representation invariant of an
// Interval. Every constructor and every operation result must pass it. This
// is the whitebox side of the test suite; it lives in the package so it can
// see the stored kinds directly.
func checkInvariants[T Element](t *testing.T, x Interval[T]) {
	t.Helper()
	if x.IsEmpty() {
		if x.upperKind != boundNone {
			t.Errorf("%v: empty interval stores an upper bound kind", x)
		}
		if x.single {
			t.Errorf("%v: empty interval flagged single-point", x)
		}
		var zero T
		if x.lower != zero || x.upper != zero {
			t.Errorf("%v: empty interval stores bound values", x)
		}
		return
	}
	if x.lowerKind == boundNone || x.upperKind == boundNone {
		t.Errorf("%v: nonempty interval with a missing bound kind", x)
		return
	}
	if hasUnorderedElements[T]() {
		if x.HasLowerBound() && (!isOrdered(x.lower) || !isFinite(x.lower)) {
			t.Errorf("%v: stored lower bound is not an ordinary element", x)
		}
		if x.HasUpperBound() && (!isOrdered(x.upper) || !isFinite(x.upper)) {
			t.Errorf("%v: stored upper bound is not an ordinary element", x)
		}
	}
	if x.HasLowerBound() && x.HasUpperBound() {
		if x.lower > x.upper {
			t.Errorf("%v: inverted bounds survived construction", x)
		}
		adj, twiceAdj := adjacency(x.lower, x.upper)
		bothOpen := x.lowerKind == boundOpen && x.upperKind == boundOpen
		bothClosed := x.lowerKind == boundClosed && x.upperKind == boundClosed
		if x.single {
			switch {
			case bothClosed:
				if x.lower != x.upper {
					t.Errorf("%v: closed single point with distinct bounds", x)
				}
			case bothOpen:
				if !twiceAdj {
					t.Errorf("%v: open single point without twice-adjacent bounds", x)
				}
			default:
				if !adj {
					t.Errorf("%v: half-open single point without adjacent bounds", x)
				}
			}
		} else {
			// Canonicalization must not miss a single-point or empty shape.
			if x.lower == x.upper {
				t.Errorf("%v: equal bounds but not single-point", x)
			}
			if bothOpen && (adj || twiceAdj) {
				t.Errorf("%v: open interval with (twice-)adjacent bounds not canonicalized", x)
			}
			if !bothOpen && !bothClosed && adj {
				t.Errorf("%v: half-open interval with adjacent bounds not canonicalized", x)
			}
		}
	} else if x.single {
		t.Errorf("%v: single-point interval with an infinite bound", x)
	}
}

func TestZeroValueIsEmptySet(t *testing.T) {
	var x Interval[int64]
	if !x.IsEmpty() {
		t.Error("zero value must be the empty set")
	}
	if !x.Equal(Empty[int64]()) {
		t.Error("zero value must equal Empty()")
	}
	checkInvariants(t, x)
}

func TestBoundCompareConventions(t *testing.T) {
	inf := infiniteBound[int64]()
	closed := finiteBound[int64](3, true)

	// As one-sided bounds, two infinities denote the same extended set.
	if c := inf.compareAsLower(inf); c != 0 {
		t.Errorf("compareAsLower(inf, inf) = %d, want 0", c)
	}
	if c := inf.compareAsUpper(inf); c != 0 {
		t.Errorf("compareAsUpper(inf, inf) = %d, want 0", c)
	}
	// As a mixed comparison they always overlap: (-Inf,+Inf) shares points
	// with every half-infinite set.
	if c := inf.compareAsMixed(inf); c != +1 {
		t.Errorf("compareAsMixed(inf, inf) = %d, want +1", c)
	}
	if c := inf.compareAsMixed(closed); c != +1 {
		t.Errorf("compareAsMixed(inf, [3) = %d, want +1", c)
	}
	if c := inf.compareAsLower(closed); c != -1 {
		t.Errorf("compareAsLower(inf, [3) = %d, want -1", c)
	}
	if c := inf.compareAsUpper(closed); c != +1 {
		t.Errorf("compareAsUpper(inf, 3]) = %d, want +1", c)
	}
}

func TestBoundAdjacencyComparisons(t *testing.T) {
	// Over the integers an open lower bound at v equals a closed lower bound
	// at v+1, and an open upper bound at v equals a closed upper bound at
	// v-1.
	openLower := finiteBound[int64](4, false)
	closedLower := finiteBound[int64](5, true)
	if c := openLower.compareAsLower(closedLower); c != 0 {
		t.Errorf("compareAsLower((4, [5) = %d, want 0", c)
	}
	openUpper := finiteBound[int64](5, false)
	closedUpper := finiteBound[int64](4, true)
	if c := openUpper.compareAsUpper(closedUpper); c != 0 {
		t.Errorf("compareAsUpper(5), 4]) = %d, want 0", c)
	}
	// Dense types have no adjacency, so the same spellings differ.
	fOpenLower := finiteBound[float64](4, false)
	fClosedLower := finiteBound[float64](5, true)
	if c := fOpenLower.compareAsLower(fClosedLower); c != -1 {
		t.Errorf("float compareAsLower((4, [5) = %d, want -1", c)
	}
	// Mixed: ...,4] vs [5,... touch with no gap over the integers.
	if c := finiteBound[int64](4, true).compareAsMixed(finiteBound[int64](5, true)); c != 0 {
		t.Errorf("compareAsMixed(4], [5) = %d, want 0", c)
	}
	if c := finiteBound[float64](4, true).compareAsMixed(finiteBound[float64](5, true)); c != -1 {
		t.Errorf("float compareAsMixed(4], [5) = %d, want -1", c)
	}
}

func TestUnsatisfiableBoundPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrUnsatisfiableBound {
			t.Errorf("recovered %v, want ErrUnsatisfiableBound", r)
		}
	}()
	nullBound[float64]().compareAsLower(infiniteBound[float64]())
}
