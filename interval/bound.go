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

type boundKind uint8

const (
	boundNone     boundKind = iota // no bound at all; only the empty set has these
	boundOpen                      // finite, strict inequality
	boundClosed                    // finite, non-strict inequality
	boundInfinite                  // unbounded side
)

// bound is one side of an interval during construction or one operation call.
// It never escapes the package. A bound is unsatisfiable only transiently,
// when a raw inequality such as x < -Inf cannot hold; an unsatisfiable bound
// always collapses to the empty set in adjustBounds.
type bound[T Element] struct {
	value       T
	kind        boundKind
	satisfiable bool
}

func finiteBound[T Element](value T, closed bool) bound[T] {
	kind := boundOpen
	if closed {
		kind = boundClosed
	}
	return bound[T]{value: value, kind: kind, satisfiable: true}
}

func infiniteBound[T Element]() bound[T] {
	return bound[T]{kind: boundInfinite, satisfiable: true}
}

func nullBound[T Element]() bound[T] {
	return bound[T]{kind: boundNone, satisfiable: false}
}

func (b bound[T]) hasValue() bool {
	return b.kind == boundOpen || b.kind == boundClosed
}

// compareAsLower orders b against right with both treated as lower bounds,
// i.e. comparing the sets [b,+Inf) and [right,+Inf). An infinite bound is
// smallest. When openness differs, an open bound at v starts one element
// after a closed bound at v, so discrete adjacency can make the two sets
// equal.
//
// Returns 0 if the extended sets are equal, -1 if b's is a proper superset
// (starts lower), +1 otherwise. Panics if either bound is unsatisfiable;
// bounds of live intervals always are satisfiable.
func (b bound[T]) compareAsLower(right bound[T]) int {
	if !b.satisfiable || !right.satisfiable {
		panic(ErrUnsatisfiableBound)
	}
	if b.kind == boundInfinite || right.kind == boundInfinite {
		if b.kind == boundInfinite {
			if right.kind == boundInfinite {
				return 0
			}
			return -1
		}
		return +1
	}
	lv, rv := b.value, right.value
	if b.kind == right.kind {
		// Same openness compares like the underlying elements.
		switch {
		case lv < rv:
			return -1
		case lv == rv:
			return 0
		}
		return +1
	}
	if b.kind == boundOpen {
		// (lv,... vs [rv,...
		if rv <= lv {
			return +1
		}
		if adjacent(lv, rv) {
			return 0
		}
		return -1
	}
	// [lv,... vs (rv,...
	if lv <= rv {
		return -1
	}
	if adjacent(rv, lv) {
		return 0
	}
	return +1
}

// compareAsUpper is the mirror image of compareAsLower: both bounds are
// treated as upper bounds, comparing (-Inf,b] against (-Inf,right]. An
// infinite bound is largest.
//
// Returns 0 if the extended sets are equal, -1 if b's is a proper subset
// (ends lower), +1 otherwise.
func (b bound[T]) compareAsUpper(right bound[T]) int {
	if !b.satisfiable || !right.satisfiable {
		panic(ErrUnsatisfiableBound)
	}
	if b.kind == boundInfinite || right.kind == boundInfinite {
		if b.kind == boundInfinite {
			if right.kind == boundInfinite {
				return 0
			}
			return +1
		}
		return -1
	}
	lv, rv := b.value, right.value
	if b.kind == right.kind {
		switch {
		case lv < rv:
			return -1
		case lv == rv:
			return 0
		}
		return +1
	}
	if b.kind == boundOpen {
		// ...,lv) vs ...,rv]
		// Equal values make the open side a proper subset. For discrete
		// types the sets are equal when rv is adjacent to lv.
		if lv <= rv {
			return -1
		}
		if adjacent(rv, lv) {
			return 0
		}
		return +1
	}
	// ...,lv] vs ...,rv)
	if lv >= rv {
		return +1
	}
	if adjacent(lv, rv) {
		return 0
	}
	return -1
}

// compareAsMixed compares b as an upper bound against right as a lower bound:
// the sets (-Inf,b] and [right,+Inf). Returns -1 if they are strictly
// separated (a gap exists), 0 if they are adjacent (no gap, no shared point),
// and +1 if they share a point. Two infinite bounds always overlap, because
// (-Inf,+Inf) has points in common with every nonempty set; this deliberately
// differs from the 0 returned by the one-sided comparisons.
func (b bound[T]) compareAsMixed(right bound[T]) int {
	if !b.satisfiable || !right.satisfiable {
		panic(ErrUnsatisfiableBound)
	}
	if b.kind == boundInfinite || right.kind == boundInfinite {
		return +1
	}
	lv, rv := b.value, right.value
	if b.kind == boundOpen && right.kind == boundOpen {
		// ...,lv) vs (rv,...
		if lv <= rv {
			return -1
		}
		if adjacent(rv, lv) {
			return 0
		}
		return +1
	}
	if b.kind == boundClosed && right.kind == boundClosed {
		// ...,lv] vs [rv,...
		if rv <= lv {
			return +1
		}
		if adjacent(lv, rv) {
			return 0
		}
		return -1
	}
	// Mixed openness: exactly one of the two sets contains the shared value,
	// so equality means touching without overlap.
	switch {
	case lv < rv:
		return -1
	case lv == rv:
		return 0
	}
	return +1
}
