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

// Package interval implements set-theoretic intervals over totally ordered
// element types, with the standard operations on sets: membership,
// intersection, union where defined, cut, and a three-way partial order.
// This is the set sense of "interval", not interval arithmetic for error
// bounds.
//
// An interval is defined by a lower and an upper bound, either of which may
// be open, closed, or absent (infinite). The empty set and single-point sets
// are intervals too, which gives eleven distinct shapes in total. Intervals
// are immutable value objects: equality and every operation are defined on
// the set of elements denoted, never on the representation. The constructors
// canonicalize, so for example Ranged(1, false, 3, false) over int is the
// single point {2}, and Ranged(1, false, 2, false) is the empty set.
//
// Discrete element types make adjacent bounds denote equal sets ([1,3] and
// (0,4) are the same set of integers); every comparison accounts for this
// through the adjacency predicate. Floating point types are treated as dense
// mathematical sets: representable neighbors play no role. Their infinities
// are accepted as bound markers and normalized to unbounded (or empty)
// intervals, and NaN is rejected outright.
package interval

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnorderedElement reports an unordered value (NaN) passed where an
	// ordered element is required.
	ErrUnorderedElement = errors.New("unordered element is invalid as an interval bound or comparison argument")
	// ErrEmptySetComparison reports a comparison against the empty set, which
	// has no defined answer.
	ErrEmptySetComparison = errors.New("the empty set cannot be compared")
	// ErrUnsatisfiableBound reports comparison of an internal bound that can
	// never hold. Unreachable through the public API.
	ErrUnsatisfiableBound = errors.New("non-satisfiable bounds are not comparable")
	// ErrNoBoundValue reports a bound accessor called on a side with no
	// finite value.
	ErrNoBoundValue = errors.New("interval bound has no value")
)

// Interval is an immutable subset of T denoted by two bounds. The zero value
// is the empty set; all other shapes come from the constructor functions.
// Operations never mutate; a variable changes only by reassignment, so
// independent copies are freely shared between goroutines.
type Interval[T Element] struct {
	lower     T
	upper     T
	lowerKind boundKind
	upperKind boundKind
	single    bool
}

// assemble is the one true constructor. Its arguments come from adjustBounds
// and already satisfy every representation invariant.
func assemble[T Element](lower, upper bound[T], empty, single bool) Interval[T] {
	if empty {
		return Interval[T]{}
	}
	return Interval[T]{
		lower:     lower.value,
		upper:     upper.value,
		lowerKind: lower.kind,
		upperKind: upper.kind,
		single:    single,
	}
}

// adjustBounds reduces a pair of normalized bounds to canonical constructor
// arguments: the empty flag subsumes unsatisfiable and inverted bounds, and
// the single-point flag is derived from equality and adjacency.
func adjustBounds[T Element](lower, upper bound[T]) (bound[T], bound[T], bool, bool) {
	if !lower.satisfiable || !upper.satisfiable {
		return nullBound[T](), nullBound[T](), true, false
	}
	if lower.kind == boundInfinite || upper.kind == boundInfinite {
		return lower, upper, false, false
	}
	// Both bounds are finite.
	lowerValue, upperValue := lower.value, upper.value
	if lowerValue > upperValue {
		return nullBound[T](), nullBound[T](), true, false
	}
	if lowerValue == upperValue {
		if lower.kind == boundClosed && upper.kind == boundClosed {
			// Exactly one element satisfies both inequalities.
			return lower, upper, false, true
		}
		// The inequalities cannot hold simultaneously.
		return nullBound[T](), nullBound[T](), true, false
	}
	// Ordinary case: lowerValue < upperValue. An open interval over adjacent
	// bounds is empty; over twice-adjacent bounds it is a single point. A
	// half-open interval over adjacent bounds is a single point.
	if lower.kind == boundOpen && upper.kind == boundOpen {
		adj, twiceAdj := adjacency(lowerValue, upperValue)
		if adj {
			return nullBound[T](), nullBound[T](), true, false
		}
		return lower, upper, false, twiceAdj
	}
	if lower.kind == boundClosed && upper.kind == boundClosed {
		return lower, upper, false, false
	}
	return lower, upper, false, adjacent(lowerValue, upperValue)
}

// normalizeBound validates a raw endpoint and maps extended values to their
// canonical bound. A NaN endpoint panics with ErrUnorderedElement. An
// infinity on the side it extends toward becomes an infinite bound; on the
// wrong side (+Inf as a lower bound, -Inf as an upper bound) the inequality
// can never hold and the result is unsatisfiable.
func normalizeBound[T Element](value T, closed bool, forUpper bool) bound[T] {
	if hasUnorderedElements[T]() && !isOrdered(value) {
		panic(ErrUnorderedElement)
	}
	if !hasInfiniteElements[T]() || isFinite(value) {
		return finiteBound(value, closed)
	}
	positive := isInfinityPositive(value)
	if (forUpper && !positive) || (!forUpper && positive) {
		return nullBound[T]()
	}
	return infiniteBound[T]()
}

// Empty returns the empty set.
func Empty[T Element]() Interval[T] {
	return Interval[T]{}
}

// SinglePoint returns the set {x}, equivalent to Ranged(x, true, x, true).
func SinglePoint[T Element](x T) Interval[T] {
	return assemble(adjustBounds(
		normalizeBound(x, true, false), normalizeBound(x, true, true)))
}

// Ranged returns the interval between two finite endpoints, each closed or
// open. Inverted or unsatisfiable endpoints yield the empty set; infinite
// endpoints are normalized the same way as in UpTo and DownTo.
func Ranged[T Element](lower T, lowerClosed bool, upper T, upperClosed bool) Interval[T] {
	return assemble(adjustBounds(
		normalizeBound(lower, lowerClosed, false),
		normalizeBound(upper, upperClosed, true)))
}

// UpTo returns the lower-unbounded interval (-Inf,upper) or (-Inf,upper].
func UpTo[T Element](upper T, closed bool) Interval[T] {
	return assemble(adjustBounds(
		infiniteBound[T](), normalizeBound(upper, closed, true)))
}

// DownTo returns the upper-unbounded interval (lower,+Inf) or [lower,+Inf).
func DownTo[T Element](lower T, closed bool) Interval[T] {
	return assemble(adjustBounds(
		normalizeBound(lower, closed, false), infiniteBound[T]()))
}

// All returns the bi-infinite interval (-Inf,+Inf), i.e. the whole set.
func All[T Element]() Interval[T] {
	return Interval[T]{lowerKind: boundInfinite, upperKind: boundInfinite}
}

// lowerAsBound extracts the lower side for one operation call.
func (i Interval[T]) lowerAsBound() bound[T] {
	return bound[T]{value: i.lower, kind: i.lowerKind, satisfiable: true}
}

func (i Interval[T]) upperAsBound() bound[T] {
	return bound[T]{value: i.upper, kind: i.upperKind, satisfiable: true}
}

// IsEmpty reports whether the interval is the empty set.
func (i Interval[T]) IsEmpty() bool {
	return i.lowerKind == boundNone
}

// HasSinglePoint reports whether the interval contains exactly one element.
func (i Interval[T]) HasSinglePoint() bool {
	return i.single
}

// HasLowerBound reports whether the lower side holds a finite value.
func (i Interval[T]) HasLowerBound() bool {
	return i.lowerKind == boundOpen || i.lowerKind == boundClosed
}

// HasUpperBound reports whether the upper side holds a finite value.
func (i Interval[T]) HasUpperBound() bool {
	return i.upperKind == boundOpen || i.upperKind == boundClosed
}

// LowerBound returns the finite lower endpoint. Panics with ErrNoBoundValue
// unless HasLowerBound.
func (i Interval[T]) LowerBound() T {
	if !i.HasLowerBound() {
		panic(ErrNoBoundValue)
	}
	return i.lower
}

// UpperBound returns the finite upper endpoint. Panics with ErrNoBoundValue
// unless HasUpperBound.
func (i Interval[T]) UpperBound() T {
	if !i.HasUpperBound() {
		panic(ErrNoBoundValue)
	}
	return i.upper
}

func (i Interval[T]) IsLowerOpen() bool {
	return i.lowerKind == boundOpen
}

func (i Interval[T]) IsLowerClosed() bool {
	return i.lowerKind == boundClosed
}

func (i Interval[T]) IsLowerInfinite() bool {
	return i.lowerKind == boundInfinite
}

func (i Interval[T]) IsUpperOpen() bool {
	return i.upperKind == boundOpen
}

func (i Interval[T]) IsUpperClosed() bool {
	return i.upperKind == boundClosed
}

func (i Interval[T]) IsUpperInfinite() bool {
	return i.upperKind == boundInfinite
}

// CanSplitNontrivially reports whether the interval has more than one
// element, i.e. Cut at an interior point can produce two nonempty pieces.
func (i Interval[T]) CanSplitNontrivially() bool {
	return !i.IsEmpty() && !i.single
}

// Equal reports set equality. Construction canonicalizes representations, so
// differently spelled but equal sets always compare equal.
func (i Interval[T]) Equal(y Interval[T]) bool {
	if i.IsEmpty() && y.IsEmpty() {
		return true
	}
	if i.IsEmpty() || y.IsEmpty() {
		return false
	}
	return i.lowerAsBound().compareAsLower(y.lowerAsBound()) == 0 &&
		i.upperAsBound().compareAsUpper(y.upperAsBound()) == 0
}

// Contains reports set membership. An unordered x is a member of nothing and
// nothing is a member of the empty set; Contains never panics.
func (i Interval[T]) Contains(x T) bool {
	if hasUnorderedElements[T]() && !isOrdered(x) {
		return false
	}
	if i.IsEmpty() {
		return false
	}
	if i.lowerKind != boundInfinite && x < i.lower {
		return false
	}
	if i.lowerKind == boundOpen && x == i.lower {
		return false
	}
	if i.upperKind != boundInfinite && i.upper < x {
		return false
	}
	if i.upperKind == boundOpen && i.upper == x {
		return false
	}
	return true
}

// Compare is the three-way analog of Contains: -1 if x is below every
// member, 0 if x is a member, +1 if x is above every member.
//
// Panics with ErrEmptySetComparison on the empty set (both answers would be
// vacuously true) and with ErrUnorderedElement for NaN.
func (i Interval[T]) Compare(x T) int {
	if hasUnorderedElements[T]() && !isOrdered(x) {
		panic(ErrUnorderedElement)
	}
	if i.IsEmpty() {
		panic(ErrEmptySetComparison)
	}
	if i.lowerKind != boundInfinite && x < i.lower {
		return -1
	}
	if i.lowerKind == boundOpen && x == i.lower {
		return -1
	}
	if i.upperKind != boundInfinite && i.upper < x {
		return +1
	}
	if i.upperKind == boundOpen && i.upper == x {
		return +1
	}
	return 0
}

// CompareInterval orders this interval against y under the quantified
// comparison: one interval is below another only if every element of the
// first is less than every element of the second. The first result is -1 or
// +1 for disjoint intervals and 0 when the two intersect. The second result
// reports adjacency: disjoint with no element between them; it is always
// false when the intervals intersect.
//
// Panics with ErrEmptySetComparison if either operand is empty.
func (i Interval[T]) CompareInterval(y Interval[T]) (int, bool) {
	if i.IsEmpty() || y.IsEmpty() {
		panic(ErrEmptySetComparison)
	}
	leftLower, rightLower := i.lowerAsBound(), y.lowerAsBound()
	cLower := leftLower.compareAsLower(rightLower)
	leftUpper, rightUpper := i.upperAsBound(), y.upperAsBound()
	cUpper := leftUpper.compareAsUpper(rightUpper)
	// The intervals intersect iff the least upper bound is above the
	// greatest lower bound.
	leastUpper := rightUpper
	if cUpper < 0 {
		leastUpper = leftUpper
	}
	greatestLower := leftLower
	if cLower < 0 {
		greatestLower = rightLower
	}
	cMiddle := leastUpper.compareAsMixed(greatestLower)
	if cMiddle > 0 {
		return 0, false
	}
	// Disjoint: the lower-bound comparison now orders the whole intervals.
	if cLower < 0 {
		return -1, cMiddle == 0
	}
	return +1, cMiddle == 0
}

// Intersection returns the set intersection, which is always an interval.
func (i Interval[T]) Intersection(y Interval[T]) Interval[T] {
	if i.IsEmpty() || y.IsEmpty() {
		return Empty[T]()
	}
	// Adjacency can make differently represented bounds equal as sets; on
	// ties prefer the closed bound, which includes the boundary point on
	// both sides we keep.
	a, b := i.lowerAsBound(), y.lowerAsBound()
	c := a.compareAsLower(b)
	greatestLower := a
	if c < 0 || (c == 0 && b.kind == boundClosed) {
		greatestLower = b
	}
	a, b = i.upperAsBound(), y.upperAsBound()
	c = a.compareAsUpper(b)
	leastUpper := b
	if c < 0 || (c == 0 && a.kind == boundClosed) {
		leastUpper = a
	}
	return assemble(adjustBounds(greatestLower, leastUpper))
}

// Union returns the set union when it is itself an interval, with ok true.
// When the operands are strictly separated the union is not an interval and
// ok is false; that is an expected outcome, not an error. Union with the
// empty set is the identity.
func (i Interval[T]) Union(y Interval[T]) (Interval[T], bool) {
	if i.IsEmpty() {
		return y, true
	}
	if y.IsEmpty() {
		return i, true
	}
	leftLower, rightLower := i.lowerAsBound(), y.lowerAsBound()
	cLower := leftLower.compareAsLower(rightLower)
	leftUpper, rightUpper := i.upperAsBound(), y.upperAsBound()
	cUpper := leftUpper.compareAsUpper(rightUpper)
	// Strictly separated operands have no single-interval union.
	greatestLower := leftLower
	if cLower < 0 {
		greatestLower = rightLower
	}
	leastUpper := rightUpper
	if cUpper < 0 {
		leastUpper = leftUpper
	}
	if leastUpper.compareAsMixed(greatestLower) < 0 {
		return Empty[T](), false
	}
	leastLower := rightLower
	if cLower < 0 || (cLower == 0 && leftLower.kind == boundClosed) {
		leastLower = leftLower
	}
	greatestUpper := leftUpper
	if cUpper < 0 || (cUpper == 0 && rightUpper.kind == boundClosed) {
		greatestUpper = rightUpper
	}
	return assemble(adjustBounds(leastLower, greatestUpper)), true
}

// Cut splits this interval at point into the pieces below and above it. With
// lowerOpenUpperClosed true the pieces are the intersections with
// (-Inf,point) and [point,+Inf); with false, (-Inf,point] and (point,+Inf).
// A cut point outside the interval leaves one piece empty and the other the
// whole interval; an infinite cut point does so by sign alone, without a
// membership test. Cutting the empty set yields two empty sets.
//
// Panics with ErrUnorderedElement if point is NaN.
func (i Interval[T]) Cut(point T, lowerOpenUpperClosed bool) (Interval[T], Interval[T]) {
	if i.IsEmpty() {
		return Empty[T](), Empty[T]()
	}
	if hasUnorderedElements[T]() && !isOrdered(point) {
		panic(ErrUnorderedElement)
	}
	var c int
	if hasInfiniteElements[T]() && !isFinite(point) {
		// Everything is below +Inf and above -Inf.
		if isInfinityPositive(point) {
			c = +1
		} else {
			c = -1
		}
	} else {
		c = i.Compare(point)
	}
	if c > 0 {
		return i, Empty[T]()
	}
	if c < 0 {
		return Empty[T](), i
	}
	// The cut point is a finite member; split for real.
	below := assemble(adjustBounds(
		i.lowerAsBound(), finiteBound(point, !lowerOpenUpperClosed)))
	above := assemble(adjustBounds(
		finiteBound(point, lowerOpenUpperClosed), i.upperAsBound()))
	return below, above
}

// String renders the interval in conventional notation, e.g. [1,5), (-inf,3]
// or ∅. Intended for logs and test output.
func (i Interval[T]) String() string {
	if i.IsEmpty() {
		return "∅"
	}
	var sb strings.Builder
	switch i.lowerKind {
	case boundInfinite:
		sb.WriteString("(-inf")
	case boundClosed:
		fmt.Fprintf(&sb, "[%v", i.lower)
	default:
		fmt.Fprintf(&sb, "(%v", i.lower)
	}
	sb.WriteByte(',')
	switch i.upperKind {
	case boundInfinite:
		sb.WriteString("+inf)")
	case boundClosed:
		fmt.Fprintf(&sb, "%v]", i.upper)
	default:
		fmt.Fprintf(&sb, "%v)", i.upper)
	}
	return sb.String()
}
