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
	"math"

	"golang.org/x/exp/constraints"
)

// Element is the set of types an Interval can be instantiated with. Integral
// types are discrete and fully ordered. Floating point types are dense and
// carry two extended elements (±Inf), which are valid only as bound markers,
// and unordered elements (NaN), which are never valid.
type Element interface {
	constraints.Integer | constraints.Float
}

// isFloat reports whether T is a floating point kind. All the other trait
// predicates branch on it.
func isFloat[T Element]() bool {
	switch any(T(0)).(type) {
	case float32, float64:
		return true
	}
	return false
}

// hasUnorderedElements reports whether T contains values that cannot be
// ordered (NaN).
func hasUnorderedElements[T Element]() bool {
	return isFloat[T]()
}

// hasInfiniteElements reports whether T contains infinite values.
func hasInfiniteElements[T Element]() bool {
	return isFloat[T]()
}

// adjacency returns the pair of predicates (adjacent, twiceAdjacent).
// a is adjacent to b if a < b and no element lies strictly between them;
// twice-adjacent if exactly one element lies between them. Floating point
// sets are dense, so both predicates are always false for them. We remain
// agnostic of representable neighbors (no math.Nextafter): intervals model
// the mathematical set, not the machine encoding.
//
// The caller guarantees a < b, so a+1 and b-1 cannot overflow.
func adjacency[T Element](a, b T) (bool, bool) {
	if a >= b || isFloat[T]() {
		return false, false
	}
	return a+1 == b, a+1 == b-1
}

// adjacent is the single-predicate form of adjacency.
func adjacent[T Element](a, b T) bool {
	if a >= b || isFloat[T]() {
		return false
	}
	return a+1 == b
}

// isOrdered reports whether x can participate in comparisons. Only NaN is
// unordered. Conversion to float64 preserves NaN for float32.
func isOrdered[T Element](x T) bool {
	return !math.IsNaN(float64(x))
}

// isFinite reports whether x is an ordinary element rather than an infinity.
// Only meaningful when hasInfiniteElements[T]() holds.
func isFinite[T Element](x T) bool {
	return !math.IsInf(float64(x), 0)
}

// isInfinityPositive reports the sign of an infinite element. The caller
// guarantees x is infinite.
func isInfinityPositive[T Element](x T) bool {
	return x > 0
}
