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

// Package segmenttree answers multi-dimensional stabbing queries: given
// entries labelled with one range per dimension, Query returns the values of
// every entry whose ranges all overlap the queried ones. Trees are immutable
// once built.
package segmenttree

import (
	"errors"

	"github.com/mdstore/mdstore/libs/interval"
)

// Endpoint is the element type of all range dimensions.
type Endpoint = int64

// Range is one dimension of an entry or a query.
type Range = interval.Interval[Endpoint]

// Value is the payload of an entry. Ids must be dense and unique; they are
// used for result deduplication.
type Value interface {
	Id() uint64
}

// Entry labels a value with one range per dimension.
type Entry struct {
	Ranges []Range
	Value  Value
}

type Tree interface {
	// Query returns the values of all entries whose ranges overlap the
	// given ranges in every dimension, one range per dimension.
	Query(ranges ...Range) []Value
}

var (
	InvalidDimension        = errors.New("segment tree dimension must be positive")
	InsufficientRangeLength = errors.New("entry has fewer ranges than the tree dimension")
	EmptyEntryRange         = errors.New("entry range denotes the empty set")
)

// overlaps reports whether two ranges share a point. Merely adjacent ranges
// do not count; treating them as connected would leak neighboring indices
// into query results.
func overlaps(a, b Range) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	c, _ := a.CompareInterval(b)
	return c == 0
}

// encloses reports whether a contains every point of b.
func encloses(a, b Range) bool {
	if b.IsEmpty() {
		return true
	}
	if a.IsEmpty() {
		return false
	}
	return a.Intersection(b).Equal(b)
}
