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

package segmenttree

import (
	"sort"

	"github.com/Workiva/go-datastructures/bitarray"

	"github.com/mdstore/mdstore/libs/interval"
	"github.com/mdstore/mdstore/libs/pool"
)

var subTreePool = pool.NewLockFreePool(func() interface{} {
	return new(subTree)
})

type subTree struct {
	interval    Range
	indexBitSet bitarray.BitArray
	left        *subTree
	right       *subTree
}

func newSubTree(r Range) *subTree {
	t := subTreePool.Get().(*subTree)
	*t = subTree{interval: r}
	return t
}

func releaseSubTree(t *subTree) {
	*t = subTree{}
	subTreePool.Put(t)
}

func (t *subTree) isLeaf() bool {
	return t.left == nil && t.right == nil
}

func (t *subTree) setBit(index uint) {
	if t.indexBitSet == nil {
		t.indexBitSet = bitarray.NewSparseBitArray()
	}
	t.indexBitSet.SetBit(uint64(index))
}

// immutableSegmentTree indexes the ranges of one dimension. Each node covers
// a range; an index recorded at a node means that entry's range encloses the
// whole node. The nodes of one level tile the parent without overlap, so any
// entry overlapping a query point is recorded on exactly one node of the
// point's root-to-leaf path.
type immutableSegmentTree struct {
	root *subTree
}

func (t *immutableSegmentTree) init(ranges []Range) {
	if len(ranges) == 0 {
		return
	}
	t.root = newSubTree(interval.All[Endpoint]())
	endpoints := collectEndpoints(ranges)
	t.grow(t.root, endpoints, -1, len(endpoints))
	for i, r := range ranges {
		t.insert(t.root, r, uint(i))
	}
}

func collectEndpoints(ranges []Range) []Endpoint {
	seen := make(map[Endpoint]bool)
	for _, r := range ranges {
		if r.HasLowerBound() {
			seen[r.LowerBound()] = true
		}
		if r.HasUpperBound() {
			seen[r.UpperBound()] = true
		}
	}
	endpoints := make([]Endpoint, 0, len(seen))
	for e := range seen {
		endpoints = append(endpoints, e)
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i] < endpoints[j] })
	return endpoints
}

// grow subdivides node, which spans from endpoints[lo] (inclusive) to
// endpoints[hi] (exclusive), with lo == -1 and hi == len(endpoints) standing
// for the infinite sides. Split points always go to the right child, so
// every cell is closed below and open above and no cell is empty.
func (t *immutableSegmentTree) grow(node *subTree, endpoints []Endpoint, lo, hi int) {
	if hi-lo <= 1 {
		return
	}
	mid := (lo + hi) / 2
	m := endpoints[mid]
	var left, right Range
	if lo == -1 {
		left = interval.UpTo(m, false)
	} else {
		left = interval.Ranged(endpoints[lo], true, m, false)
	}
	if hi == len(endpoints) {
		right = interval.DownTo(m, true)
	} else {
		right = interval.Ranged(m, true, endpoints[hi], false)
	}
	node.left = newSubTree(left)
	node.right = newSubTree(right)
	t.grow(node.left, endpoints, lo, mid)
	t.grow(node.right, endpoints, mid, hi)
}

func (t *immutableSegmentTree) insert(node *subTree, r Range, index uint) {
	if !overlaps(node.interval, r) {
		return
	}
	if encloses(r, node.interval) {
		node.setBit(index)
		return
	}
	if !node.isLeaf() {
		t.insert(node.left, r, index)
		t.insert(node.right, r, index)
		return
	}
	t.splitLeaf(node, r, index)
}

// splitLeaf refines a leaf cell that r covers only partially, which happens
// when range endpoints coincide with different openness. The cell splits
// into the covered piece, which records the index, and its complement
// within the cell.
func (t *immutableSegmentTree) splitLeaf(leaf *subTree, r Range, index uint) {
	cell := leaf.interval
	covered := cell.Intersection(r)
	// overlaps guarantees covered is nonempty.
	before, after := interval.Empty[Endpoint](), interval.Empty[Endpoint]()
	if covered.HasLowerBound() {
		before = cell.Intersection(interval.UpTo(covered.LowerBound(), covered.IsLowerOpen()))
	}
	if covered.HasUpperBound() {
		after = cell.Intersection(interval.DownTo(covered.UpperBound(), covered.IsUpperOpen()))
	}
	switch {
	case before.IsEmpty() && after.IsEmpty():
		// covered and the cell are the same set spelled differently
		leaf.setBit(index)
	case before.IsEmpty():
		covNode := newSubTree(covered)
		covNode.setBit(index)
		leaf.left = covNode
		leaf.right = newSubTree(after)
	case after.IsEmpty():
		covNode := newSubTree(covered)
		covNode.setBit(index)
		leaf.left = newSubTree(before)
		leaf.right = covNode
	default:
		// r sits strictly inside the cell; nest the two upper pieces
		rest, _ := covered.Union(after)
		covNode := newSubTree(covered)
		covNode.setBit(index)
		mid := newSubTree(rest)
		mid.left = covNode
		mid.right = newSubTree(after)
		leaf.left = newSubTree(before)
		leaf.right = mid
	}
}

func (t *immutableSegmentTree) query(r Range) bitarray.BitArray {
	result := bitarray.NewSparseBitArray()
	if t.root == nil {
		return result
	}
	queue := []*subTree{t.root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !overlaps(node.interval, r) {
			continue
		}
		if node.indexBitSet != nil {
			result = result.Or(node.indexBitSet)
		}
		if node.left != nil {
			queue = append(queue, node.left)
		}
		if node.right != nil {
			queue = append(queue, node.right)
		}
	}
	return result
}

func (t *immutableSegmentTree) clear() {
	if t.root == nil {
		return
	}
	queue := []*subTree{t.root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.left != nil {
			queue = append(queue, node.left)
		}
		if node.right != nil {
			queue = append(queue, node.right)
		}
		releaseSubTree(node)
	}
	t.root = nil
}
