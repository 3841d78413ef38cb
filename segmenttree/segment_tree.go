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
	"runtime"
	"sync"

	"github.com/Workiva/go-datastructures/bitarray"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("segmenttree")

// SegmentTree holds one single-dimension tree per dimension. A query probes
// all dimensions concurrently and intersects the per-dimension hits.
type SegmentTree struct {
	trees  []immutableSegmentTree
	values []Value
}

// New builds an immutable tree of the given dimension from entries. Every
// entry must carry at least dimension ranges, none of them empty; extra
// ranges beyond the dimension are ignored.
func New(dimension int, entries ...Entry) (Tree, error) {
	if dimension <= 0 {
		return nil, InvalidDimension
	}
	values := make([]Value, len(entries))
	for i, entry := range entries {
		if len(entry.Ranges) < dimension {
			return nil, InsufficientRangeLength
		}
		for _, r := range entry.Ranges[:dimension] {
			if r.IsEmpty() {
				log.Warningf("entry %d has an empty range", i)
				return nil, EmptyEntryRange
			}
		}
		values[i] = entry.Value
	}

	trees := make([]immutableSegmentTree, dimension)
	for d := 0; d < dimension; d++ {
		ranges := make([]Range, len(entries))
		for i, entry := range entries {
			ranges[i] = entry.Ranges[d]
		}
		trees[d].init(ranges)
	}

	tree := &SegmentTree{trees: trees, values: values}
	runtime.SetFinalizer(tree, func(t *SegmentTree) { t.clear() })
	log.Debugf("built %d-dimension segment tree from %d entries", dimension, len(entries))
	return tree, nil
}

func (t *SegmentTree) Query(ranges ...Range) []Value {
	dimension := len(t.trees)
	if len(ranges) != dimension || len(t.values) == 0 {
		return nil
	}

	results := make([]bitarray.BitArray, dimension)
	wg := sync.WaitGroup{}
	wg.Add(dimension)
	for d := 0; d < dimension; d++ {
		go func(d int) {
			results[d] = t.trees[d].query(ranges[d])
			wg.Done()
		}(d)
	}
	wg.Wait()

	indexBitSet := results[0]
	for d := 1; d < dimension; d++ {
		indexBitSet = indexBitSet.And(results[d])
	}

	values := make([]Value, 0, len(t.values))
	valueSet := bitarray.NewSparseBitArray()
	for iterator := indexBitSet.Blocks(); iterator.Next(); {
		blockIndex, block := iterator.Value()
		for i := uint64(0); i < 64; i++ {
			if 1<<i&block == 0 {
				continue
			}
			value := t.values[blockIndex*64+i]
			// entries may share a value, report it once
			if found, _ := valueSet.GetBit(value.Id()); found {
				continue
			}
			valueSet.SetBit(value.Id())
			values = append(values, value)
		}
	}
	return values
}

func (t *SegmentTree) clear() {
	for i := range t.trees {
		t.trees[i].clear()
	}
}
