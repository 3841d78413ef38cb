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

package pool

import (
	"testing"
)

type node struct {
	payload [4]uint64
}

func TestGetPutRoundTrip(t *testing.T) {
	p := NewLockFreePool(func() interface{} { return new(node) })
	x := p.Get().(*node)
	if x == nil {
		t.Fatal("Get returned nil")
	}
	x.payload[0] = 42
	p.Put(x)
	y := p.Get().(*node)
	if y == nil {
		t.Fatal("Get returned nil after Put")
	}
}

func TestCounterTracksUsage(t *testing.T) {
	p := NewLockFreePool(func() interface{} { return new(node) },
		OptionPoolSizePerCPU(16), OptionInitFullPoolSize(16),
		OptionCounterNameSuffix("-test"))
	if p.counter.Name != "pool.node-test" {
		t.Errorf("unexpected counter name %s", p.counter.Name)
	}
	objs := make([]interface{}, 0, 8)
	for i := 0; i < 8; i++ {
		objs = append(objs, p.Get())
	}
	if p.counter.InUseObjects != 8 {
		t.Errorf("expected 8 in-use objects, found %d", p.counter.InUseObjects)
	}
	for _, o := range objs {
		p.Put(o)
	}
	if p.counter.InUseObjects != 0 {
		t.Errorf("expected 0 in-use objects, found %d", p.counter.InUseObjects)
	}
	if p.counter.InUseBytes != 0 {
		t.Errorf("expected 0 in-use bytes, found %d", p.counter.InUseBytes)
	}
}

func TestInvalidOptionsFallBack(t *testing.T) {
	p := NewLockFreePool(func() interface{} { return new(node) },
		OptionPoolSizePerCPU(4), OptionInitFullPoolSize(8))
	if p.counter.PoolSizePerCPU != uint32(POOL_SIZE_PER_CPU) {
		t.Errorf("expected default pool size, found %d", p.counter.PoolSizePerCPU)
	}
}

func BenchmarkPoolGet(b *testing.B) {
	p := NewLockFreePool(func() interface{} { return new(node) })
	for i := 0; i < b.N; i++ {
		p.Get()
	}
}

func BenchmarkPoolGetPut(b *testing.B) {
	p := NewLockFreePool(func() interface{} { return new(node) })
	for i := 0; i < b.N; i++ {
		p.Put(p.Get())
	}
}
