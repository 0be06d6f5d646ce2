// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

// BloomFilter answers "definitely absent" for static route keys so misses
// skip the map lookup. Positions are derived from one FNV-1a hash of
// method+path XORed with a per-function seed.
type BloomFilter struct {
	bits  []uint64
	size  uint64
	seeds []uint64
}

// NewBloomFilter creates a filter with size bits and numHashFuncs hash functions.
func NewBloomFilter(size uint64, numHashFuncs int) *BloomFilter {
	if size == 0 {
		size = 64
	}
	bf := &BloomFilter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		//nolint:gosec // G115: numHashFuncs is small
		bf.seeds[i] = uint64(i + 1)
	}
	return bf
}

func (bf *BloomFilter) position(hash, seed uint64) uint64 {
	return (hash ^ seed) % bf.size
}

// Add records the key method+path.
func (bf *BloomFilter) Add(method, path string) {
	hash := inlineHash(method, path)
	for _, seed := range bf.seeds {
		pos := bf.position(hash, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether method+path may have been added.
func (bf *BloomFilter) Test(method, path string) bool {
	return bf.TestHash(inlineHash(method, path))
}

// TestHash is Test for a key whose hash the caller already computed.
func (bf *BloomFilter) TestHash(hash uint64) bool {
	for _, seed := range bf.seeds {
		pos := bf.position(hash, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
