// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package covm

import (
	"fmt"
	"math"

	"github.com/fidelio-vm/fidelio/fidelio"
	"github.com/holiman/uint256"
)

// Memory is the growable, zero-initialized byte buffer of a call frame.
// All instruction-level accesses go through VerifyRegion, which charges the
// quadratic expansion fee before growing the buffer.
type Memory struct {
	store             []byte
	currentMemoryCost fidelio.Gas
}

func NewMemory() *Memory {
	return &Memory{}
}

// Region identifies a validated, expansion-charged span of frame memory.
// A nil region denotes the empty span.
type Region struct {
	Offset uint64
	Size   uint64
}

const (
	// Maximum memory size allowed.
	// This magic number comes from 'core/vm/gas_table.go' 'memoryGasCost' in geth.
	maxMemoryExpansionSize = 0x1FFFFFFFE0
)

func toValidMemorySize(size uint64) uint64 {
	fullWordsSize := fidelio.SizeInWords(size) * 32
	if size != 0 && fullWordsSize < size {
		return math.MaxUint64
	}
	return fullWordsSize
}

func (m *Memory) getExpansionCosts(size uint64) fidelio.Gas {
	if m.Length() >= size {
		return 0
	}
	size = toValidMemorySize(size)

	if size > maxMemoryExpansionSize {
		return fidelio.Gas(math.MaxInt64)
	}

	words := fidelio.SizeInWords(size)
	newCosts := fidelio.Gas((words*words)/512 + (3 * words))
	return newCosts - m.currentMemoryCost
}

// expand grows the memory to cover [offset, offset+size), charging the
// expansion fee against the given state. An overflow of offset+size or an
// exhausted gas budget fails the expansion.
func (m *Memory) expand(offset, size uint64, s *ExecutionState) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	if needed < offset {
		return fidelio.ErrOutOfGas
	}
	if m.Length() < needed {
		fee := m.getExpansionCosts(needed)
		if err := s.UseGas(fee); err != nil {
			return err
		}
		needed = toValidMemorySize(needed)
		m.currentMemoryCost += m.getExpansionCosts(needed)
		m.store = append(m.store, make([]byte, needed-m.Length())...)
	}
	return nil
}

// VerifyRegion validates a 256-bit offset/size pair against the memory,
// charging any expansion fee. A zero size yields a nil region without
// touching the offset. Oversized or over-budget regions fail with the
// out-of-gas condition.
func (m *Memory) VerifyRegion(s *ExecutionState, offset, size *uint256.Int) (*Region, error) {
	if size.IsZero() {
		return nil, nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return nil, fidelio.ErrOutOfGas
	}
	region := &Region{Offset: offset.Uint64(), Size: size.Uint64()}
	if err := m.expand(region.Offset, region.Size, s); err != nil {
		return nil, fidelio.ErrOutOfGas
	}
	return region, nil
}

// Span returns the memory content of a previously verified region. The
// returned slice aliases the frame memory.
func (m *Memory) Span(region *Region) []byte {
	if region == nil {
		return nil
	}
	return m.store[region.Offset : region.Offset+region.Size]
}

// Length returns the current size of the memory in bytes.
func (m *Memory) Length() uint64 {
	return uint64(len(m.store))
}

// Set writes the given data to the memory at the given offset, charging any
// necessary expansion fee against the given state.
func (m *Memory) Set(offset uint64, data []byte, s *ExecutionState) error {
	if len(data) == 0 {
		return nil
	}
	if err := m.expand(offset, uint64(len(data)), s); err != nil {
		return err
	}
	if m.Length() < offset+uint64(len(data)) {
		return fmt.Errorf("memory too small, size %d, attempted to write %d bytes at position %d",
			m.Length(), len(data), offset)
	}
	copy(m.store[offset:], data)
	return nil
}
