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
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

const maxStackSize = 1024 // Maximum size of VM stack allowed.

// Stack is the 1024-element 256-bit word-wide stack used by the VM.
// It is a fixed-size stack to prevent memory reallocation during execution.
// Boundaries are not checked by the accessors; the dispatcher verifies the
// stack requirements of an instruction before running it.
//
// Each stack consumes 1024 * 32 bytes = 32KB of memory. Thus, creating and
// destroying stacks could incur significant overhead. To mitigate this, a
// stack pool is provided to reuse stack instances. To obtain an empty stack
// from the pool, use NewStack(). To return a stack to the pool, use
// ReturnStack(s).
//
// The stack is not thread-safe. NewStack() and ReturnStack() are thread-safe.
type Stack struct {
	data         [maxStackSize]uint256.Int
	stackPointer int
}

// Push adds a copy of the given value to the top of the stack.
func (s *Stack) Push(d *uint256.Int) {
	s.data[s.stackPointer] = *d
	s.stackPointer++
}

// PushUndefined adds a slot with an undefined value to the top of the stack
// and returns a pointer to this element. Use this function if the element on
// the top of the stack is directly overwritten through the returned pointer.
func (s *Stack) PushUndefined() *uint256.Int {
	s.stackPointer++
	return &s.data[s.stackPointer-1]
}

// Pop removes the top element from the stack and returns a pointer to it. The
// obtained pointer is only valid until the next push operation.
func (s *Stack) Pop() *uint256.Int {
	s.stackPointer--
	return &s.data[s.stackPointer]
}

// Peek returns a pointer to the top element of the stack without removing it.
// The returned pointer is only valid until the next operation on the stack.
func (s *Stack) Peek() *uint256.Int {
	return &s.data[s.Len()-1]
}

// PeekN returns a pointer to the n-th element from the top of the stack
// without removing it. The top element is at index 0. Thus, PeekN(0) is
// equivalent to Peek().
func (s *Stack) PeekN(n int) *uint256.Int {
	return &s.data[s.Len()-n-1]
}

// Len returns the number of elements on the stack.
func (s *Stack) Len() int {
	return s.stackPointer
}

// Get returns the element at the given index. The bottom element is at index 0.
func (s *Stack) Get(i int) *uint256.Int {
	return &s.data[i]
}

func (s *Stack) String() string {
	toHex := func(z *uint256.Int) string {
		b := strings.Builder{}
		b.WriteString("0x")
		bytes := z.Bytes32()
		for i, cur := range bytes {
			b.WriteString(fmt.Sprintf("%02x", cur))
			if (i+1)%8 == 0 {
				b.WriteString(" ")
			}
		}
		return b.String()
	}

	b := strings.Builder{}
	for i := 0; i < s.Len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] %v\n", s.Len()-i-1, toHex(s.PeekN(i))))
	}
	return b.String()
}

var stackPool = sync.Pool{
	New: func() any {
		return &Stack{}
	},
}

// NewStack obtains an empty stack, either fresh or reused from the stack pool.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack returns the given stack to the stack pool. The stack must not
// be used after it has been returned.
func ReturnStack(s *Stack) {
	s.stackPointer = 0
	stackPool.Put(s)
}
