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

import "github.com/fidelio-vm/fidelio/fidelio"

// ExecutionState is the mutable context of a single call frame. It is owned
// by exactly one frame, mutated only by the instruction handlers executing
// within that frame, and discarded once the frame completes or aborts. All
// durable effects of a frame are committed host-side through interrupt and
// resume exchanges before the state is dropped.
type ExecutionState struct {
	Params fidelio.Parameters
	Gas    fidelio.Gas
	Stack  *Stack
	Memory *Memory
}

// NewExecutionState creates the execution state of a fresh call frame with
// the gas budget taken from the given parameters.
func NewExecutionState(params fidelio.Parameters) *ExecutionState {
	return &ExecutionState{
		Params: params,
		Gas:    params.Gas,
		Stack:  NewStack(),
		Memory: NewMemory(),
	}
}

// Release returns pooled resources of the state. The state must not be used
// afterwards.
func (s *ExecutionState) Release() {
	ReturnStack(s.Stack)
	s.Stack = nil
}

// UseGas deducts the given amount from the remaining gas of the frame. The
// deduction is applied before the budget is checked, so the gas level may be
// observed negative by the time the resulting error is reported. A negative
// amount indicates an overflowed dynamic cost and fails as well.
func (s *ExecutionState) UseGas(amount fidelio.Gas) error {
	s.Gas -= amount
	if amount < 0 || s.Gas < 0 {
		return fidelio.ErrOutOfGas
	}
	return nil
}

// IsAtLeast returns true if the frame is running at the given revision or a
// newer one.
func (s *ExecutionState) IsAtLeast(revision fidelio.Revision) bool {
	return s.Params.Revision >= revision
}
