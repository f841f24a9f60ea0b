// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fidelio

// ConstError is a utility type for defining constant error values.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// The set of instruction failure conditions the interpreter reports to its
// dispatcher. All of them are fatal to the current frame; the interpreter
// does not retry and does not roll back gas deducted before the failure.
const (
	// ErrOutOfGas is reported whenever a gas deduction drives the remaining
	// gas of a frame below zero, including the stipend-floor check of SSTORE.
	ErrOutOfGas = ConstError("out of gas")

	// ErrStaticContextViolation is reported when a state-mutating instruction
	// is executed within a static call.
	ErrStaticContextViolation = ConstError("static context violation")

	// ErrInvalidRevision is reported when an instruction is executed under a
	// revision that does not support it yet.
	ErrInvalidRevision = ConstError("instruction not supported by revision")
)
