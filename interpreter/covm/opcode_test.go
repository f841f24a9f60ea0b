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
	"errors"
	"strings"
	"testing"
)

func TestOpCode_AllValidOpCodesHaveNames(t *testing.T) {
	for _, op := range ValidOpCodes() {
		if strings.HasPrefix(op.String(), "op(") {
			t.Errorf("missing name for instruction 0x%02X", byte(op))
		}
	}
}

func TestOpCode_UncoveredOpCodesArePrintedNumerically(t *testing.T) {
	if want, got := "op(0x01)", OpCode(0x01).String(); want != got {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestParseOpCode_IsTheInverseOfString(t *testing.T) {
	for _, op := range ValidOpCodes() {
		parsed, err := ParseOpCode(op.String())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", op, err)
		}
		if parsed != op {
			t.Errorf("expected %v, got %v", op, parsed)
		}
	}
}

func TestParseOpCode_RejectsUnknownNames(t *testing.T) {
	if _, err := ParseOpCode("FROBNICATE"); err == nil {
		t.Error("expected an error for an unknown instruction name")
	}
}

func TestCheckStackLimits_Boundaries(t *testing.T) {
	tests := map[string]struct {
		op      OpCode
		size    int
		wantErr error
	}{
		"address on empty stack":      {op: ADDRESS, size: 0},
		"address on full stack":       {op: ADDRESS, size: maxStackSize, wantErr: errStackOverflow},
		"balance on empty stack":      {op: BALANCE, size: 0, wantErr: errStackUnderflow},
		"balance on full stack":       {op: BALANCE, size: maxStackSize},
		"sstore with one element":     {op: SSTORE, size: 1, wantErr: errStackUnderflow},
		"sstore with two elements":    {op: SSTORE, size: 2},
		"log4 with five elements":     {op: LOG4, size: 5, wantErr: errStackUnderflow},
		"log4 with six elements":      {op: LOG4, size: 6},
		"selfdestruct on empty stack": {op: SELFDESTRUCT, size: 0, wantErr: errStackUnderflow},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.wantErr, checkStackLimits(test.size, test.op); !errors.Is(got, want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}
