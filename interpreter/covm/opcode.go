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

import "fmt"

// OpCode identifies an instruction of the state-touching core. The values
// are the canonical EVM byte codes.
type OpCode byte

const (
	ADDRESS     OpCode = 0x30
	BALANCE     OpCode = 0x31
	ORIGIN      OpCode = 0x32
	CALLER      OpCode = 0x33
	CALLVALUE   OpCode = 0x34
	GASPRICE    OpCode = 0x3A
	EXTCODESIZE OpCode = 0x3B

	BLOCKHASH   OpCode = 0x40
	COINBASE    OpCode = 0x41
	TIMESTAMP   OpCode = 0x42
	NUMBER      OpCode = 0x43
	DIFFICULTY  OpCode = 0x44
	GASLIMIT    OpCode = 0x45
	CHAINID     OpCode = 0x46
	SELFBALANCE OpCode = 0x47
	BASEFEE     OpCode = 0x48

	SLOAD  OpCode = 0x54
	SSTORE OpCode = 0x55

	LOG0 OpCode = 0xA0
	LOG1 OpCode = 0xA1
	LOG2 OpCode = 0xA2
	LOG3 OpCode = 0xA3
	LOG4 OpCode = 0xA4

	SELFDESTRUCT OpCode = 0xFF
)

func (op OpCode) String() string {
	switch op {
	case ADDRESS:
		return "ADDRESS"
	case BALANCE:
		return "BALANCE"
	case ORIGIN:
		return "ORIGIN"
	case CALLER:
		return "CALLER"
	case CALLVALUE:
		return "CALLVALUE"
	case GASPRICE:
		return "GASPRICE"
	case EXTCODESIZE:
		return "EXTCODESIZE"
	case BLOCKHASH:
		return "BLOCKHASH"
	case COINBASE:
		return "COINBASE"
	case TIMESTAMP:
		return "TIMESTAMP"
	case NUMBER:
		return "NUMBER"
	case DIFFICULTY:
		return "DIFFICULTY"
	case GASLIMIT:
		return "GASLIMIT"
	case CHAINID:
		return "CHAINID"
	case SELFBALANCE:
		return "SELFBALANCE"
	case BASEFEE:
		return "BASEFEE"
	case SLOAD:
		return "SLOAD"
	case SSTORE:
		return "SSTORE"
	case LOG0:
		return "LOG0"
	case LOG1:
		return "LOG1"
	case LOG2:
		return "LOG2"
	case LOG3:
		return "LOG3"
	case LOG4:
		return "LOG4"
	case SELFDESTRUCT:
		return "SELFDESTRUCT"
	default:
		return fmt.Sprintf("op(0x%02X)", byte(op))
	}
}

// ValidOpCodes lists all instructions covered by this interpreter core.
func ValidOpCodes() []OpCode {
	return []OpCode{
		ADDRESS, BALANCE, ORIGIN, CALLER, CALLVALUE, GASPRICE, EXTCODESIZE,
		BLOCKHASH, COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT,
		CHAINID, SELFBALANCE, BASEFEE,
		SLOAD, SSTORE,
		LOG0, LOG1, LOG2, LOG3, LOG4,
		SELFDESTRUCT,
	}
}

// ParseOpCode resolves an instruction name as produced by OpCode.String().
func ParseOpCode(name string) (OpCode, error) {
	for _, op := range ValidOpCodes() {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown instruction: %s", name)
}

// stackUsage summarizes how many elements an instruction pops from and
// pushes to the stack. The dispatcher uses it to verify stack boundaries
// before the handler runs.
type stackUsage struct {
	pops   int
	pushes int
}

func getStackUsage(op OpCode) stackUsage {
	switch op {
	case BALANCE, EXTCODESIZE, BLOCKHASH, SLOAD:
		return stackUsage{pops: 1, pushes: 1}
	case SSTORE:
		return stackUsage{pops: 2}
	case LOG0, LOG1, LOG2, LOG3, LOG4:
		return stackUsage{pops: 2 + int(op-LOG0)}
	case SELFDESTRUCT:
		return stackUsage{pops: 1}
	default:
		return stackUsage{pushes: 1}
	}
}

// checkStackLimits checks that the given instruction will not make an out of
// bounds access with the current stack size.
func checkStackLimits(stackLen int, op OpCode) error {
	usage := getStackUsage(op)
	if stackLen < usage.pops {
		return errStackUnderflow
	}
	if stackLen-usage.pops+usage.pushes > maxStackSize {
		return errStackOverflow
	}
	return nil
}
