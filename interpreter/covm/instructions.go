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
	"bytes"

	"github.com/fidelio-vm/fidelio/fidelio"
)

// dispatch runs the handler of the given instruction. Handlers needing host
// data suspend through the given hostCaller; everything else completes
// within the invocation.
func dispatch(op OpCode, s *ExecutionState, host hostCaller) error {
	switch op {
	case ADDRESS:
		opAddress(s)
	case CALLER:
		opCaller(s)
	case CALLVALUE:
		opCallvalue(s)
	case BALANCE:
		return opBalance(s, host)
	case EXTCODESIZE:
		return opExtcodesize(s, host)
	case SELFBALANCE:
		return opSelfbalance(s, host)
	case ORIGIN:
		return opOrigin(s, host)
	case COINBASE:
		return opCoinbase(s, host)
	case GASPRICE:
		return opGasPrice(s, host)
	case TIMESTAMP:
		return opTimestamp(s, host)
	case NUMBER:
		return opNumber(s, host)
	case GASLIMIT:
		return opGasLimit(s, host)
	case DIFFICULTY:
		return opDifficulty(s, host)
	case CHAINID:
		return opChainId(s, host)
	case BASEFEE:
		return opBaseFee(s, host)
	case BLOCKHASH:
		return opBlockhash(s, host)
	case SLOAD:
		return opSload(s, host)
	case SSTORE:
		return opSstore(s, host)
	case LOG0, LOG1, LOG2, LOG3, LOG4:
		return opLog(s, host, int(op-LOG0))
	case SELFDESTRUCT:
		return opSelfdestruct(s, host)
	default:
		return errInvalidOpCode
	}
	return nil
}

func opAddress(s *ExecutionState) {
	s.Stack.PushUndefined().SetBytes20(s.Params.Recipient[:])
}

func opCaller(s *ExecutionState) {
	s.Stack.PushUndefined().SetBytes20(s.Params.Sender[:])
}

func opCallvalue(s *ExecutionState) {
	s.Stack.PushUndefined().SetBytes32(s.Params.Value[:])
}

func opBalance(s *ExecutionState, host hostCaller) error {
	slot := s.Stack.Peek()
	address := fidelio.Address(slot.Bytes20())
	if s.IsAtLeast(fidelio.R09_Berlin) {
		if host.accessAccount(address) == fidelio.ColdAccess {
			if err := s.UseGas(AdditionalColdAccountAccessCost); err != nil {
				return err
			}
		}
	}
	balance := host.getBalance(address)
	slot.SetBytes32(balance[:])
	return nil
}

func opExtcodesize(s *ExecutionState, host hostCaller) error {
	slot := s.Stack.Peek()
	address := fidelio.Address(slot.Bytes20())
	if s.IsAtLeast(fidelio.R09_Berlin) {
		if host.accessAccount(address) == fidelio.ColdAccess {
			if err := s.UseGas(AdditionalColdAccountAccessCost); err != nil {
				return err
			}
		}
	}
	slot.SetUint64(uint64(host.getCodeSize(address)))
	return nil
}

func opSelfbalance(s *ExecutionState, host hostCaller) error {
	if !s.IsAtLeast(fidelio.R07_Istanbul) {
		return fidelio.ErrInvalidRevision
	}
	// The own account is warm by definition, no access charge applies.
	balance := host.getBalance(s.Params.Recipient)
	s.Stack.PushUndefined().SetBytes32(balance[:])
	return nil
}

func opOrigin(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes20(context.Origin[:])
	return nil
}

func opCoinbase(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes20(context.Coinbase[:])
	return nil
}

func opGasPrice(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes32(context.GasPrice[:])
	return nil
}

func opTimestamp(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetUint64(uint64(context.Timestamp))
	return nil
}

func opNumber(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetUint64(uint64(context.BlockNumber))
	return nil
}

func opGasLimit(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetUint64(uint64(context.GasLimit))
	return nil
}

func opDifficulty(s *ExecutionState, host hostCaller) error {
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes32(context.Difficulty[:])
	return nil
}

func opChainId(s *ExecutionState, host hostCaller) error {
	if !s.IsAtLeast(fidelio.R07_Istanbul) {
		return fidelio.ErrInvalidRevision
	}
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes32(context.ChainID[:])
	return nil
}

func opBaseFee(s *ExecutionState, host hostCaller) error {
	if !s.IsAtLeast(fidelio.R10_London) {
		return fidelio.ErrInvalidRevision
	}
	context := host.getTxContext()
	s.Stack.PushUndefined().SetBytes32(context.BaseFee[:])
	return nil
}

func opBlockhash(s *ExecutionState, host hostCaller) error {
	slot := s.Stack.Peek()

	upper := uint64(host.getTxContext().BlockNumber)
	lower := uint64(0)
	if upper > 256 {
		lower = upper - 256
	}

	// Hashes are only available for the last 256 blocks; everything else
	// yields the zero hash.
	var hash fidelio.Hash
	if number, overflow := slot.Uint64WithOverflow(); !overflow && number >= lower && number < upper {
		hash = host.getBlockHash(int64(number))
	}
	slot.SetBytes32(hash[:])
	return nil
}

func opSload(s *ExecutionState, host hostCaller) error {
	slot := s.Stack.Peek()
	key := fidelio.Key(slot.Bytes32())
	if s.IsAtLeast(fidelio.R09_Berlin) {
		if host.accessStorage(s.Params.Recipient, key) == fidelio.ColdAccess {
			// The warm storage access cost was already charged by the static
			// cost table; only the additional cold cost applies here.
			if err := s.UseGas(AdditionalColdSloadCost); err != nil {
				return err
			}
		}
	}
	value := host.getStorage(s.Params.Recipient, key)
	slot.SetBytes32(value[:])
	return nil
}

func opSstore(s *ExecutionState, host hostCaller) error {

	// SSTORE is a write instruction, it shall not be executed in static mode.
	if s.Params.Static {
		return fidelio.ErrStaticContextViolation
	}

	// EIP-2200 demands that more than the call stipend is available,
	// so that SSTORE can never be attempted on the stipend alone.
	if s.IsAtLeast(fidelio.R07_Istanbul) && s.Gas <= SstoreSentryGas {
		return fidelio.ErrOutOfGas
	}

	key := fidelio.Key(s.Stack.Pop().Bytes32())
	value := fidelio.Word(s.Stack.Pop().Bytes32())

	coldCharge := fidelio.Gas(0)
	if s.IsAtLeast(fidelio.R09_Berlin) {
		if host.accessStorage(s.Params.Recipient, key) == fidelio.ColdAccess {
			coldCharge = ColdSloadCost
		}
	}

	status := host.setStorage(s.Params.Recipient, key, value)
	return s.UseGas(getDynamicCostsForSstore(s.Params.Revision, status, coldCharge))
}

func opLog(s *ExecutionState, host hostCaller, numTopics int) error {

	// LogN op codes are write instructions, they shall not be executed in
	// static mode.
	if s.Params.Static {
		return fidelio.ErrStaticContextViolation
	}

	offset := s.Stack.Pop()
	size := s.Stack.Pop()

	region, err := s.Memory.VerifyRegion(s, offset, size)
	if err != nil {
		return fidelio.ErrOutOfGas
	}

	if region != nil {
		if err := s.UseGas(fidelio.Gas(region.Size) * LogDataGas); err != nil {
			return err
		}
	}

	topics := make([]fidelio.Hash, numTopics)
	for i := 0; i < numTopics; i++ {
		topics[i] = s.Stack.Pop().Bytes32()
	}

	// Copy the data to disconnect the log entry from the frame memory.
	data := fidelio.Data(bytes.Clone(s.Memory.Span(region)))
	host.emitLog(s.Params.Recipient, data, topics)
	return nil
}

func opSelfdestruct(s *ExecutionState, host hostCaller) error {

	// Selfdestruct is a write instruction, it shall not be executed in
	// static mode.
	if s.Params.Static {
		return fidelio.ErrStaticContextViolation
	}

	beneficiary := fidelio.Address(s.Stack.Pop().Bytes20())

	if s.IsAtLeast(fidelio.R09_Berlin) {
		if host.accessAccount(beneficiary) == fidelio.ColdAccess {
			// Unlike BALANCE or EXTCODESIZE, SELFDESTRUCT charges the full
			// cold account access cost on top of its static price.
			if err := s.UseGas(ColdAccountAccessCost); err != nil {
				return err
			}
		}
	}

	// Since Tangerine Whistle, sending funds to a non-existing beneficiary
	// costs extra. At exactly Tangerine Whistle the charge applies even if
	// there are no funds to send.
	if s.IsAtLeast(fidelio.R02_TangerineWhistle) &&
		(s.Params.Revision == fidelio.R02_TangerineWhistle ||
			!host.getBalance(s.Params.Recipient).IsZero()) {
		if !host.accountExists(beneficiary) {
			if err := s.UseGas(SelfdestructNewAccountGas); err != nil {
				return err
			}
		}
	}

	host.selfdestruct(s.Params.Recipient, beneficiary)
	return nil
}
