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

const (
	ColdSloadCost         fidelio.Gas = 2100 // Cost of cold SLOAD after EIP 2929
	ColdAccountAccessCost fidelio.Gas = 2600 // Cost of cold account access after EIP 2929
	WarmStorageReadCost   fidelio.Gas = 100  // Cost of reading warm storage after EIP 2929

	// The static cost table already charges the warm cost for every
	// state-touching instruction from Berlin on. Handlers only add the
	// difference when the host reports a cold access.
	AdditionalColdSloadCost         = ColdSloadCost - WarmStorageReadCost
	AdditionalColdAccountAccessCost = ColdAccountAccessCost - WarmStorageReadCost

	SstoreSetGas    fidelio.Gas = 20000 // Once per SSTORE operation from clean zero to non-zero
	SstoreResetGas  fidelio.Gas = 5000  // Once per SSTORE operation from clean non-zero to something else
	SstoreSentryGas fidelio.Gas = 2300  // Minimum gas required to be present for an SSTORE call, not consumed

	SstoreNoopGasConstantinople fidelio.Gas = 200 // Net-metered no-op SSTORE under EIP-1283
	SstoreNoopGasIstanbul       fidelio.Gas = 800 // Net-metered no-op SSTORE under EIP-2200

	LogDataGas  fidelio.Gas = 8   // Per byte of data in a LOG operation
	LogGas      fidelio.Gas = 375 // Per LOG operation
	LogTopicGas fidelio.Gas = 375 // Per topic of a LOG operation

	// SelfdestructNewAccountGas is charged when the beneficiary of a
	// selfdestruct does not exist. Introduced in Tangerine Whistle (EIP-150).
	SelfdestructNewAccountGas fidelio.Gas = 25000
	SelfdestructGasTangerine  fidelio.Gas = 5000 // Static cost of SELFDESTRUCT post EIP-150
)

// GetStaticGasPrice yields the base cost of an instruction under the given
// revision. The base cost is charged by the dispatcher before the handler
// runs; dynamic components such as cold-access surcharges or storage-status
// pricing are applied by the handlers themselves.
func GetStaticGasPrice(op OpCode, revision fidelio.Revision) fidelio.Gas {
	switch op {
	case ADDRESS, ORIGIN, CALLER, CALLVALUE, GASPRICE,
		COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT, CHAINID, BASEFEE:
		return 2
	case SELFBALANCE:
		return 5
	case BLOCKHASH:
		return 20
	case BALANCE:
		switch {
		case revision >= fidelio.R09_Berlin:
			return WarmStorageReadCost
		case revision >= fidelio.R07_Istanbul:
			return 700
		case revision >= fidelio.R02_TangerineWhistle:
			return 400
		default:
			return 20
		}
	case EXTCODESIZE:
		switch {
		case revision >= fidelio.R09_Berlin:
			return WarmStorageReadCost
		case revision >= fidelio.R02_TangerineWhistle:
			return 700
		default:
			return 20
		}
	case SLOAD:
		switch {
		case revision >= fidelio.R09_Berlin:
			return WarmStorageReadCost
		case revision >= fidelio.R07_Istanbul:
			return 800
		case revision >= fidelio.R02_TangerineWhistle:
			return 200
		default:
			return 50
		}
	case SSTORE:
		return 0 // fully priced by the storage status
	case LOG0, LOG1, LOG2, LOG3, LOG4:
		return LogGas + LogTopicGas*fidelio.Gas(op-LOG0)
	case SELFDESTRUCT:
		if revision >= fidelio.R02_TangerineWhistle {
			return SelfdestructGasTangerine
		}
		return 0
	}
	return 0
}

// getDynamicCostsForSstore computes the total price of an SSTORE based on
// the storage status reported by the host. coldCharge is the cold-access
// cost accumulated before the write was issued; it is zero for warm slots
// and for revisions before Berlin.
func getDynamicCostsForSstore(revision fidelio.Revision, status fidelio.StorageStatus, coldCharge fidelio.Gas) fidelio.Gas {
	switch status {
	case fidelio.StorageUnchanged, fidelio.StorageModifiedAgain:
		if revision >= fidelio.R09_Berlin {
			return coldCharge + WarmStorageReadCost
		}
		if revision == fidelio.R07_Istanbul {
			return SstoreNoopGasIstanbul
		}
		if revision == fidelio.R05_Constantinople {
			return SstoreNoopGasConstantinople
		}
		return SstoreResetGas
	case fidelio.StorageModified, fidelio.StorageDeleted:
		if revision >= fidelio.R09_Berlin {
			return coldCharge + SstoreResetGas - ColdSloadCost
		}
		return SstoreResetGas
	case fidelio.StorageAdded:
		return coldCharge + SstoreSetGas
	}
	return coldCharge + SstoreSetGas
}
