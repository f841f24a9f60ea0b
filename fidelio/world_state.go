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

import "fmt"

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Key represents the 256-bit (32 bytes) key of a storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 byte) word in the EVM.
type Word [32]byte

// Value represents an amount of chain currency, typically wei.
type Value [32]byte

// Hash represents the 256-bit (32 bytes) hash of a code, a block, a topic
// or similar sequence of cryptographic summary information.
type Hash [32]byte

// StorageStatus is an enum utilized to indicate the effect of a storage
// slot update on the respective slot in the context of the current
// transaction. It is needed to perform proper gas price calculations of
// SSTORE operations.
type StorageStatus int

const (
	// The comment indicates the storage values for the corresponding
	// configuration. X, Y, Z are non-zero numbers, distinct from each other,
	// while 0 is zero.
	//
	// <current> -> <new>
	StorageUnchanged     StorageStatus = iota // X -> X
	StorageAdded                              // 0 -> Z  (slot was originally empty)
	StorageModified                           // X -> Z  (first modification in this transaction)
	StorageDeleted                            // X -> 0  (first modification in this transaction)
	StorageModifiedAgain                      // slot was already dirty in this transaction
)

func (s StorageStatus) String() string {
	switch s {
	case StorageUnchanged:
		return "StorageUnchanged"
	case StorageAdded:
		return "StorageAdded"
	case StorageModified:
		return "StorageModified"
	case StorageDeleted:
		return "StorageDeleted"
	case StorageModifiedAgain:
		return "StorageModifiedAgain"
	}
	return fmt.Sprintf("StorageStatus(%d)", int(s))
}

func GetAllStorageStatuses() []StorageStatus {
	return []StorageStatus{
		StorageUnchanged,
		StorageAdded,
		StorageModified,
		StorageDeleted,
		StorageModifiedAgain,
	}
}

// GetStorageStatus obtains the status code to be reported for a storage
// write with the given original (=committed), current, and new value of
// the slot. Host implementations are expected to derive the status they
// answer SetStorage requests with using this function.
func GetStorageStatus(original, current, new Word) StorageStatus {
	var zero = Word{}

	if current == new {
		return StorageUnchanged
	}

	if original == current {
		if current == zero {
			return StorageAdded
		}
		if new == zero {
			return StorageDeleted
		}
		return StorageModified
	}

	// The slot was already modified earlier in this transaction.
	return StorageModifiedAgain
}
