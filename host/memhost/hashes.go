// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memhost

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/fidelio-vm/fidelio/fidelio"
)

var keccakHasherPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

func keccak256(data []byte) fidelio.Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	defer keccakHasherPool.Put(hasher)
	hasher.Reset()
	hasher.Write(data)
	var res fidelio.Hash
	hasher.Read(res[:])
	return res
}

// keccakHasher is the subset of sha3's state used here. The legacy keccak
// hasher supports Read, which avoids the allocation Sum incurs.
type keccakHasher interface {
	Reset()
	Write(data []byte) (int, error)
	Read(out []byte) (int, error)
}
