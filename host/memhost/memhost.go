// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memhost provides a self-contained in-memory implementation of the
// fidelio.Host interface. It backs the integration tests and the fidelio-run
// tool; it is not a production ledger.
package memhost

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fidelio-vm/fidelio/fidelio"
)

// Log is one log entry recorded through an EmitLog request.
type Log struct {
	Address fidelio.Address
	Topics  []fidelio.Hash
	Data    fidelio.Data
}

// Destruction records one Selfdestruct request.
type Destruction struct {
	Address     fidelio.Address
	Beneficiary fidelio.Address
}

type slotId struct {
	address fidelio.Address
	key     fidelio.Key
}

type account struct {
	exists  bool
	balance fidelio.Value
	code    []byte
	storage map[fidelio.Key]fidelio.Word
}

// Host is an in-memory world state covering the full request catalogue.
// All operations are serialized through an internal lock, so interleaved
// frames may share one Host instance.
type Host struct {
	mu sync.Mutex

	txContext fidelio.TxContext
	accounts  map[fidelio.Address]*account

	// Per-transaction tracking: warm sets for EIP-2929 access reporting and
	// the original slot values needed to classify storage writes.
	warmAccounts map[fidelio.Address]struct{}
	warmSlots    map[slotId]struct{}
	original     map[slotId]fidelio.Word

	logs        []Log
	destructed  []Destruction
	blockHashes *lru.Cache[int64, fidelio.Hash]
}

// New creates an empty host with the given transaction context.
func New(txContext fidelio.TxContext) *Host {
	cache, err := lru.New[int64, fidelio.Hash](256)
	if err != nil {
		panic(err) // only fails for non-positive sizes
	}
	return &Host{
		txContext:    txContext,
		accounts:     map[fidelio.Address]*account{},
		warmAccounts: map[fidelio.Address]struct{}{},
		warmSlots:    map[slotId]struct{}{},
		original:     map[slotId]fidelio.Word{},
		blockHashes:  cache,
	}
}

func (h *Host) getOrCreateAccount(address fidelio.Address) *account {
	cur, found := h.accounts[address]
	if !found {
		cur = &account{exists: true, storage: map[fidelio.Key]fidelio.Word{}}
		h.accounts[address] = cur
	}
	return cur
}

// SetBalance creates the account if needed and assigns its balance.
func (h *Host) SetBalance(address fidelio.Address, balance fidelio.Value) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.getOrCreateAccount(address).balance = balance
}

// SetCode creates the account if needed and assigns its code.
func (h *Host) SetCode(address fidelio.Address, code []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.getOrCreateAccount(address).code = code
}

// SetStorageValue assigns a slot value without transaction tracking,
// as if the value had been committed before the transaction started.
func (h *Host) SetStorageValue(address fidelio.Address, key fidelio.Key, value fidelio.Word) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.getOrCreateAccount(address).storage[key] = value
}

// Logs returns all log entries recorded so far.
func (h *Host) Logs() []Log {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.logs
}

// Destructed returns all selfdestruct records so far.
func (h *Host) Destructed() []Destruction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destructed
}

func (h *Host) AccessAccount(address fidelio.Address) fidelio.AccessStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, warm := h.warmAccounts[address]; warm {
		return fidelio.WarmAccess
	}
	h.warmAccounts[address] = struct{}{}
	return fidelio.ColdAccess
}

func (h *Host) AccessStorage(address fidelio.Address, key fidelio.Key) fidelio.AccessStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := slotId{address, key}
	if _, warm := h.warmSlots[id]; warm {
		return fidelio.WarmAccess
	}
	h.warmSlots[id] = struct{}{}
	return fidelio.ColdAccess
}

func (h *Host) GetBalance(address fidelio.Address) fidelio.Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, found := h.accounts[address]; found {
		return cur.balance
	}
	return fidelio.Value{}
}

func (h *Host) GetCodeSize(address fidelio.Address) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, found := h.accounts[address]; found {
		return len(cur.code)
	}
	return 0
}

func (h *Host) GetTxContext() fidelio.TxContext {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.txContext
}

// GetBlockHash derives a stable pseudo hash for the given block number. Real
// hosts answer this from chain data; here the hash is the keccak of the
// number, memoized since the 256-block window is revisited frequently.
func (h *Host) GetBlockHash(number int64) fidelio.Hash {
	if hash, found := h.blockHashes.Get(number); found {
		return hash
	}
	var encoded [8]byte
	for i := 0; i < 8; i++ {
		encoded[7-i] = byte(number >> (8 * i))
	}
	hash := keccak256(encoded[:])
	h.blockHashes.Add(number, hash)
	return hash
}

func (h *Host) GetStorage(address fidelio.Address, key fidelio.Key) fidelio.Word {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, found := h.accounts[address]; found {
		return cur.storage[key]
	}
	return fidelio.Word{}
}

func (h *Host) SetStorage(address fidelio.Address, key fidelio.Key, value fidelio.Word) fidelio.StorageStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur := h.getOrCreateAccount(address)
	current := cur.storage[key]

	id := slotId{address, key}
	original, dirty := h.original[id]
	if !dirty {
		original = current
		h.original[id] = original
	}

	cur.storage[key] = value
	return fidelio.GetStorageStatus(original, current, value)
}

func (h *Host) AccountExists(address fidelio.Address) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur, found := h.accounts[address]
	return found && cur.exists
}

func (h *Host) EmitLog(address fidelio.Address, data fidelio.Data, topics []fidelio.Hash) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, Log{Address: address, Topics: topics, Data: data})
}

func (h *Host) Selfdestruct(address, beneficiary fidelio.Address) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destructed = append(h.destructed, Destruction{Address: address, Beneficiary: beneficiary})
	if cur, found := h.accounts[address]; found {
		h.getOrCreateAccount(beneficiary).balance = addValues(h.getOrCreateAccount(beneficiary).balance, cur.balance)
		cur.balance = fidelio.Value{}
		cur.exists = false
	}
}

func addValues(a, b fidelio.Value) fidelio.Value {
	sum := a.ToUint256()
	sum.Add(sum, b.ToUint256())
	return fidelio.ValueFromUint256(sum)
}
