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

//go:generate mockgen -source host.go -destination host_mock.go -package fidelio

// AccessStatus is an enum utilized to indicate cold and warm account or
// storage slot accesses. Whether an account or slot is warm is tracked by
// the host for the scope of the current transaction; the interpreter only
// queries the status and prices accesses accordingly.
type AccessStatus bool

const (
	ColdAccess AccessStatus = false
	WarmAccess AccessStatus = true
)

func (s AccessStatus) String() string {
	if s == ColdAccess {
		return "cold"
	}
	return "warm"
}

// TxContext summarizes the transaction and block level information
// instructions like ORIGIN, COINBASE, or NUMBER may query from the host.
// The context is immutable for the duration of a transaction; the
// interpreter nevertheless re-fetches it on every use and never caches it
// across instructions.
type TxContext struct {
	GasPrice    Value
	Origin      Address
	Coinbase    Address
	BlockNumber int64
	Timestamp   int64
	GasLimit    Gas
	Difficulty  Word
	ChainID     Word
	BaseFee     Value
}

// Interrupt is the closed set of requests an instruction handler may issue
// towards its host. A handler suspends after producing a request and is
// resumed with the matching ResumeData variant. The set is sealed; hosts
// must handle every variant.
type Interrupt interface {
	isInterrupt()
}

// AccessAccount asks the host to record an access to the given account and
// report whether the account was cold or warm before the access.
type AccessAccount struct {
	Address Address
}

// AccessStorage asks the host to record an access to the given storage slot
// and report whether the slot was cold or warm before the access.
type AccessStorage struct {
	Address Address
	Key     Key
}

// GetBalance requests the current balance of the given account.
type GetBalance struct {
	Address Address
}

// GetCodeSize requests the size of the code deployed at the given address.
type GetCodeSize struct {
	Address Address
}

// GetTxContext requests the transaction context of the current transaction.
type GetTxContext struct{}

// GetBlockHash requests the hash of the block with the given number. The
// interpreter only issues this request for numbers within the 256-block
// window below the current block.
type GetBlockHash struct {
	Number int64
}

// GetStorage requests the current value of the given storage slot.
type GetStorage struct {
	Address Address
	Key     Key
}

// SetStorage asks the host to update the given storage slot and report the
// effect of the write as a StorageStatus.
type SetStorage struct {
	Address Address
	Key     Key
	Value   Word
}

// AccountExists asks whether an account exists at the given address.
type AccountExists struct {
	Address Address
}

// EmitLog asks the host to record a log entry. It is acknowledged with an
// EmptyData response.
type EmitLog struct {
	Address Address
	Data    Data
	Topics  []Hash
}

// Selfdestruct asks the host to destroy the given account and transfer its
// balance to the beneficiary. It is acknowledged with an EmptyData response.
type Selfdestruct struct {
	Address     Address
	Beneficiary Address
}

func (AccessAccount) isInterrupt() {}
func (AccessStorage) isInterrupt() {}
func (GetBalance) isInterrupt()    {}
func (GetCodeSize) isInterrupt()   {}
func (GetTxContext) isInterrupt()  {}
func (GetBlockHash) isInterrupt()  {}
func (GetStorage) isInterrupt()    {}
func (SetStorage) isInterrupt()    {}
func (AccountExists) isInterrupt() {}
func (EmitLog) isInterrupt()       {}
func (Selfdestruct) isInterrupt()  {}

// ResumeData is the closed set of responses a host may resume a suspended
// instruction handler with. The variant must match the kind of the
// interrupt that produced it; a mismatch is a broken driver contract, not
// a condition a contract under execution can trigger.
type ResumeData interface {
	isResumeData()
}

// AccessStatusData answers AccessAccount and AccessStorage requests.
type AccessStatusData struct {
	Status AccessStatus
}

// BalanceData answers GetBalance requests.
type BalanceData struct {
	Balance Value
}

// CodeSizeData answers GetCodeSize requests.
type CodeSizeData struct {
	Size int
}

// TxContextData answers GetTxContext requests.
type TxContextData struct {
	Context TxContext
}

// BlockHashData answers GetBlockHash requests.
type BlockHashData struct {
	Hash Hash
}

// StorageValueData answers GetStorage requests.
type StorageValueData struct {
	Value Word
}

// StorageStatusData answers SetStorage requests.
type StorageStatusData struct {
	Status StorageStatus
}

// AccountExistsData answers AccountExists requests.
type AccountExistsData struct {
	Exists bool
}

// EmptyData acknowledges effect-only requests (EmitLog, Selfdestruct).
type EmptyData struct{}

func (AccessStatusData) isResumeData()  {}
func (BalanceData) isResumeData()       {}
func (CodeSizeData) isResumeData()      {}
func (TxContextData) isResumeData()     {}
func (BlockHashData) isResumeData()     {}
func (StorageValueData) isResumeData()  {}
func (StorageStatusData) isResumeData() {}
func (AccountExistsData) isResumeData() {}
func (EmptyData) isResumeData()         {}

// Host is a synchronous view on the ledger state covering the full request
// catalogue. Drivers that do not need to defer host queries can serve all
// interrupts of an execution through ServeInterrupt against a Host.
type Host interface {
	AccessAccount(Address) AccessStatus
	AccessStorage(Address, Key) AccessStatus
	GetBalance(Address) Value
	GetCodeSize(Address) int
	GetTxContext() TxContext
	GetBlockHash(number int64) Hash
	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word) StorageStatus
	AccountExists(Address) bool
	EmitLog(Address, Data, []Hash)
	Selfdestruct(addr Address, beneficiary Address)
}

// ServeInterrupt resolves a single interrupt against the given host and
// produces the matching resume data.
func ServeInterrupt(host Host, interrupt Interrupt) ResumeData {
	switch request := interrupt.(type) {
	case AccessAccount:
		return AccessStatusData{Status: host.AccessAccount(request.Address)}
	case AccessStorage:
		return AccessStatusData{Status: host.AccessStorage(request.Address, request.Key)}
	case GetBalance:
		return BalanceData{Balance: host.GetBalance(request.Address)}
	case GetCodeSize:
		return CodeSizeData{Size: host.GetCodeSize(request.Address)}
	case GetTxContext:
		return TxContextData{Context: host.GetTxContext()}
	case GetBlockHash:
		return BlockHashData{Hash: host.GetBlockHash(request.Number)}
	case GetStorage:
		return StorageValueData{Value: host.GetStorage(request.Address, request.Key)}
	case SetStorage:
		return StorageStatusData{Status: host.SetStorage(request.Address, request.Key, request.Value)}
	case AccountExists:
		return AccountExistsData{Exists: host.AccountExists(request.Address)}
	case EmitLog:
		host.EmitLog(request.Address, request.Data, request.Topics)
		return EmptyData{}
	case Selfdestruct:
		host.Selfdestruct(request.Address, request.Beneficiary)
		return EmptyData{}
	}
	panic("unknown interrupt variant")
}
