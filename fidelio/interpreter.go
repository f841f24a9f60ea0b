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

// Parameters summarizes the input parameters of a single call frame. The
// parameters are fixed for the lifetime of the frame.
type Parameters struct {
	Revision  Revision
	Static    bool
	Gas       Gas
	Recipient Address
	Sender    Address
	Value     Value
}

// ResumeMatches reports whether the given response variant is the one
// matching the kind of the given request. Drivers resuming a suspended
// execution with a response for which this predicate is false are breaking
// the host-interaction contract.
func ResumeMatches(request Interrupt, response ResumeData) bool {
	switch request.(type) {
	case AccessAccount, AccessStorage:
		_, ok := response.(AccessStatusData)
		return ok
	case GetBalance:
		_, ok := response.(BalanceData)
		return ok
	case GetCodeSize:
		_, ok := response.(CodeSizeData)
		return ok
	case GetTxContext:
		_, ok := response.(TxContextData)
		return ok
	case GetBlockHash:
		_, ok := response.(BlockHashData)
		return ok
	case GetStorage:
		_, ok := response.(StorageValueData)
		return ok
	case SetStorage:
		_, ok := response.(StorageStatusData)
		return ok
	case AccountExists:
		_, ok := response.(AccountExistsData)
		return ok
	case EmitLog, Selfdestruct:
		_, ok := response.(EmptyData)
		return ok
	}
	return false
}
