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
	errInvalidOpCode  = fidelio.ConstError("invalid instruction")
	errStackOverflow  = fidelio.ConstError("stack overflow")
	errStackUnderflow = fidelio.ConstError("stack underflow")
)
