// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package covm implements the state-touching instruction core of the Fidelio
// EVM as a set of resumable instruction handlers. A handler that depends on
// ledger state suspends with a request from the closed interrupt catalogue of
// the fidelio package and continues once the driver resumes it with the
// matching answer. The executing goroutine of the driver is never blocked by
// a suspended handler; any number of independent frames may be interleaved.
package covm
