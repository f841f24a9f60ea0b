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
	"testing"

	"github.com/fidelio-vm/fidelio/fidelio"
)

func TestGetStaticGasPrice_RevisionSchedules(t *testing.T) {
	tests := map[string]struct {
		op       OpCode
		revision fidelio.Revision
		want     fidelio.Gas
	}{
		"balance frontier":        {op: BALANCE, revision: fidelio.R00_Frontier, want: 20},
		"balance tangerine":       {op: BALANCE, revision: fidelio.R02_TangerineWhistle, want: 400},
		"balance istanbul":        {op: BALANCE, revision: fidelio.R07_Istanbul, want: 700},
		"balance berlin":          {op: BALANCE, revision: fidelio.R09_Berlin, want: WarmStorageReadCost},
		"extcodesize frontier":    {op: EXTCODESIZE, revision: fidelio.R00_Frontier, want: 20},
		"extcodesize tangerine":   {op: EXTCODESIZE, revision: fidelio.R02_TangerineWhistle, want: 700},
		"extcodesize berlin":      {op: EXTCODESIZE, revision: fidelio.R09_Berlin, want: WarmStorageReadCost},
		"sload frontier":          {op: SLOAD, revision: fidelio.R00_Frontier, want: 50},
		"sload tangerine":         {op: SLOAD, revision: fidelio.R02_TangerineWhistle, want: 200},
		"sload istanbul":          {op: SLOAD, revision: fidelio.R07_Istanbul, want: 800},
		"sload berlin":            {op: SLOAD, revision: fidelio.R09_Berlin, want: WarmStorageReadCost},
		"sload london":            {op: SLOAD, revision: fidelio.R10_London, want: WarmStorageReadCost},
		"sstore":                  {op: SSTORE, revision: fidelio.R10_London, want: 0},
		"selfdestruct frontier":   {op: SELFDESTRUCT, revision: fidelio.R00_Frontier, want: 0},
		"selfdestruct tangerine":  {op: SELFDESTRUCT, revision: fidelio.R02_TangerineWhistle, want: SelfdestructGasTangerine},
		"selfdestruct london":     {op: SELFDESTRUCT, revision: fidelio.R10_London, want: SelfdestructGasTangerine},
		"address":                 {op: ADDRESS, revision: fidelio.R00_Frontier, want: 2},
		"selfbalance":             {op: SELFBALANCE, revision: fidelio.R07_Istanbul, want: 5},
		"blockhash":               {op: BLOCKHASH, revision: fidelio.R00_Frontier, want: 20},
		"log0":                    {op: LOG0, revision: fidelio.R00_Frontier, want: 375},
		"log4":                    {op: LOG4, revision: fidelio.R00_Frontier, want: 375 + 4*375},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.want, GetStaticGasPrice(test.op, test.revision); want != got {
				t.Errorf("expected %d, got %d", want, got)
			}
		})
	}
}

func TestGetDynamicCostsForSstore_ColdChargeIsAdditive(t *testing.T) {
	for _, status := range fidelio.GetAllStorageStatuses() {
		warm := getDynamicCostsForSstore(fidelio.R10_London, status, 0)
		cold := getDynamicCostsForSstore(fidelio.R10_London, status, ColdSloadCost)
		if want, got := warm+ColdSloadCost, cold; want != got {
			t.Errorf("%v: expected cold cost %d, got %d", status, want, got)
		}
	}
}

func TestUseGas_SubtractsBeforeChecking(t *testing.T) {
	state := newTestState(fidelio.R10_London, 10)

	if err := state.UseGas(4); err != nil {
		t.Fatalf("unexpected out of gas: %v", err)
	}
	if want, got := fidelio.Gas(6), state.Gas; want != got {
		t.Fatalf("expected %d gas left, got %d", want, got)
	}

	if err := state.UseGas(10); err == nil {
		t.Fatal("expected an out of gas error")
	}
	if want, got := fidelio.Gas(-4), state.Gas; want != got {
		t.Errorf("expected the gas level to go negative to %d, got %d", want, got)
	}
}

func TestUseGas_NegativeAmountsAreRejected(t *testing.T) {
	state := newTestState(fidelio.R10_London, 10)
	if err := state.UseGas(-1); err == nil {
		t.Error("expected a negative charge to be rejected")
	}
}
