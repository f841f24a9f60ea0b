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

import (
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestServeInterrupt_DispatchesEveryRequestKind(t *testing.T) {
	address := Address{0x01}
	key := Key{31: 0x02}
	value := Word{31: 0x03}
	hash := Hash{0x04}
	topics := []Hash{{0x05}}
	data := Data{0x06}
	context := TxContext{BlockNumber: 42}

	tests := map[string]struct {
		request Interrupt
		setup   func(*MockHost)
		want    ResumeData
	}{
		"access account": {
			request: AccessAccount{Address: address},
			setup: func(host *MockHost) {
				host.EXPECT().AccessAccount(address).Return(ColdAccess)
			},
			want: AccessStatusData{Status: ColdAccess},
		},
		"access storage": {
			request: AccessStorage{Address: address, Key: key},
			setup: func(host *MockHost) {
				host.EXPECT().AccessStorage(address, key).Return(WarmAccess)
			},
			want: AccessStatusData{Status: WarmAccess},
		},
		"get balance": {
			request: GetBalance{Address: address},
			setup: func(host *MockHost) {
				host.EXPECT().GetBalance(address).Return(NewValue(7))
			},
			want: BalanceData{Balance: NewValue(7)},
		},
		"get code size": {
			request: GetCodeSize{Address: address},
			setup: func(host *MockHost) {
				host.EXPECT().GetCodeSize(address).Return(123)
			},
			want: CodeSizeData{Size: 123},
		},
		"get tx context": {
			request: GetTxContext{},
			setup: func(host *MockHost) {
				host.EXPECT().GetTxContext().Return(context)
			},
			want: TxContextData{Context: context},
		},
		"get block hash": {
			request: GetBlockHash{Number: 41},
			setup: func(host *MockHost) {
				host.EXPECT().GetBlockHash(int64(41)).Return(hash)
			},
			want: BlockHashData{Hash: hash},
		},
		"get storage": {
			request: GetStorage{Address: address, Key: key},
			setup: func(host *MockHost) {
				host.EXPECT().GetStorage(address, key).Return(value)
			},
			want: StorageValueData{Value: value},
		},
		"set storage": {
			request: SetStorage{Address: address, Key: key, Value: value},
			setup: func(host *MockHost) {
				host.EXPECT().SetStorage(address, key, value).Return(StorageAdded)
			},
			want: StorageStatusData{Status: StorageAdded},
		},
		"account exists": {
			request: AccountExists{Address: address},
			setup: func(host *MockHost) {
				host.EXPECT().AccountExists(address).Return(true)
			},
			want: AccountExistsData{Exists: true},
		},
		"emit log": {
			request: EmitLog{Address: address, Data: data, Topics: topics},
			setup: func(host *MockHost) {
				host.EXPECT().EmitLog(address, data, topics)
			},
			want: EmptyData{},
		},
		"selfdestruct": {
			request: Selfdestruct{Address: address, Beneficiary: Address{0x07}},
			setup: func(host *MockHost) {
				host.EXPECT().Selfdestruct(address, Address{0x07})
			},
			want: EmptyData{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			host := NewMockHost(ctrl)
			test.setup(host)

			got := ServeInterrupt(host, test.request)
			if !reflect.DeepEqual(test.want, got) {
				t.Errorf("expected %v, got %v", test.want, got)
			}
			if !ResumeMatches(test.request, got) {
				t.Errorf("produced resume data %T does not match request %T", got, test.request)
			}
		})
	}
}

func TestResumeMatches_RejectsForeignVariants(t *testing.T) {
	requests := []Interrupt{
		AccessAccount{},
		AccessStorage{},
		GetBalance{},
		GetCodeSize{},
		GetTxContext{},
		GetBlockHash{},
		GetStorage{},
		SetStorage{},
		AccountExists{},
		EmitLog{},
		Selfdestruct{},
	}
	responses := []ResumeData{
		AccessStatusData{},
		BalanceData{},
		CodeSizeData{},
		TxContextData{},
		BlockHashData{},
		StorageValueData{},
		StorageStatusData{},
		AccountExistsData{},
		EmptyData{},
	}

	for _, request := range requests {
		matches := 0
		for _, response := range responses {
			if ResumeMatches(request, response) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("request %T matches %d response variants, expected exactly 1", request, matches)
		}
	}
}

func TestAccessStatus_String(t *testing.T) {
	if want, got := "cold", ColdAccess.String(); want != got {
		t.Errorf("expected %s, got %s", want, got)
	}
	if want, got := "warm", WarmAccess.String(); want != got {
		t.Errorf("expected %s, got %s", want, got)
	}
}
