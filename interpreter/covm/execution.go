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
	"fmt"

	"github.com/fidelio-vm/fidelio/fidelio"
)

// Execution is a single instruction invocation that may suspend on host
// requests. The handler runs on its own goroutine; the goroutine of the
// driver is only occupied while the handler is actually making progress
// between two suspension points. At most one request is outstanding at any
// time, and requests are resolved strictly in the order they are issued.
//
// An Execution is not thread-safe; it is owned by one driver goroutine.
// Independent executions of different frames may be interleaved freely.
type Execution struct {
	state *ExecutionState

	interrupts chan fidelio.Interrupt
	resumes    chan fidelio.ResumeData
	done       chan error
	abort      chan struct{}

	pending  fidelio.Interrupt
	finished bool
	aborted  bool
	err      error
}

// frameAbandoned is the panic value used to unwind a handler goroutine whose
// frame was abandoned by the driver.
type frameAbandoned struct{}

// Begin starts the handler of the given instruction on the given frame state
// and advances it to its first suspension point or to completion. The state
// must not be accessed by the caller until the execution is done or aborted.
func Begin(state *ExecutionState, op OpCode) *Execution {
	e := &Execution{
		state:      state,
		interrupts: make(chan fidelio.Interrupt),
		resumes:    make(chan fidelio.ResumeData),
		done:       make(chan error, 1),
		abort:      make(chan struct{}),
	}
	go e.run(op)
	e.advance()
	return e
}

func (e *Execution) run(op OpCode) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(frameAbandoned); ok {
				return
			}
			panic(r)
		}
	}()
	e.done <- dispatch(op, e.state, hostCaller{e})
}

// advance blocks until the handler either suspends on a request or finishes.
func (e *Execution) advance() {
	select {
	case request := <-e.interrupts:
		e.pending = request
	case err := <-e.done:
		e.finished = true
		e.err = err
	}
}

// Done reports whether the handler has completed. A completed execution has
// no pending request and must not be resumed.
func (e *Execution) Done() bool {
	return e.finished
}

// Pending returns the outstanding host request of a suspended execution, or
// nil if the execution has completed or was aborted.
func (e *Execution) Pending() fidelio.Interrupt {
	return e.pending
}

// Resume answers the pending request and advances the handler to its next
// suspension point or to completion. Resuming a completed or aborted
// execution, or resuming with a response variant that does not match the
// pending request, is a broken driver contract and panics.
func (e *Execution) Resume(data fidelio.ResumeData) {
	if e.aborted {
		panic("resuming an abandoned execution")
	}
	if e.finished || e.pending == nil {
		panic("resuming an execution without pending request")
	}
	if !fidelio.ResumeMatches(e.pending, data) {
		panic(fmt.Sprintf("resume data %T does not answer a %T request", data, e.pending))
	}
	e.pending = nil
	e.resumes <- data
	e.advance()
}

// Result returns the outcome of a completed execution; nil indicates the
// instruction succeeded.
func (e *Execution) Result() error {
	if !e.finished {
		panic("requesting the result of an unfinished execution")
	}
	return e.err
}

// Abort abandons a suspended execution. The handler goroutine is unwound
// without committing anything; abandonment is always safe since all durable
// effects live host-side. Aborting a completed or already aborted execution
// is a no-op.
func (e *Execution) Abort() {
	if e.finished || e.aborted {
		return
	}
	close(e.abort)
	e.pending = nil
	e.aborted = true
	e.finished = true
	e.err = fidelio.ConstError("execution abandoned")
}

// hostCaller is the handler-side view of the suspension machinery. Its
// typed accessors implement the issue-request-await-typed-response pattern
// shared by all state-touching handlers.
type hostCaller struct {
	e *Execution
}

func (h hostCaller) call(request fidelio.Interrupt) fidelio.ResumeData {
	select {
	case h.e.interrupts <- request:
	case <-h.e.abort:
		panic(frameAbandoned{})
	}
	select {
	case data := <-h.e.resumes:
		return data
	case <-h.e.abort:
		panic(frameAbandoned{})
	}
}

func (h hostCaller) accessAccount(address fidelio.Address) fidelio.AccessStatus {
	return h.call(fidelio.AccessAccount{Address: address}).(fidelio.AccessStatusData).Status
}

func (h hostCaller) accessStorage(address fidelio.Address, key fidelio.Key) fidelio.AccessStatus {
	return h.call(fidelio.AccessStorage{Address: address, Key: key}).(fidelio.AccessStatusData).Status
}

func (h hostCaller) getBalance(address fidelio.Address) fidelio.Value {
	return h.call(fidelio.GetBalance{Address: address}).(fidelio.BalanceData).Balance
}

func (h hostCaller) getCodeSize(address fidelio.Address) int {
	return h.call(fidelio.GetCodeSize{Address: address}).(fidelio.CodeSizeData).Size
}

func (h hostCaller) getTxContext() fidelio.TxContext {
	return h.call(fidelio.GetTxContext{}).(fidelio.TxContextData).Context
}

func (h hostCaller) getBlockHash(number int64) fidelio.Hash {
	return h.call(fidelio.GetBlockHash{Number: number}).(fidelio.BlockHashData).Hash
}

func (h hostCaller) getStorage(address fidelio.Address, key fidelio.Key) fidelio.Word {
	return h.call(fidelio.GetStorage{Address: address, Key: key}).(fidelio.StorageValueData).Value
}

func (h hostCaller) setStorage(address fidelio.Address, key fidelio.Key, value fidelio.Word) fidelio.StorageStatus {
	return h.call(fidelio.SetStorage{Address: address, Key: key, Value: value}).(fidelio.StorageStatusData).Status
}

func (h hostCaller) accountExists(address fidelio.Address) bool {
	return h.call(fidelio.AccountExists{Address: address}).(fidelio.AccountExistsData).Exists
}

func (h hostCaller) emitLog(address fidelio.Address, data fidelio.Data, topics []fidelio.Hash) {
	h.call(fidelio.EmitLog{Address: address, Data: data, Topics: topics})
}

func (h hostCaller) selfdestruct(address, beneficiary fidelio.Address) {
	h.call(fidelio.Selfdestruct{Address: address, Beneficiary: beneficiary})
}

// Run executes a single instruction against a synchronous host: it verifies
// the stack boundaries, charges the static base cost, and then serves every
// request of the handler directly from the given host.
func Run(state *ExecutionState, op OpCode, host fidelio.Host) error {
	if err := checkStackLimits(state.Stack.Len(), op); err != nil {
		return err
	}
	if err := state.UseGas(GetStaticGasPrice(op, state.Params.Revision)); err != nil {
		return err
	}
	execution := Begin(state, op)
	for !execution.Done() {
		execution.Resume(fidelio.ServeInterrupt(host, execution.Pending()))
	}
	return execution.Result()
}
