// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"

	"github.com/fidelio-vm/fidelio/fidelio"
	"github.com/fidelio-vm/fidelio/host/memhost"
	"github.com/fidelio-vm/fidelio/interpreter/covm"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Execute a single instruction against an in-memory host",
	ArgsUsage: "<OPCODE> [stack words, pushed left to right]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "revision",
			Usage: "chain revision to execute under",
			Value: "London",
		},
		&cli.Int64Flag{
			Name:  "gas",
			Usage: "gas budget of the frame",
			Value: 1_000_000,
		},
		&cli.BoolFlag{
			Name:  "static",
			Usage: "run the frame in static mode",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "address of the executing account, hex",
			Value: "0x0100000000000000000000000000000000000001",
		},
		&cli.StringFlag{
			Name:  "sender",
			Usage: "address of the calling account, hex",
			Value: "0x0200000000000000000000000000000000000002",
		},
		&cli.Int64Flag{
			Name:  "block-number",
			Usage: "block number of the transaction context",
			Value: 1000,
		},
	},
}

var ListCmd = cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List the instructions covered by the interpreter",
}

var revisions = func() map[string]fidelio.Revision {
	res := map[string]fidelio.Revision{}
	for _, revision := range fidelio.GetAllKnownRevisions() {
		res[revision.String()] = revision
	}
	return res
}()

func doRun(context *cli.Context) error {
	if context.Args().Len() < 1 {
		return fmt.Errorf("missing instruction name, use one of: %v", opCodeNames())
	}

	op, err := covm.ParseOpCode(context.Args().Get(0))
	if err != nil {
		return err
	}

	revision, found := revisions[context.String("revision")]
	if !found {
		names := maps.Keys(revisions)
		sort.Strings(names)
		return fmt.Errorf("unknown revision %q, use one of: %v", context.String("revision"), names)
	}

	recipient, err := parseAddress(context.String("recipient"))
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	sender, err := parseAddress(context.String("sender"))
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}

	params := fidelio.Parameters{
		Revision:  revision,
		Static:    context.Bool("static"),
		Gas:       fidelio.Gas(context.Int64("gas")),
		Recipient: recipient,
		Sender:    sender,
	}

	state := covm.NewExecutionState(params)
	defer state.Release()
	for i := 1; i < context.Args().Len(); i++ {
		word := new(uint256.Int)
		if err := word.SetFromHex(withHexPrefix(context.Args().Get(i))); err != nil {
			return fmt.Errorf("invalid stack word %q: %w", context.Args().Get(i), err)
		}
		state.Stack.Push(word)
	}

	host := memhost.New(fidelio.TxContext{
		Origin:      sender,
		Coinbase:    fidelio.Address{0xc0},
		BlockNumber: context.Int64("block-number"),
		Timestamp:   1_700_000_000,
		GasLimit:    30_000_000,
		ChainID:     fidelio.Word{31: 1},
	})
	host.SetBalance(recipient, fidelio.NewValue(1_000_000))

	if err := covm.Run(state, op, host); err != nil {
		return fmt.Errorf("%v failed: %w", op, err)
	}

	fmt.Printf("instruction: %v\n", op)
	fmt.Printf("gas left:    %d\n", state.Gas)
	fmt.Printf("stack:       %v\n", state.Stack)
	for _, log := range host.Logs() {
		fmt.Printf("log:         %x topics=%v\n", log.Data, log.Topics)
	}
	for _, record := range host.Destructed() {
		fmt.Printf("destructed:  %v -> %v\n", record.Address, record.Beneficiary)
	}
	return nil
}

func doList(context *cli.Context) error {
	for _, op := range covm.ValidOpCodes() {
		fmt.Printf("0x%02X %v\n", byte(op), op)
	}
	return nil
}

func opCodeNames() []string {
	var names []string
	for _, op := range covm.ValidOpCodes() {
		names = append(names, op.String())
	}
	return names
}

func parseAddress(input string) (fidelio.Address, error) {
	var res fidelio.Address
	bytes := common.FromHex(input)
	if len(bytes) != len(res) {
		return res, fmt.Errorf("expected %d bytes, got %d", len(res), len(bytes))
	}
	copy(res[:], bytes)
	return res, nil
}

func withHexPrefix(input string) string {
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		return input
	}
	return "0x" + input
}
