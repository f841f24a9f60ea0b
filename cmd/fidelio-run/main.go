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
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "fidelio-run",
		Usage:     "Fidelio instruction execution driver",
		Copyright: "(c) 2024 The Fidelio Authors",
		Commands: []*cli.Command{
			&RunCmd,
			&ListCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
