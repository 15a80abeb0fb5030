/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/avaproject/ava/pkg/adb"
	"github.com/avaproject/ava/pkg/registry"
	"github.com/avaproject/ava/pkg/suite"
)

func testsCmd() *cli.Command {
	return &cli.Command{
		Name:  "tests",
		Usage: "List the names of all registered tests",
		Description: `List every test the run command accepts via --test.

# Examples

  ava tests`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			printTestNames(os.Stdout, suite.New(adb.NewClient(cmd.String("adb"))))
			return nil
		},
		Flags: []cli.Flag{adbFlag},
	}
}

func printTestNames(w io.Writer, reg *registry.Registry) {
	for _, name := range reg.Names() {
		fmt.Fprintf(w, "* %s\n", name)
	}
}
