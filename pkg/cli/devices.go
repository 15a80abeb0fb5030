/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/avaproject/ava/pkg/adb"
)

func devicesCmd() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List the serials of all attached devices",
		Description: `List the serial number of every attached device in the "device" state,
one per line, in adb enumeration order. Honors --serial and $ANDROID_SERIAL
the same way the run command does.

# Examples

  ava devices
  ava devices -s emulator-5554`,
		Flags: []cli.Flag{adbFlag, serialFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := adb.NewClient(cmd.String("adb"))
			client.Debug = debugLevel(cmd)

			serials, err := client.Devices(ctx, adb.ResolveSerial(cmd.String("serial")))
			if err != nil {
				return fmt.Errorf("failed to enumerate devices: %w", err)
			}
			if len(serials) == 0 {
				slog.Info("no connected devices")
				return nil
			}
			for _, serial := range serials {
				fmt.Fprintln(os.Stdout, serial)
			}
			return nil
		},
	}
}
