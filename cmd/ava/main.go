/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/avaproject/ava/pkg/cli"

func main() {
	cli.Execute()
}
