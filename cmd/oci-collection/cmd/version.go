/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(RootCmd.Version)
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
