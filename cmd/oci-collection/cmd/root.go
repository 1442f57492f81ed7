/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	loggerOptions = logger.DefaultOptions()

	configFile string
	profile    string
	authType   string
	region     string
)

var RootCmd = &cobra.Command{
	Use:   "oci-collection",
	Short: "OCI lookup and inventory plugins host",
	Long:  "oci-collection resolves OCI Vault secrets and expands inventory hostvars with OCI attachment details.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loggerOptions.SetAppID("oci-collection")
		return logger.ApplyOptionsToLoggers(&loggerOptions)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute(version string) {
	RootCmd.Version = version
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	loggerOptions.AttachCmdFlags(RootCmd.PersistentFlags().StringVar, RootCmd.PersistentFlags().BoolVar)
	RootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Path to the OCI configuration file (default ~/.oci/config).")
	RootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Profile in the OCI configuration file, OCI_CONFIG_PROFILE wins over this flag.")
	RootCmd.PersistentFlags().StringVar(&authType, "auth", "", "Authentication type: api_key or instance_principal, OCI_CLI_AUTH wins over this flag.")
	RootCmd.PersistentFlags().StringVar(&region, "region", "", "Region override for OCI service clients.")
}
