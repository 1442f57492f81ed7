/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package cmd

import (
	"context"
	"fmt"
	"os"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers"
	lookupmanager "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers/lookup"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/lookup/ocisecret"
	"github.com/spf13/cobra"
)

var (
	compartmentID string
	vaultID       string
	versionNumber string
	versionName   string
	stage         string
	onMissing     string
	onDenied      string
	join          string
)

var SecretCmd = &cobra.Command{
	Use:   "secret <name or OCID> ...",
	Short: "Resolve secrets from OCI Vault",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		provider := &ocisecret.OCISecretProvider{}
		err := provider.InitWithMap(map[string]string{
			"name":          "oci-secret",
			"configFile":    configFile,
			"profile":       profile,
			"authType":      authType,
			"region":        region,
			"compartmentId": compartmentID,
			"vaultId":       vaultID,
			"versionNumber": versionNumber,
			"versionName":   versionName,
			"stage":         stage,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		manager := &lookupmanager.LookupManager{}
		err = manager.Init(nil, managers.ManagerConfig{
			Name:       "lookup-manager",
			Type:       "managers.oci.lookup",
			Properties: map[string]string{v1alpha1.ProvidersLookup: "oci-secret"},
		}, map[string]providers.IProvider{"oci-secret": provider})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		results, err := manager.Lookup(context.Background(), args, lookupmanager.LookupOptions{
			OnMissing: onMissing,
			OnDenied:  onDenied,
			Join:      join,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, value := range results {
			fmt.Println(value)
		}
	},
}

func init() {
	SecretCmd.Flags().StringVar(&compartmentID, "compartment-id", "", "Compartment OCID to search secrets in, required for lookups by name.")
	SecretCmd.Flags().StringVar(&vaultID, "vault-id", "", "Restrict name lookups to a single vault OCID.")
	SecretCmd.Flags().StringVar(&versionNumber, "version-number", "", "Secret version number to fetch.")
	SecretCmd.Flags().StringVar(&versionName, "version-name", "", "Secret version name to fetch.")
	SecretCmd.Flags().StringVar(&stage, "stage", "", "Secret bundle stage, for example CURRENT or PREVIOUS.")
	SecretCmd.Flags().StringVar(&onMissing, "on-missing", "", "What to do when a secret is not found: error, warn or skip (default error).")
	SecretCmd.Flags().StringVar(&onDenied, "on-denied", "", "What to do when access to a secret is denied: error, warn or skip (default error).")
	SecretCmd.Flags().StringVar(&join, "join", "", "Join all resolved values with this separator into a single result.")
	RootCmd.AddCommand(SecretCmd)
}
