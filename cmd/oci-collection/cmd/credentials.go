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
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/lookup/instancecredentials"
	"github.com/spf13/cobra"
)

var CredentialsCmd = &cobra.Command{
	Use:   "credentials <instance OCID> ...",
	Short: "Fetch initial Windows credentials for compute instances",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		provider := &instancecredentials.InstanceCredentialsProvider{}
		err := provider.InitWithMap(map[string]string{
			"name":       "oci-instance-credentials",
			"configFile": configFile,
			"profile":    profile,
			"authType":   authType,
			"region":     region,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		manager := &lookupmanager.LookupManager{}
		err = manager.Init(nil, managers.ManagerConfig{
			Name:       "lookup-manager",
			Type:       "managers.oci.lookup",
			Properties: map[string]string{v1alpha1.ProvidersLookup: "oci-instance-credentials"},
		}, map[string]providers.IProvider{"oci-instance-credentials": provider})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		results, err := manager.Lookup(context.Background(), args, lookupmanager.LookupOptions{})
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
	RootCmd.AddCommand(CredentialsCmd)
}
