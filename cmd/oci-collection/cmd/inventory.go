/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers"
	inventorymanager "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers/inventory"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars/ocihostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/states/memorystate"
	"github.com/spf13/cobra"
)

var (
	inventoryFile string
	expand        bool
	kinds         string
)

var InventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Expand an inventory with OCI attachment details",
	Long:  "Reads a JSON inventory of hosts, attaches volume and vnic attachment details per host and writes the expanded inventory to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		hosts, err := readInventory(inventoryFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		stateProvider := &memorystate.MemoryStateProvider{}
		if err = stateProvider.Init(memorystate.MemoryStateProviderConfig{Name: "memory"}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		hostvarsProvider := &ocihostvars.OCIHostvarsProvider{}
		err = hostvarsProvider.InitWithMap(map[string]string{
			"name":       "oci-hostvars",
			"configFile": configFile,
			"profile":    profile,
			"authType":   authType,
			"region":     region,
			"kinds":      kinds,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		manager := &inventorymanager.InventoryManager{}
		err = manager.Init(nil, managers.ManagerConfig{
			Name: "inventory-manager",
			Type: "managers.oci.inventory",
			Properties: map[string]string{
				v1alpha1.ProvidersState:    "memory",
				v1alpha1.ProvidersHostvars: "oci-hostvars",
				"expandHostvars":           strconv.FormatBool(expand),
			},
		}, map[string]providers.IProvider{
			"memory":       stateProvider,
			"oci-hostvars": hostvarsProvider,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		ctx := context.Background()
		for _, host := range hosts {
			if err = manager.UpsertHost(ctx, host); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		summary, err := manager.ExpandAll(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		expanded, err := manager.ListHosts(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		output, err := json.MarshalIndent(expanded, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(output))
		if expand {
			fmt.Fprintf(os.Stderr, "expanded %d of %d hosts, %d failed\n", summary.Expanded, summary.Hosts, summary.Failed)
		}
	},
}

func readInventory(path string) ([]hostvars.HostRecord, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var hosts []hostvars.HostRecord
	if err = json.Unmarshal(data, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

func init() {
	InventoryCmd.Flags().StringVar(&inventoryFile, "inventory", "", "Path to a JSON inventory file, '-' reads from stdin.")
	InventoryCmd.Flags().BoolVar(&expand, "expand", true, "Attach attachment details to every host.")
	InventoryCmd.Flags().StringVar(&kinds, "kinds", "", "Comma-separated attachment kinds: volume_attachments, vnic_attachments (default both).")
	RootCmd.AddCommand(InventoryCmd)
}
