/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package hostvars

import (
	"context"

	providers "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
)

// Fixed variable keys the expansion merges into a host's mapping.
const (
	VarVolumeAttachments = "volume_attachments"
	VarVolumes           = "volumes"
	VarVnicAttachments   = "vnic_attachments"
	VarVnics             = "vnics"
)

// Resource kinds that can be enabled for expansion. Volumes and vnics are
// resolved transitively through their attachment listings.
const (
	KindVolumeAttachments = "volume_attachments"
	KindVnicAttachments   = "vnic_attachments"
)

// HostRecord is a host already discovered by the base inventory mechanism.
// Identity fields belong to that mechanism; expansion only ever adds keys to
// Vars.
type HostRecord struct {
	Name               string                 `json:"name"`
	InstanceID         string                 `json:"instanceId"`
	CompartmentID      string                 `json:"compartmentId"`
	Region             string                 `json:"region,omitempty"`
	AvailabilityDomain string                 `json:"availabilityDomain,omitempty"`
	Vars               map[string]interface{} `json:"vars,omitempty"`
}

// IHostvarsProvider is the inventory-enrichment extension point. Expand
// returns only the new variable keys for the host; merging them into the
// host's mapping is the manager's job.
type IHostvarsProvider interface {
	Init(config providers.IProviderConfig) error
	Expand(ctx context.Context, host HostRecord) (map[string]interface{}, error)
}
