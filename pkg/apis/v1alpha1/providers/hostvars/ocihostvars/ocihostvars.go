/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package ocihostvars

import (
	"context"
	"encoding/json"
	"strings"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
	"github.com/ITD27M01/ansible-oci-collection/pkg/oci"
	"github.com/oracle/oci-go-sdk/v65/core"
)

var log = logger.NewLogger("oci.collection")

type OCIHostvarsProviderConfig struct {
	Name       string   `json:"name"`
	ConfigFile string   `json:"configFile,omitempty"`
	Profile    string   `json:"profile,omitempty"`
	AuthType   string   `json:"authType,omitempty"`
	Region     string   `json:"region,omitempty"`
	Kinds      []string `json:"kinds,omitempty"`
}

func OCIHostvarsProviderConfigFromMap(properties map[string]string) (OCIHostvarsProviderConfig, error) {
	ret := OCIHostvarsProviderConfig{}
	if v, ok := properties["name"]; ok {
		ret.Name = utils.ParseProperty(v)
	}
	if v, ok := properties["configFile"]; ok {
		ret.ConfigFile = utils.ParseProperty(v)
	}
	if v, ok := properties["profile"]; ok {
		ret.Profile = utils.ParseProperty(v)
	}
	if v, ok := properties["authType"]; ok {
		ret.AuthType = utils.ParseProperty(v)
	}
	if v, ok := properties["region"]; ok {
		ret.Region = utils.ParseProperty(v)
	}
	if v, ok := properties["kinds"]; ok {
		val := utils.ParseProperty(v)
		if val != "" {
			for _, kind := range strings.Split(val, ",") {
				ret.Kinds = append(ret.Kinds, strings.TrimSpace(kind))
			}
		}
	}
	return ret, nil
}

type computeClient interface {
	ListVolumeAttachments(ctx context.Context, request core.ListVolumeAttachmentsRequest) (core.ListVolumeAttachmentsResponse, error)
	ListVnicAttachments(ctx context.Context, request core.ListVnicAttachmentsRequest) (core.ListVnicAttachmentsResponse, error)
}

type blockstorageClient interface {
	GetVolume(ctx context.Context, request core.GetVolumeRequest) (core.GetVolumeResponse, error)
}

type virtualNetworkClient interface {
	GetVnic(ctx context.Context, request core.GetVnicRequest) (core.GetVnicResponse, error)
}

// OCIHostvarsProvider issues the per-host read-only list calls and reshapes
// the responses into host variables. Every inventory build re-queries the
// services; cost grows with host count times enabled kinds.
type OCIHostvarsProvider struct {
	Config  OCIHostvarsProviderConfig
	Context *contexts.PluginContext

	compute      computeClient
	blockstorage blockstorageClient
	network      virtualNetworkClient
}

func (p *OCIHostvarsProvider) ID() string {
	return p.Config.Name
}

func (p *OCIHostvarsProvider) SetContext(ctx *contexts.PluginContext) {
	p.Context = ctx
}

func (p *OCIHostvarsProvider) InitWithMap(properties map[string]string) error {
	config, err := OCIHostvarsProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return p.Init(config)
}

func (p *OCIHostvarsProvider) Init(config providers.IProviderConfig) error {
	aConfig, err := toOCIHostvarsProviderConfig(config)
	if err != nil {
		return v1alpha1.NewPluginError(nil, "provided config is not a valid OCI hostvars provider config", v1alpha1.BadConfig)
	}
	p.Config = aConfig
	if len(p.Config.Kinds) == 0 {
		p.Config.Kinds = []string{hostvars.KindVolumeAttachments, hostvars.KindVnicAttachments}
	}
	for _, kind := range p.Config.Kinds {
		if kind != hostvars.KindVolumeAttachments && kind != hostvars.KindVnicAttachments {
			return v1alpha1.NewPluginError(nil, "unsupported expansion kind '"+kind+"'", v1alpha1.BadConfig)
		}
	}
	return nil
}

func toOCIHostvarsProviderConfig(config providers.IProviderConfig) (OCIHostvarsProviderConfig, error) {
	ret := OCIHostvarsProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	ret.Name = utils.ParseProperty(ret.Name)
	ret.Profile = utils.ParseProperty(ret.Profile)
	return ret, err
}

func (p *OCIHostvarsProvider) ensureClients() error {
	if p.compute != nil && p.blockstorage != nil && p.network != nil {
		return nil
	}
	configProvider, err := oci.ConfigurationProvider(p.Config.ConfigFile, p.Config.Profile, oci.ResolveAuthType(p.Config.AuthType))
	if err != nil {
		return err
	}
	compute, err := core.NewComputeClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI compute client", v1alpha1.BadConfig)
	}
	blockstorage, err := core.NewBlockstorageClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI blockstorage client", v1alpha1.BadConfig)
	}
	network, err := core.NewVirtualNetworkClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI virtual network client", v1alpha1.BadConfig)
	}
	if p.Config.Region != "" {
		compute.SetRegion(p.Config.Region)
		blockstorage.SetRegion(p.Config.Region)
		network.SetRegion(p.Config.Region)
	}
	p.compute = compute
	p.blockstorage = blockstorage
	p.network = network
	return nil
}

// Expand returns the new variable keys for one host. It never touches the
// host's identity fields or existing variables.
func (p *OCIHostvarsProvider) Expand(ctx context.Context, host hostvars.HostRecord) (map[string]interface{}, error) {
	if host.InstanceID == "" || host.CompartmentID == "" {
		return nil, v1alpha1.NewPluginError(nil, "host '"+host.Name+"' has no instance or compartment id", v1alpha1.BadRequest)
	}
	if err := p.ensureClients(); err != nil {
		return nil, err
	}
	log.DebugfCtx(ctx, "  P (OCI Hostvars): expand host %s kinds %v", host.Name, p.Config.Kinds)

	vars := map[string]interface{}{}
	for _, kind := range p.Config.Kinds {
		switch kind {
		case hostvars.KindVolumeAttachments:
			if err := p.expandVolumes(ctx, host, vars); err != nil {
				return nil, err
			}
		case hostvars.KindVnicAttachments:
			if err := p.expandVnics(ctx, host, vars); err != nil {
				return nil, err
			}
		}
	}
	return vars, nil
}

func (p *OCIHostvarsProvider) expandVolumes(ctx context.Context, host hostvars.HostRecord, vars map[string]interface{}) error {
	request := core.ListVolumeAttachmentsRequest{
		CompartmentId: &host.CompartmentID,
		InstanceId:    &host.InstanceID,
	}

	attachments := make([]interface{}, 0)
	volumes := make([]interface{}, 0)
	for {
		response, err := p.compute.ListVolumeAttachments(ctx, request)
		if err != nil {
			return oci.ServiceError(err, "failed to list volume attachments for instance "+host.InstanceID)
		}
		for _, attachment := range response.Items {
			entry, err := toMap(attachment)
			if err != nil {
				return err
			}
			attachments = append(attachments, entry)

			if attachment.GetVolumeId() == nil {
				continue
			}
			volume, err := p.blockstorage.GetVolume(ctx, core.GetVolumeRequest{VolumeId: attachment.GetVolumeId()})
			if err != nil {
				return oci.ServiceError(err, "failed to get volume "+*attachment.GetVolumeId())
			}
			entry, err = toMap(volume.Volume)
			if err != nil {
				return err
			}
			volumes = append(volumes, entry)
		}
		if response.OpcNextPage == nil {
			break
		}
		request.Page = response.OpcNextPage
	}

	vars[hostvars.VarVolumeAttachments] = attachments
	vars[hostvars.VarVolumes] = volumes
	return nil
}

func (p *OCIHostvarsProvider) expandVnics(ctx context.Context, host hostvars.HostRecord, vars map[string]interface{}) error {
	request := core.ListVnicAttachmentsRequest{
		CompartmentId: &host.CompartmentID,
		InstanceId:    &host.InstanceID,
	}

	attachments := make([]interface{}, 0)
	vnics := make([]interface{}, 0)
	for {
		response, err := p.compute.ListVnicAttachments(ctx, request)
		if err != nil {
			return oci.ServiceError(err, "failed to list vnic attachments for instance "+host.InstanceID)
		}
		for _, attachment := range response.Items {
			entry, err := toMap(attachment)
			if err != nil {
				return err
			}
			attachments = append(attachments, entry)

			if attachment.VnicId == nil {
				continue
			}
			vnic, err := p.network.GetVnic(ctx, core.GetVnicRequest{VnicId: attachment.VnicId})
			if err != nil {
				return oci.ServiceError(err, "failed to get vnic "+*attachment.VnicId)
			}
			entry, err = toMap(vnic.Vnic)
			if err != nil {
				return err
			}
			vnics = append(vnics, entry)
		}
		if response.OpcNextPage == nil {
			break
		}
		request.Page = response.OpcNextPage
	}

	vars[hostvars.VarVnicAttachments] = attachments
	vars[hostvars.VarVnics] = vnics
	return nil
}

// toMap reshapes an SDK model into the plain mapping form hostvars carry. The
// descriptors are passed through verbatim, no field selection.
func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, v1alpha1.NewPluginError(err, "failed to serialize resource descriptor", v1alpha1.SerializationError)
	}
	ret := map[string]interface{}{}
	if err = json.Unmarshal(data, &ret); err != nil {
		return nil, v1alpha1.NewPluginError(err, "failed to reshape resource descriptor", v1alpha1.DeserializeError)
	}
	return ret, nil
}
