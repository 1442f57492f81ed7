/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package instancecredentials

import (
	"context"
	"encoding/json"
	"strings"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/oci"
	"github.com/oracle/oci-go-sdk/v65/core"
)

const instanceOCIDPrefix = "ocid1.instance."

type InstanceCredentialsProviderConfig struct {
	Name       string `json:"name"`
	ConfigFile string `json:"configFile,omitempty"`
	Profile    string `json:"profile,omitempty"`
	AuthType   string `json:"authType,omitempty"`
	Region     string `json:"region,omitempty"`
}

func InstanceCredentialsProviderConfigFromMap(properties map[string]string) (InstanceCredentialsProviderConfig, error) {
	ret := InstanceCredentialsProviderConfig{}
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
	return ret, nil
}

type computeClient interface {
	GetWindowsInstanceInitialCredentials(ctx context.Context, request core.GetWindowsInstanceInitialCredentialsRequest) (core.GetWindowsInstanceInitialCredentialsResponse, error)
}

// InstanceCredentialsProvider resolves the initial Windows credentials of a
// compute instance by its OCID, returned as a JSON object with username and
// password fields.
type InstanceCredentialsProvider struct {
	Config  InstanceCredentialsProviderConfig
	Context *contexts.PluginContext

	compute computeClient
}

func (p *InstanceCredentialsProvider) ID() string {
	return p.Config.Name
}

func (p *InstanceCredentialsProvider) SetContext(ctx *contexts.PluginContext) {
	p.Context = ctx
}

func (p *InstanceCredentialsProvider) InitWithMap(properties map[string]string) error {
	config, err := InstanceCredentialsProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return p.Init(config)
}

func (p *InstanceCredentialsProvider) Init(config providers.IProviderConfig) error {
	aConfig, err := toInstanceCredentialsProviderConfig(config)
	if err != nil {
		return v1alpha1.NewPluginError(nil, "provided config is not a valid instance credentials provider config", v1alpha1.BadConfig)
	}
	p.Config = aConfig
	return nil
}

func toInstanceCredentialsProviderConfig(config providers.IProviderConfig) (InstanceCredentialsProviderConfig, error) {
	ret := InstanceCredentialsProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	ret.Name = utils.ParseProperty(ret.Name)
	ret.Profile = utils.ParseProperty(ret.Profile)
	return ret, err
}

func (p *InstanceCredentialsProvider) ensureClient() error {
	if p.compute != nil {
		return nil
	}
	configProvider, err := oci.ConfigurationProvider(p.Config.ConfigFile, p.Config.Profile, oci.ResolveAuthType(p.Config.AuthType))
	if err != nil {
		return err
	}
	client, err := core.NewComputeClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI compute client", v1alpha1.BadConfig)
	}
	if p.Config.Region != "" {
		client.SetRegion(p.Config.Region)
	}
	p.compute = client
	return nil
}

func (p *InstanceCredentialsProvider) Lookup(ctx context.Context, term string) ([]string, error) {
	if !strings.HasPrefix(term, instanceOCIDPrefix) {
		return nil, v1alpha1.NewPluginError(nil, "'"+term+"' is not an instance OCID", v1alpha1.BadRequest)
	}
	if err := p.ensureClient(); err != nil {
		return nil, err
	}

	response, err := p.compute.GetWindowsInstanceInitialCredentials(ctx, core.GetWindowsInstanceInitialCredentialsRequest{
		InstanceId: &term,
	})
	if err != nil {
		return nil, oci.ServiceError(err, "failed to retrieve instance credentials")
	}

	credentials := map[string]string{}
	if response.InstanceCredentials.Username != nil {
		credentials["username"] = *response.InstanceCredentials.Username
	}
	if response.InstanceCredentials.Password != nil {
		credentials["password"] = *response.InstanceCredentials.Password
	}
	data, err := json.Marshal(credentials)
	if err != nil {
		return nil, v1alpha1.NewPluginError(err, "failed to serialize instance credentials", v1alpha1.SerializationError)
	}
	return []string{string(data)}, nil
}
