/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package mock

import (
	"context"
	"encoding/json"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
)

type MockHostvarsProviderConfig struct {
	Name string `json:"name"`
}

func MockHostvarsProviderConfigFromMap(properties map[string]string) (MockHostvarsProviderConfig, error) {
	ret := MockHostvarsProviderConfig{}
	if v, ok := properties["name"]; ok {
		ret.Name = utils.ParseProperty(v)
	}
	return ret, nil
}

// MockHostvarsProvider serves canned attachment listings keyed by instance
// OCID. Errors lets a test inject a per-host failure.
type MockHostvarsProvider struct {
	Config  MockHostvarsProviderConfig
	Context *contexts.PluginContext
	Vars    map[string]map[string]interface{}
	Errors  map[string]error
	Calls   int
}

func (m *MockHostvarsProvider) InitWithMap(properties map[string]string) error {
	config, err := MockHostvarsProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return m.Init(config)
}

func (m *MockHostvarsProvider) ID() string {
	return m.Config.Name
}

func (m *MockHostvarsProvider) SetContext(ctx *contexts.PluginContext) {
	m.Context = ctx
}

func (m *MockHostvarsProvider) Init(config providers.IProviderConfig) error {
	aConfig, err := toMockHostvarsProviderConfig(config)
	if err != nil {
		return v1alpha1.NewPluginError(nil, "provided config is not a valid mock hostvars provider config", v1alpha1.BadConfig)
	}
	m.Config = aConfig
	return nil
}

func toMockHostvarsProviderConfig(config providers.IProviderConfig) (MockHostvarsProviderConfig, error) {
	ret := MockHostvarsProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	ret.Name = utils.ParseProperty(ret.Name)
	return ret, err
}

func (m *MockHostvarsProvider) Expand(ctx context.Context, host hostvars.HostRecord) (map[string]interface{}, error) {
	m.Calls++
	if host.InstanceID == "" {
		return nil, v1alpha1.NewPluginError(nil, "host '"+host.Name+"' has no instance OCID", v1alpha1.BadRequest)
	}
	if err, ok := m.Errors[host.InstanceID]; ok {
		return nil, err
	}
	if vars, ok := m.Vars[host.InstanceID]; ok {
		return vars, nil
	}
	return map[string]interface{}{
		hostvars.VarVolumeAttachments: []interface{}{},
		hostvars.VarVolumes:           []interface{}{},
		hostvars.VarVnicAttachments:   []interface{}{},
		hostvars.VarVnics:             []interface{}{},
	}, nil
}
