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
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
)

type MockLookupProviderConfig struct {
	Name   string            `json:"name"`
	Values map[string]string `json:"values,omitempty"`
}

func MockLookupProviderConfigFromMap(properties map[string]string) (MockLookupProviderConfig, error) {
	ret := MockLookupProviderConfig{}
	if v, ok := properties["name"]; ok {
		ret.Name = utils.ParseProperty(v)
	}
	return ret, nil
}

type MockLookupProvider struct {
	Config  MockLookupProviderConfig
	Context *contexts.PluginContext
}

func (m *MockLookupProvider) InitWithMap(properties map[string]string) error {
	config, err := MockLookupProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return m.Init(config)
}

func (m *MockLookupProvider) ID() string {
	return m.Config.Name
}

func (m *MockLookupProvider) SetContext(ctx *contexts.PluginContext) {
	m.Context = ctx
}

func (m *MockLookupProvider) Init(config providers.IProviderConfig) error {
	aConfig, err := toMockLookupProviderConfig(config)
	if err != nil {
		return v1alpha1.NewPluginError(nil, "provided config is not a valid mock lookup provider config", v1alpha1.BadConfig)
	}
	m.Config = aConfig
	return nil
}

func toMockLookupProviderConfig(config providers.IProviderConfig) (MockLookupProviderConfig, error) {
	ret := MockLookupProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	ret.Name = utils.ParseProperty(ret.Name)
	return ret, err
}

func (m *MockLookupProvider) Lookup(ctx context.Context, term string) ([]string, error) {
	if term == "" {
		return nil, v1alpha1.NewPluginError(nil, "secret identifier is empty", v1alpha1.BadRequest)
	}
	if value, ok := m.Config.Values[term]; ok {
		return []string{value}, nil
	}
	return nil, v1alpha1.NewPluginError(nil, "secret '"+term+"' not found", v1alpha1.NotFound)
}
