/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package managers

import (
	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/lookup"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/states"
)

type ProviderConfig struct {
	Type   string                    `json:"type"`
	Config providers.IProviderConfig `json:"config"`
}

type ManagerConfig struct {
	Name       string                    `json:"name"`
	Type       string                    `json:"type"`
	Properties map[string]string         `json:"properties"`
	Providers  map[string]ProviderConfig `json:"providers"`
}

type IManager interface {
	Init(context *contexts.PluginContext, config ManagerConfig, providers map[string]providers.IProvider) error
}

// Manager is the common base for managers. Init binds the plugin context and
// pushes it into every supplied provider that accepts one.
type Manager struct {
	Context *contexts.PluginContext
	Config  ManagerConfig
}

func (m *Manager) Init(context *contexts.PluginContext, config ManagerConfig, providers map[string]providers.IProvider) error {
	if context == nil {
		context = &contexts.PluginContext{}
	}
	if context.Logger == nil {
		context.Init(nil)
	}
	m.Context = context
	m.Config = config
	for _, p := range providers {
		if c, ok := p.(contexts.IWithPluginContext); ok {
			c.SetContext(m.Context)
		}
	}
	m.Context.Logger.Debugf(" M (%s): initialize manager type '%s'", config.Name, config.Type)
	return nil
}

func GetStateProvider(config ManagerConfig, providers map[string]providers.IProvider) (states.IStateProvider, error) {
	stateProviderName, ok := config.Properties[v1alpha1.ProvidersState]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "state provider is not configured", v1alpha1.MissingConfig)
	}
	provider, ok := providers[stateProviderName]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "state provider is not supplied", v1alpha1.MissingConfig)
	}
	stateProvider, ok := provider.(states.IStateProvider)
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "supplied provider is not a state provider", v1alpha1.BadConfig)
	}
	return stateProvider, nil
}

func GetLookupProvider(config ManagerConfig, providers map[string]providers.IProvider) (lookup.ILookupProvider, error) {
	lookupProviderName, ok := config.Properties[v1alpha1.ProvidersLookup]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "lookup provider is not configured", v1alpha1.MissingConfig)
	}
	provider, ok := providers[lookupProviderName]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "lookup provider is not supplied", v1alpha1.MissingConfig)
	}
	lookupProvider, ok := provider.(lookup.ILookupProvider)
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "supplied provider is not a lookup provider", v1alpha1.BadConfig)
	}
	return lookupProvider, nil
}

func GetHostvarsProvider(config ManagerConfig, providers map[string]providers.IProvider) (hostvars.IHostvarsProvider, error) {
	hostvarsProviderName, ok := config.Properties[v1alpha1.ProvidersHostvars]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "hostvars provider is not configured", v1alpha1.MissingConfig)
	}
	provider, ok := providers[hostvarsProviderName]
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "hostvars provider is not supplied", v1alpha1.MissingConfig)
	}
	hostvarsProvider, ok := provider.(hostvars.IHostvarsProvider)
	if !ok {
		return nil, v1alpha1.NewPluginError(nil, "supplied provider is not a hostvars provider", v1alpha1.BadConfig)
	}
	return hostvarsProvider, nil
}
