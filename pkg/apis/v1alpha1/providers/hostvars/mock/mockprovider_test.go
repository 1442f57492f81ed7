/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package mock

import (
	"context"
	"testing"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	provider := MockHostvarsProvider{}
	err := provider.Init(MockHostvarsProviderConfig{Name: "test"})
	assert.Nil(t, err)
	assert.Equal(t, "test", provider.ID())
}

func TestInitWithMap(t *testing.T) {
	provider := MockHostvarsProvider{}
	err := provider.InitWithMap(map[string]string{"name": "test"})
	assert.Nil(t, err)
}

func TestSetContext(t *testing.T) {
	provider := MockHostvarsProvider{}
	provider.Init(MockHostvarsProviderConfig{Name: "test"})
	provider.SetContext(&contexts.PluginContext{})
	assert.NotNil(t, provider.Context)
}

func TestExpandCanned(t *testing.T) {
	provider := MockHostvarsProvider{
		Vars: map[string]map[string]interface{}{
			"ocid1.instance.oc1..i1": {
				hostvars.VarVolumes: []interface{}{map[string]interface{}{"displayName": "data"}},
			},
		},
	}
	provider.Init(MockHostvarsProviderConfig{Name: "test"})

	vars, err := provider.Expand(context.Background(), hostvars.HostRecord{
		Name:       "web-01",
		InstanceID: "ocid1.instance.oc1..i1",
	})
	assert.Nil(t, err)
	assert.Len(t, vars[hostvars.VarVolumes], 1)
	assert.Equal(t, 1, provider.Calls)
}

func TestExpandDefaultsEmpty(t *testing.T) {
	provider := MockHostvarsProvider{}
	provider.Init(MockHostvarsProviderConfig{Name: "test"})

	vars, err := provider.Expand(context.Background(), hostvars.HostRecord{
		Name:       "web-02",
		InstanceID: "ocid1.instance.oc1..i2",
	})
	assert.Nil(t, err)
	assert.Len(t, vars[hostvars.VarVolumeAttachments], 0)
	assert.Len(t, vars[hostvars.VarVnics], 0)
}

func TestExpandMissingInstance(t *testing.T) {
	provider := MockHostvarsProvider{}
	provider.Init(MockHostvarsProviderConfig{Name: "test"})

	_, err := provider.Expand(context.Background(), hostvars.HostRecord{Name: "rogue"})
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadRequest(err))
}

func TestExpandInjectedError(t *testing.T) {
	provider := MockHostvarsProvider{
		Errors: map[string]error{
			"ocid1.instance.oc1..broken": v1alpha1.NewPluginError(nil, "not authorized", v1alpha1.Forbidden),
		},
	}
	provider.Init(MockHostvarsProviderConfig{Name: "test"})

	_, err := provider.Expand(context.Background(), hostvars.HostRecord{
		Name:       "broken",
		InstanceID: "ocid1.instance.oc1..broken",
	})
	assert.True(t, v1alpha1.IsAccessDenied(err))
}
