/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package memorystate

import (
	"context"
	"testing"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/states"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	provider := MemoryStateProvider{}
	err := provider.Init(MemoryStateProviderConfig{Name: "test"})
	assert.Nil(t, err)
	assert.Equal(t, "test", provider.ID())
}

func TestInitWithMap(t *testing.T) {
	provider := MemoryStateProvider{}
	err := provider.InitWithMap(map[string]string{"name": "test"})
	assert.Nil(t, err)
}

func TestSetContext(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})
	provider.SetContext(&contexts.PluginContext{})
	assert.NotNil(t, provider.Context)
}

func TestUpsertAndGet(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	id, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{
			ID:   "web-01",
			Body: map[string]interface{}{"region": "eu-frankfurt-1"},
		},
	})
	assert.Nil(t, err)
	assert.Equal(t, "web-01", id)

	entry, err := provider.Get(context.Background(), states.GetRequest{ID: "web-01"})
	assert.Nil(t, err)
	assert.Equal(t, "web-01", entry.ID)
	assert.Equal(t, "1", entry.ETag)
}

func TestUpsertBumpsETag(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{ID: "web-01", Body: map[string]interface{}{}},
	})
	assert.Nil(t, err)

	entry, err := provider.Get(context.Background(), states.GetRequest{ID: "web-01"})
	assert.Nil(t, err)

	_, err = provider.Upsert(context.Background(), states.UpsertRequest{Value: entry})
	assert.Nil(t, err)

	entry, err = provider.Get(context.Background(), states.GetRequest{ID: "web-01"})
	assert.Nil(t, err)
	assert.Equal(t, "2", entry.ETag)
}

func TestGetNotFound(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Get(context.Background(), states.GetRequest{ID: "missing"})
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsNotFound(err))
}

func TestNamespaceIsolation(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value:    states.StateEntry{ID: "web-01", Body: map[string]interface{}{}},
		Metadata: map[string]interface{}{"namespace": "prod"},
	})
	assert.Nil(t, err)

	_, err = provider.Get(context.Background(), states.GetRequest{
		ID:       "web-01",
		Metadata: map[string]interface{}{"namespace": "dev"},
	})
	assert.True(t, v1alpha1.IsNotFound(err))

	_, err = provider.Get(context.Background(), states.GetRequest{
		ID:       "web-01",
		Metadata: map[string]interface{}{"namespace": "prod"},
	})
	assert.Nil(t, err)
}

func TestList(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	for _, id := range []string{"web-01", "web-02"} {
		_, err := provider.Upsert(context.Background(), states.UpsertRequest{
			Value: states.StateEntry{
				ID:   id,
				Body: map[string]interface{}{"name": id},
			},
		})
		assert.Nil(t, err)
	}

	entries, err := provider.List(context.Background(), states.ListRequest{})
	assert.Nil(t, err)
	assert.Len(t, entries, 2)
}

func TestListWithFilter(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{ID: "web-01", Body: map[string]interface{}{"region": "eu-frankfurt-1"}},
	})
	assert.Nil(t, err)
	_, err = provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{ID: "web-02", Body: map[string]interface{}{"region": "us-ashburn-1"}},
	})
	assert.Nil(t, err)

	entries, err := provider.List(context.Background(), states.ListRequest{
		FilterType:  "field",
		FilterValue: "$.region=eu-frankfurt-1",
	})
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "web-01", entries[0].ID)
}

func TestListReturnsCopies(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{ID: "web-01", Body: map[string]interface{}{"region": "eu-frankfurt-1"}},
	})
	assert.Nil(t, err)

	entries, err := provider.List(context.Background(), states.ListRequest{})
	assert.Nil(t, err)
	entries[0].Body.(map[string]interface{})["region"] = "mutated"

	entry, err := provider.Get(context.Background(), states.GetRequest{ID: "web-01"})
	assert.Nil(t, err)
	assert.Equal(t, "eu-frankfurt-1", entry.Body.(map[string]interface{})["region"])
}

func TestDelete(t *testing.T) {
	provider := MemoryStateProvider{}
	provider.Init(MemoryStateProviderConfig{Name: "test"})

	_, err := provider.Upsert(context.Background(), states.UpsertRequest{
		Value: states.StateEntry{ID: "web-01", Body: map[string]interface{}{}},
	})
	assert.Nil(t, err)

	err = provider.Delete(context.Background(), states.DeleteRequest{ID: "web-01"})
	assert.Nil(t, err)

	err = provider.Delete(context.Background(), states.DeleteRequest{ID: "web-01"})
	assert.True(t, v1alpha1.IsNotFound(err))
}
