/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package memorystate

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/observability"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/states"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
)

var sLog = logger.NewLogger("oci.collection")

type MemoryStateProviderConfig struct {
	Name string `json:"name"`
}

func MemoryStateProviderConfigFromMap(properties map[string]string) (MemoryStateProviderConfig, error) {
	ret := MemoryStateProviderConfig{}
	if v, ok := properties["name"]; ok {
		ret.Name = utils.ParseProperty(v)
	}
	return ret, nil
}

// MemoryStateProvider keeps inventory entries in a namespaced in-memory map.
// Entries are deep-copied on the way out so callers can't mutate stored state.
type MemoryStateProvider struct {
	Config  MemoryStateProviderConfig
	Data    map[string]map[string]interface{}
	Context *contexts.PluginContext
	mu      sync.RWMutex
}

func (s *MemoryStateProvider) ID() string {
	return s.Config.Name
}

func (s *MemoryStateProvider) SetContext(ctx *contexts.PluginContext) {
	s.Context = ctx
}

func (s *MemoryStateProvider) InitWithMap(properties map[string]string) error {
	config, err := MemoryStateProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return s.Init(config)
}

func (s *MemoryStateProvider) Init(config providers.IProviderConfig) error {
	stateConfig, err := toMemoryStateProviderConfig(config)
	if err != nil {
		sLog.Errorf("  P (Memory State): failed to parse provider config %+v", err)
		return v1alpha1.NewPluginError(nil, "provided config is not a valid memory state provider config", v1alpha1.BadConfig)
	}
	s.Config = stateConfig
	s.Data = make(map[string]map[string]interface{})
	return nil
}

func namespaceOf(metadata map[string]interface{}) string {
	if n, ok := metadata["namespace"]; ok {
		if nstring, ok := n.(string); ok && nstring != "" {
			return nstring
		}
	}
	return "default"
}

func (s *MemoryStateProvider) Upsert(ctx context.Context, entry states.UpsertRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := observability.StartSpan("Memory State Provider", ctx, &map[string]string{
		"method": "Upsert",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	namespace := namespaceOf(entry.Metadata)
	sLog.DebugfCtx(ctx, "  P (Memory State): upsert state %s in namespace %s", entry.Value.ID, namespace)

	if _, ok := s.Data[namespace]; !ok {
		s.Data[namespace] = map[string]interface{}{}
	}

	tag := "1"
	if entry.Value.ETag != "" {
		if v, perr := strconv.ParseInt(entry.Value.ETag, 10, 64); perr == nil {
			tag = strconv.FormatInt(v+1, 10)
		}
	}
	entry.Value.ETag = tag

	s.Data[namespace][entry.Value.ID] = entry.Value

	return entry.Value.ID, nil
}

func (s *MemoryStateProvider) List(ctx context.Context, request states.ListRequest) ([]states.StateEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, span := observability.StartSpan("Memory State Provider", ctx, &map[string]string{
		"method": "List",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	namespace := ""
	if n, ok := request.Metadata["namespace"]; ok {
		if nstring, ok := n.(string); ok {
			namespace = nstring
		}
	}
	sLog.DebugfCtx(ctx, "  P (Memory State): list states in namespace %s", namespace)

	var entities []states.StateEntry
	for nKey, nList := range s.Data {
		if namespace != "" && namespace != nKey {
			continue
		}
		for _, entry := range nList {
			vE, ok := entry.(states.StateEntry)
			if !ok {
				err = v1alpha1.NewPluginError(nil, "found invalid state entry", v1alpha1.InternalError)
				sLog.ErrorfCtx(ctx, "  P (Memory State): failed to list states: %+v", err)
				return entities, err
			}
			if request.FilterType != "" && request.FilterValue != "" {
				var match bool
				match, err = states.MatchFilter(vE, request.FilterType, request.FilterValue)
				if err != nil {
					return entities, err
				}
				if !match {
					continue
				}
			}
			var copy states.StateEntry
			copy, err = deepCopy(vE)
			if err != nil {
				err = v1alpha1.NewPluginError(nil, "failed to create a deep copy of entry '"+vE.ID+"'", v1alpha1.InternalError)
				sLog.ErrorfCtx(ctx, "  P (Memory State): failed to list states: %+v", err)
				return entities, err
			}
			entities = append(entities, copy)
		}
	}

	return entities, nil
}

func (s *MemoryStateProvider) Delete(ctx context.Context, request states.DeleteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := observability.StartSpan("Memory State Provider", ctx, &map[string]string{
		"method": "Delete",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	namespace := namespaceOf(request.Metadata)
	sLog.DebugfCtx(ctx, "  P (Memory State): delete state %s in namespace %s", request.ID, namespace)

	if s.Data[namespace] == nil || s.Data[namespace][request.ID] == nil {
		err = v1alpha1.NewPluginError(nil, "entry '"+request.ID+"' is not found in namespace "+namespace, v1alpha1.NotFound)
		sLog.ErrorfCtx(ctx, "  P (Memory State): failed to delete %s: %+v", request.ID, err)
		return err
	}
	delete(s.Data[namespace], request.ID)

	return nil
}

func (s *MemoryStateProvider) Get(ctx context.Context, request states.GetRequest) (states.StateEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, span := observability.StartSpan("Memory State Provider", ctx, &map[string]string{
		"method": "Get",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	namespace := namespaceOf(request.Metadata)
	sLog.DebugfCtx(ctx, "  P (Memory State): get state %s in namespace %s", request.ID, namespace)

	if s.Data[namespace] == nil || s.Data[namespace][request.ID] == nil {
		err = v1alpha1.NewPluginError(nil, "entry '"+request.ID+"' is not found in namespace "+namespace, v1alpha1.NotFound)
		sLog.ErrorfCtx(ctx, "  P (Memory State): failed to get %s state: %+v", request.ID, err)
		return states.StateEntry{}, err
	}
	vE, ok := s.Data[namespace][request.ID].(states.StateEntry)
	if !ok {
		err = v1alpha1.NewPluginError(nil, "entry '"+request.ID+"' is not a valid state entry", v1alpha1.InternalError)
		sLog.ErrorfCtx(ctx, "  P (Memory State): failed to get %s state: %+v", request.ID, err)
		return states.StateEntry{}, err
	}
	var copy states.StateEntry
	copy, err = deepCopy(vE)
	if err != nil {
		err = v1alpha1.NewPluginError(nil, "failed to create a deep copy of entry '"+request.ID+"'", v1alpha1.InternalError)
		sLog.ErrorfCtx(ctx, "  P (Memory State): failed to get %s state: %+v", request.ID, err)
		return states.StateEntry{}, err
	}
	return copy, nil
}

func toMemoryStateProviderConfig(config providers.IProviderConfig) (MemoryStateProviderConfig, error) {
	ret := MemoryStateProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	return ret, err
}

func deepCopy(s states.StateEntry) (states.StateEntry, error) {
	var ret states.StateEntry
	jBody, err := json.Marshal(s)
	if err != nil {
		return states.StateEntry{}, err
	}
	err = json.Unmarshal(jBody, &ret)
	if err != nil {
		return states.StateEntry{}, err
	}
	return ret, nil
}
