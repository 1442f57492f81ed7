/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package inventory

import (
	"context"
	"encoding/json"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/observability"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/hostvars"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/states"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
)

var log = logger.NewLogger("oci.collection")

// ExpandSummary reports what an expansion pass did. Failed hosts keep their
// previous vars and do not abort the pass.
type ExpandSummary struct {
	Hosts    int `json:"hosts"`
	Expanded int `json:"expanded"`
	Failed   int `json:"failed"`
}

type InventoryManager struct {
	managers.Manager
	StateProvider    states.IStateProvider
	HostvarsProvider hostvars.IHostvarsProvider
	ExpandHostvars   bool
	Namespace        string
}

func (m *InventoryManager) Init(context *contexts.PluginContext, cfg managers.ManagerConfig, providers map[string]providers.IProvider) error {
	log.Debug(" M (Inventory): Init")
	err := m.Manager.Init(context, cfg, providers)
	if err != nil {
		return err
	}
	stateProvider, err := managers.GetStateProvider(cfg, providers)
	if err != nil {
		return err
	}
	m.StateProvider = stateProvider

	if v, ok := cfg.Properties["expandHostvars"]; ok {
		m.ExpandHostvars = utils.ParseBool(v)
	}
	if v, ok := cfg.Properties["namespace"]; ok {
		m.Namespace = v
	}
	if m.ExpandHostvars {
		hostvarsProvider, err := managers.GetHostvarsProvider(cfg, providers)
		if err != nil {
			return err
		}
		m.HostvarsProvider = hostvarsProvider
	}
	return nil
}

func (m *InventoryManager) metadata() map[string]interface{} {
	if m.Namespace == "" {
		return nil
	}
	return map[string]interface{}{"namespace": m.Namespace}
}

func (m *InventoryManager) UpsertHost(ctx context.Context, host hostvars.HostRecord) error {
	ctx, span := observability.StartSpan("Inventory Manager", ctx, &map[string]string{
		"method": "UpsertHost",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	if host.Name == "" {
		err = v1alpha1.NewPluginError(nil, "host name is empty", v1alpha1.BadRequest)
		return err
	}
	log.DebugfCtx(ctx, " M (Inventory): upsert host %s", host.Name)

	var current states.StateEntry
	current, err = m.StateProvider.Get(ctx, states.GetRequest{ID: host.Name, Metadata: m.metadata()})
	etag := ""
	if err == nil {
		etag = current.ETag
	} else if !v1alpha1.IsNotFound(err) {
		return err
	}
	_, err = m.StateProvider.Upsert(ctx, states.UpsertRequest{
		Value: states.StateEntry{
			ID:   host.Name,
			Body: host,
			ETag: etag,
		},
		Metadata: m.metadata(),
	})
	return err
}

func (m *InventoryManager) GetHost(ctx context.Context, name string) (hostvars.HostRecord, error) {
	ctx, span := observability.StartSpan("Inventory Manager", ctx, &map[string]string{
		"method": "GetHost",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	log.DebugfCtx(ctx, " M (Inventory): get host %s", name)

	var entry states.StateEntry
	entry, err = m.StateProvider.Get(ctx, states.GetRequest{ID: name, Metadata: m.metadata()})
	if err != nil {
		return hostvars.HostRecord{}, err
	}
	return toHostRecord(entry)
}

func (m *InventoryManager) ListHosts(ctx context.Context) ([]hostvars.HostRecord, error) {
	ctx, span := observability.StartSpan("Inventory Manager", ctx, &map[string]string{
		"method": "ListHosts",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	log.DebugfCtx(ctx, " M (Inventory): list hosts")

	var entries []states.StateEntry
	entries, err = m.StateProvider.List(ctx, states.ListRequest{Metadata: m.metadata()})
	if err != nil {
		return nil, err
	}
	hosts := make([]hostvars.HostRecord, 0, len(entries))
	for _, entry := range entries {
		var host hostvars.HostRecord
		host, err = toHostRecord(entry)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

func (m *InventoryManager) DeleteHost(ctx context.Context, name string) error {
	ctx, span := observability.StartSpan("Inventory Manager", ctx, &map[string]string{
		"method": "DeleteHost",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	log.DebugfCtx(ctx, " M (Inventory): delete host %s", name)

	err = m.StateProvider.Delete(ctx, states.DeleteRequest{ID: name, Metadata: m.metadata()})
	return err
}

// ExpandAll walks the stored inventory and attaches attachment details to
// every host. A host that fails to expand is logged and skipped, the pass
// always visits the full inventory. Vars already present on a host are never
// overwritten, so repeated passes are stable.
func (m *InventoryManager) ExpandAll(ctx context.Context) (ExpandSummary, error) {
	ctx, span := observability.StartSpan("Inventory Manager", ctx, &map[string]string{
		"method": "ExpandAll",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	summary := ExpandSummary{}
	if !m.ExpandHostvars {
		log.InfofCtx(ctx, " M (Inventory): hostvars expansion is disabled")
		return summary, nil
	}

	var entries []states.StateEntry
	entries, err = m.StateProvider.List(ctx, states.ListRequest{Metadata: m.metadata()})
	if err != nil {
		return summary, err
	}
	summary.Hosts = len(entries)

	for _, entry := range entries {
		host, cErr := toHostRecord(entry)
		if cErr != nil {
			log.WarnfCtx(ctx, " M (Inventory): skipping invalid inventory entry %s: %v", entry.ID, cErr)
			summary.Failed++
			continue
		}
		vars, eErr := m.HostvarsProvider.Expand(ctx, host)
		if eErr != nil {
			log.WarnfCtx(ctx, " M (Inventory): failed to expand host %s: %v", host.Name, eErr)
			summary.Failed++
			continue
		}
		if host.Vars == nil {
			host.Vars = make(map[string]interface{}, len(vars))
		}
		for k, v := range vars {
			if _, ok := host.Vars[k]; !ok {
				host.Vars[k] = v
			}
		}
		_, uErr := m.StateProvider.Upsert(ctx, states.UpsertRequest{
			Value: states.StateEntry{
				ID:   host.Name,
				Body: host,
				ETag: entry.ETag,
			},
			Metadata: m.metadata(),
		})
		if uErr != nil {
			log.WarnfCtx(ctx, " M (Inventory): failed to store expanded host %s: %v", host.Name, uErr)
			summary.Failed++
			continue
		}
		summary.Expanded++
	}

	log.InfofCtx(ctx, " M (Inventory): expanded %d of %d hosts, %d failed",
		summary.Expanded, summary.Hosts, summary.Failed)
	return summary, nil
}

func toHostRecord(entry states.StateEntry) (hostvars.HostRecord, error) {
	if host, ok := entry.Body.(hostvars.HostRecord); ok {
		return host, nil
	}
	var host hostvars.HostRecord
	data, err := json.Marshal(entry.Body)
	if err != nil {
		return host, v1alpha1.NewPluginError(err, "failed to serialize inventory entry '"+entry.ID+"'", v1alpha1.SerializationError)
	}
	if err = json.Unmarshal(data, &host); err != nil {
		return host, v1alpha1.NewPluginError(err, "entry '"+entry.ID+"' is not a valid host record", v1alpha1.DeserializeError)
	}
	return host, nil
}
