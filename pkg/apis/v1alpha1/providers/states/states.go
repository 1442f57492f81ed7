/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package states

import (
	"context"
	"encoding/json"
	"strings"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/yalp/jsonpath"
)

// StateEntry is a stored inventory record. Body carries the host document,
// ETag is bumped on every upsert.
type StateEntry struct {
	ID   string      `json:"id"`
	Body interface{} `json:"body"`
	ETag string      `json:"etag,omitempty"`
}

type IStateProvider interface {
	Init(config providers.IProviderConfig) error
	Upsert(context.Context, UpsertRequest) (string, error)
	Delete(context.Context, DeleteRequest) error
	Get(context.Context, GetRequest) (StateEntry, error)
	List(context.Context, ListRequest) ([]StateEntry, error)
	SetContext(context *contexts.PluginContext)
}

type GetRequest struct {
	ID       string                 `json:"id"`
	Metadata map[string]interface{} `json:"metadata"`
}

type DeleteRequest struct {
	ID       string                 `json:"id"`
	ETag     *string                `json:"etag,omitempty"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UpsertRequest struct {
	Value    StateEntry             `json:"value"`
	ETag     *string                `json:"etag,omitempty"`
	Metadata map[string]interface{} `json:"metadata"`
}

type ListRequest struct {
	FilterType  string                 `json:"filterType"`
	FilterValue string                 `json:"filterValue"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func JsonPathMatch(jsonData interface{}, path string, target string) bool {
	res, err := jsonpath.Read(jsonData, path)
	if err != nil {
		return false
	}
	s, ok := res.(string)
	return ok && s == target
}

// MatchFilter applies a list filter to an entry. The only supported filter
// type is "field": the value has the form "<jsonpath>=<target>" and matches
// against the entry body.
func MatchFilter(entry StateEntry, filterType string, filterValue string) (bool, error) {
	var dict map[string]interface{}
	j, _ := json.Marshal(entry.Body)
	err := json.Unmarshal(j, &dict)
	if err != nil {
		return false, v1alpha1.NewPluginError(nil, "failed to unmarshal state entry when applying filter", v1alpha1.InternalError)
	}
	switch filterType {
	case "field":
		parts := strings.SplitN(filterValue, "=", 2)
		if len(parts) != 2 {
			return false, v1alpha1.NewPluginError(nil, "field filter must have the form '<jsonpath>=<value>'", v1alpha1.BadRequest)
		}
		return JsonPathMatch(dict, parts[0], parts[1]), nil
	default:
		return false, v1alpha1.NewPluginError(nil, "filter type '"+filterType+"' is not supported", v1alpha1.BadRequest)
	}
}
