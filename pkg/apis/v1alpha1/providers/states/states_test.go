/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package states

import (
	"testing"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/stretchr/testify/assert"
)

func TestJsonPathMatch(t *testing.T) {
	data := map[string]interface{}{
		"region": "eu-frankfurt-1",
		"nested": map[string]interface{}{"name": "web-01"},
	}
	assert.True(t, JsonPathMatch(data, "$.region", "eu-frankfurt-1"))
	assert.True(t, JsonPathMatch(data, "$.nested.name", "web-01"))
	assert.False(t, JsonPathMatch(data, "$.region", "us-ashburn-1"))
	assert.False(t, JsonPathMatch(data, "$.missing", "anything"))
}

func TestMatchFilterField(t *testing.T) {
	entry := StateEntry{
		ID:   "web-01",
		Body: map[string]interface{}{"region": "eu-frankfurt-1"},
	}
	match, err := MatchFilter(entry, "field", "$.region=eu-frankfurt-1")
	assert.Nil(t, err)
	assert.True(t, match)

	match, err = MatchFilter(entry, "field", "$.region=us-ashburn-1")
	assert.Nil(t, err)
	assert.False(t, match)
}

func TestMatchFilterBadValue(t *testing.T) {
	entry := StateEntry{ID: "web-01", Body: map[string]interface{}{}}
	_, err := MatchFilter(entry, "field", "no-equals-sign")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadRequest(err))
}

func TestMatchFilterUnsupportedType(t *testing.T) {
	entry := StateEntry{ID: "web-01", Body: map[string]interface{}{}}
	_, err := MatchFilter(entry, "label", "app=web")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadRequest(err))
}
