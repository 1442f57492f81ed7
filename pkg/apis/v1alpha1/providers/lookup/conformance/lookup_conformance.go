/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package conformance

import (
	"context"
	"testing"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/lookup"
	"github.com/stretchr/testify/assert"
)

// LookupNotFound asserts the typed not-found contract: the lookup manager's
// on_missing policy can only work when providers classify missing terms.
func LookupNotFound[P lookup.ILookupProvider](t *testing.T, p P) {
	_, err := p.Lookup(context.Background(), "conformance-term-that-does-not-exist")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsNotFound(err))
}

// LookupEmptyTerm asserts that an empty identifier is rejected as a user error
// rather than forwarded to the backing service.
func LookupEmptyTerm[P lookup.ILookupProvider](t *testing.T, p P) {
	_, err := p.Lookup(context.Background(), "")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadRequest(err))
}

func ConformanceSuite[P lookup.ILookupProvider](t *testing.T, p P) {
	t.Run("Level=Default", func(t *testing.T) {
		LookupNotFound(t, p)
		LookupEmptyTerm(t, p)
	})
}
