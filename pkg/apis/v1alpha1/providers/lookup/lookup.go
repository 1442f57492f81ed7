/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package lookup

import (
	"context"

	providers "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
)

// ILookupProvider is the extension point the host templating engine drives. A
// single term may legally resolve to more than one value (vault secret names
// are not unique within a compartment), so Lookup returns a slice; order
// follows the backing service's listing order.
type ILookupProvider interface {
	Init(config providers.IProviderConfig) error
	Lookup(ctx context.Context, term string) ([]string, error)
}
