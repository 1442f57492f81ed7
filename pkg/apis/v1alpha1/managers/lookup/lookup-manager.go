/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package lookup

import (
	"context"
	"strings"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/managers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/observability"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers/lookup"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
	"github.com/google/uuid"
)

var log = logger.NewLogger("oci.collection")

// Behavior for terms that resolve to nothing or that the caller has no
// access to.
const (
	OnErrorFail = "error"
	OnErrorWarn = "warn"
	OnErrorSkip = "skip"
)

type LookupOptions struct {
	OnMissing string `json:"onMissing,omitempty"`
	OnDenied  string `json:"onDenied,omitempty"`
	Join      string `json:"join,omitempty"`
}

type LookupManager struct {
	managers.Manager
	LookupProvider lookup.ILookupProvider
}

func (m *LookupManager) Init(context *contexts.PluginContext, cfg managers.ManagerConfig, providers map[string]providers.IProvider) error {
	log.Debug(" M (Lookup): Init")
	err := m.Manager.Init(context, cfg, providers)
	if err != nil {
		return err
	}
	lookupProvider, err := managers.GetLookupProvider(cfg, providers)
	if err != nil {
		return err
	}
	m.LookupProvider = lookupProvider
	return nil
}

// Lookup resolves a batch of terms in order. By default the first failure is
// fatal and no partial results are returned. The onMissing and onDenied
// options downgrade not-found and access-denied failures to a warning or a
// silent skip. When Join is set, all resolved values are joined into a single
// result string.
func (m *LookupManager) Lookup(ctx context.Context, terms []string, options LookupOptions) ([]string, error) {
	ctx, span := observability.StartSpan("Lookup Manager", ctx, &map[string]string{
		"method": "Lookup",
	})
	var err error = nil
	defer observability.CloseSpanWithError(span, &err)

	correlationID := uuid.New().String()
	log.InfofCtx(ctx, " M (Lookup): lookup %d terms, correlation id %s", len(terms), correlationID)

	if err = validateOnError(options.OnMissing); err != nil {
		return nil, err
	}
	if err = validateOnError(options.OnDenied); err != nil {
		return nil, err
	}

	results := make([]string, 0, len(terms))
	for _, term := range terms {
		var values []string
		values, err = m.LookupProvider.Lookup(ctx, term)
		if err != nil {
			var fatal bool
			fatal, err = m.handleLookupError(ctx, term, err, options)
			if fatal {
				return nil, err
			}
			continue
		}
		results = append(results, values...)
	}

	if options.Join != "" && len(results) > 0 {
		results = []string{strings.Join(results, options.Join)}
	}
	return results, nil
}

// handleLookupError decides whether a per-term failure aborts the batch.
// It returns fatal=false when the configured behavior downgrades the error.
func (m *LookupManager) handleLookupError(ctx context.Context, term string, lookupErr error, options LookupOptions) (bool, error) {
	var behavior string
	switch {
	case v1alpha1.IsNotFound(lookupErr):
		behavior = utils.FirstNonEmpty(options.OnMissing, OnErrorFail)
	case v1alpha1.IsAccessDenied(lookupErr):
		behavior = utils.FirstNonEmpty(options.OnDenied, OnErrorFail)
	default:
		behavior = OnErrorFail
	}
	switch behavior {
	case OnErrorWarn:
		log.WarnfCtx(ctx, " M (Lookup): term '%s' skipped: %v", term, lookupErr)
		return false, nil
	case OnErrorSkip:
		log.DebugfCtx(ctx, " M (Lookup): term '%s' skipped: %v", term, lookupErr)
		return false, nil
	default:
		log.ErrorfCtx(ctx, " M (Lookup): failed to look up term '%s': %v", term, lookupErr)
		return true, lookupErr
	}
}

func validateOnError(behavior string) error {
	switch behavior {
	case "", OnErrorFail, OnErrorWarn, OnErrorSkip:
		return nil
	default:
		return v1alpha1.NewPluginError(nil, "'"+behavior+"' is not a valid error behavior, expected error, warn or skip", v1alpha1.InvalidArgument)
	}
}
