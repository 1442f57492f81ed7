/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package contexts

import (
	logger "github.com/ITD27M01/ansible-oci-collection/pkg/logger"
)

// PluginContext is handed to every provider bound to a manager so that all
// plugin activity within one host-runtime invocation shares a logger.
type PluginContext struct {
	Logger logger.Logger
}

func (c *PluginContext) Init(l logger.Logger) error {
	if l == nil {
		c.Logger = logger.NewLogger("oci.collection")
	} else {
		c.Logger = l
	}
	return nil
}

type IWithPluginContext interface {
	SetContext(ctx *PluginContext)
}
