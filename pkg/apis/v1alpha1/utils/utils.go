/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package utils

import (
	"os"
	"strings"
)

// ParseProperty resolves "$env:" indirection in provider configuration values,
// so secrets-adjacent settings like profile names never need to be written into
// config files directly.
func ParseProperty(val string) string {
	if strings.HasPrefix(val, "$env:") {
		return os.Getenv(val[5:])
	}
	return val
}

// FirstNonEmpty returns the first non-empty string, or "" when all are empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseBool accepts the spellings the host runtime uses for boolean options.
func ParseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "yes", "1", "on":
		return true
	}
	return false
}
