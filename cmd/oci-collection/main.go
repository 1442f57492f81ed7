/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package main

import (
	"github.com/ITD27M01/ansible-oci-collection/cmd/oci-collection/cmd"
)

// Version value is injected by the build.
var (
	version = "0.1.0"
)

func main() {
	cmd.Execute(version)
}
