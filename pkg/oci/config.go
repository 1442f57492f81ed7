/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

// Package oci carries the SDK plumbing shared by the lookup and hostvars
// providers: authentication selection and configuration-profile resolution.
// Clients are constructed once per provider and reused for sequential calls;
// no concurrency contract is assumed beyond what the SDK itself gives.
package oci

import (
	"os"
	"path/filepath"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/common/auth"
)

type AuthType string

const (
	AuthAPIKey            AuthType = "api_key"
	AuthInstancePrincipal AuthType = "instance_principal"

	// envAuthType mirrors the OCI CLI switch for selecting the signer.
	envAuthType = "OCI_CLI_AUTH"
	// envConfigProfile overrides the configured profile name.
	envConfigProfile = "OCI_CONFIG_PROFILE"

	defaultProfile = "DEFAULT"
)

// ResolveAuthType picks the authentication flavor: an explicit setting wins,
// then the OCI_CLI_AUTH environment variable, then api_key.
func ResolveAuthType(configured string) AuthType {
	if configured != "" {
		return AuthType(configured)
	}
	if v, ok := os.LookupEnv(envAuthType); ok && v != "" {
		return AuthType(v)
	}
	return AuthAPIKey
}

// ResolveProfile picks the config-file profile: OCI_CONFIG_PROFILE wins over
// the configured profile, falling back to DEFAULT.
func ResolveProfile(configured string) string {
	if v, ok := os.LookupEnv(envConfigProfile); ok && v != "" {
		return v
	}
	if configured != "" {
		return configured
	}
	return defaultProfile
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".oci", "config")
}

// ConfigurationProvider builds the SDK configuration provider for the selected
// authentication flavor. For api_key auth the provider reads the OCI config
// file (configFile, or ~/.oci/config when empty) with the resolved profile;
// instance_principal auth talks to the instance metadata service instead and
// needs no local configuration.
func ConfigurationProvider(configFile string, profile string, authType AuthType) (common.ConfigurationProvider, error) {
	switch authType {
	case AuthAPIKey, "":
		if configFile == "" {
			configFile = defaultConfigFile()
		}
		return common.CustomProfileConfigProvider(configFile, ResolveProfile(profile)), nil
	case AuthInstancePrincipal:
		provider, err := auth.InstancePrincipalConfigurationProvider()
		if err != nil {
			return nil, v1alpha1.NewPluginError(err, "failed to build instance principal configuration", v1alpha1.BadConfig)
		}
		return provider, nil
	default:
		return nil, v1alpha1.NewPluginError(nil, "unsupported auth type '"+string(authType)+"'", v1alpha1.BadConfig)
	}
}

// ServiceError converts an OCI SDK error into a typed PluginError, preserving
// the service HTTP status. Non-service failures (transport, signing) map to
// InternalError.
func ServiceError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if serviceErr, ok := common.IsServiceError(err); ok {
		return v1alpha1.FromHTTPResponseCode(serviceErr.GetHTTPStatusCode(), msg+": "+serviceErr.GetMessage(), err)
	}
	return v1alpha1.NewPluginError(err, msg, v1alpha1.InternalError)
}
