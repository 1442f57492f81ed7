/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package ocisecret

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/providers"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/utils"
	"github.com/ITD27M01/ansible-oci-collection/pkg/logger"
	"github.com/ITD27M01/ansible-oci-collection/pkg/oci"
	"github.com/oracle/oci-go-sdk/v65/secrets"
	"github.com/oracle/oci-go-sdk/v65/vault"
)

var log = logger.NewLogger("oci.collection")

const secretOCIDPrefix = "ocid1.vaultsecret."

type OCISecretProviderConfig struct {
	Name          string `json:"name"`
	ConfigFile    string `json:"configFile,omitempty"`
	Profile       string `json:"profile,omitempty"`
	AuthType      string `json:"authType,omitempty"`
	Region        string `json:"region,omitempty"`
	CompartmentID string `json:"compartmentId,omitempty"`
	VaultID       string `json:"vaultId,omitempty"`
	VersionNumber int64  `json:"versionNumber,omitempty"`
	VersionName   string `json:"versionName,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

func OCISecretProviderConfigFromMap(properties map[string]string) (OCISecretProviderConfig, error) {
	ret := OCISecretProviderConfig{}
	if v, ok := properties["name"]; ok {
		ret.Name = utils.ParseProperty(v)
	}
	if v, ok := properties["configFile"]; ok {
		ret.ConfigFile = utils.ParseProperty(v)
	}
	if v, ok := properties["profile"]; ok {
		ret.Profile = utils.ParseProperty(v)
	}
	if v, ok := properties["authType"]; ok {
		ret.AuthType = utils.ParseProperty(v)
	}
	if v, ok := properties["region"]; ok {
		ret.Region = utils.ParseProperty(v)
	}
	if v, ok := properties["compartmentId"]; ok {
		ret.CompartmentID = utils.ParseProperty(v)
	}
	if v, ok := properties["vaultId"]; ok {
		ret.VaultID = utils.ParseProperty(v)
	}
	if v, ok := properties["versionNumber"]; ok {
		val := utils.ParseProperty(v)
		if val != "" {
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return ret, v1alpha1.NewPluginError(err, "invalid int value in the 'versionNumber' setting of OCI secret provider", v1alpha1.BadConfig)
			}
			ret.VersionNumber = n
		}
	}
	if v, ok := properties["versionName"]; ok {
		ret.VersionName = utils.ParseProperty(v)
	}
	if v, ok := properties["stage"]; ok {
		ret.Stage = utils.ParseProperty(v)
	}
	return ret, nil
}

// vaultsClient is the slice of the OCI vault service the provider uses.
type vaultsClient interface {
	ListSecrets(ctx context.Context, request vault.ListSecretsRequest) (vault.ListSecretsResponse, error)
}

// secretsClient is the slice of the OCI secret-retrieval service the provider uses.
type secretsClient interface {
	GetSecretBundle(ctx context.Context, request secrets.GetSecretBundleRequest) (secrets.GetSecretBundleResponse, error)
}

type OCISecretProvider struct {
	Config  OCISecretProviderConfig
	Context *contexts.PluginContext

	vaults  vaultsClient
	bundles secretsClient
}

func (s *OCISecretProvider) ID() string {
	return s.Config.Name
}

func (s *OCISecretProvider) SetContext(ctx *contexts.PluginContext) {
	s.Context = ctx
}

func (s *OCISecretProvider) InitWithMap(properties map[string]string) error {
	config, err := OCISecretProviderConfigFromMap(properties)
	if err != nil {
		return err
	}
	return s.Init(config)
}

func (s *OCISecretProvider) Init(config providers.IProviderConfig) error {
	aConfig, err := toOCISecretProviderConfig(config)
	if err != nil {
		return v1alpha1.NewPluginError(nil, "provided config is not a valid OCI secret provider config", v1alpha1.BadConfig)
	}
	s.Config = aConfig
	return nil
}

func toOCISecretProviderConfig(config providers.IProviderConfig) (OCISecretProviderConfig, error) {
	ret := OCISecretProviderConfig{}
	data, err := json.Marshal(config)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	ret.Name = utils.ParseProperty(ret.Name)
	ret.Profile = utils.ParseProperty(ret.Profile)
	ret.CompartmentID = utils.ParseProperty(ret.CompartmentID)
	ret.VaultID = utils.ParseProperty(ret.VaultID)
	return ret, err
}

// ensureClients lazily builds the SDK clients on first use so that one
// provider instance keeps a single connection pool across sequential lookups.
func (s *OCISecretProvider) ensureClients() error {
	if s.vaults != nil && s.bundles != nil {
		return nil
	}
	configProvider, err := oci.ConfigurationProvider(s.Config.ConfigFile, s.Config.Profile, oci.ResolveAuthType(s.Config.AuthType))
	if err != nil {
		return err
	}
	vaultsClient, err := vault.NewVaultsClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI vaults client", v1alpha1.BadConfig)
	}
	secretsClient, err := secrets.NewSecretsClientWithConfigurationProvider(configProvider)
	if err != nil {
		return v1alpha1.NewPluginError(err, "failed to create OCI secrets client", v1alpha1.BadConfig)
	}
	if s.Config.Region != "" {
		vaultsClient.SetRegion(s.Config.Region)
		secretsClient.SetRegion(s.Config.Region)
	}
	s.vaults = vaultsClient
	s.bundles = secretsClient
	return nil
}

// Lookup resolves one term to its decoded secret payloads. A term that is a
// secret OCID goes straight to the bundle call; anything else is treated as a
// secret name and matched through the vault listing first.
func (s *OCISecretProvider) Lookup(ctx context.Context, term string) ([]string, error) {
	if strings.TrimSpace(term) == "" {
		return nil, v1alpha1.NewPluginError(nil, "secret identifier is empty", v1alpha1.BadRequest)
	}
	if err := s.ensureClients(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(term, secretOCIDPrefix) {
		value, err := s.getSecretData(ctx, term)
		if err != nil {
			return nil, err
		}
		return []string{value}, nil
	}

	ids, err := s.findSecretIDs(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, v1alpha1.NewPluginError(nil, "secret '"+term+"' not found", v1alpha1.NotFound)
	}
	if len(ids) > 1 {
		log.WarnfCtx(ctx, "  P (OCI Secret): more than one secret found with name %s", term)
	}

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		value, err := s.getSecretData(ctx, id)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (s *OCISecretProvider) findSecretIDs(ctx context.Context, name string) ([]string, error) {
	if s.Config.CompartmentID == "" {
		return nil, v1alpha1.NewPluginError(nil, "compartmentId is required to look up secrets by name", v1alpha1.MissingConfig)
	}

	request := vault.ListSecretsRequest{
		CompartmentId: &s.Config.CompartmentID,
		Name:          &name,
	}
	if s.Config.VaultID != "" {
		request.VaultId = &s.Config.VaultID
	}

	var ids []string
	for {
		response, err := s.vaults.ListSecrets(ctx, request)
		if err != nil {
			return nil, oci.ServiceError(err, "failed to list secrets")
		}
		for _, item := range response.Items {
			if item.Id != nil {
				ids = append(ids, *item.Id)
			}
		}
		if response.OpcNextPage == nil {
			break
		}
		request.Page = response.OpcNextPage
	}
	return ids, nil
}

func (s *OCISecretProvider) getSecretData(ctx context.Context, secretID string) (string, error) {
	request := secrets.GetSecretBundleRequest{
		SecretId: &secretID,
	}
	if s.Config.VersionNumber != 0 {
		request.VersionNumber = &s.Config.VersionNumber
	}
	if s.Config.VersionName != "" {
		request.SecretVersionName = &s.Config.VersionName
	}
	if s.Config.Stage != "" {
		request.Stage = secrets.GetSecretBundleStageEnum(s.Config.Stage)
	}

	response, err := s.bundles.GetSecretBundle(ctx, request)
	if err != nil {
		return "", oci.ServiceError(err, "failed to retrieve secret bundle")
	}

	content, ok := response.SecretBundle.SecretBundleContent.(secrets.Base64SecretBundleContentDetails)
	if !ok || content.Content == nil {
		return "", v1alpha1.NewPluginError(nil, "secret bundle content is not base64", v1alpha1.InternalError)
	}
	decoded, err := base64.StdEncoding.DecodeString(*content.Content)
	if err != nil {
		return "", v1alpha1.NewPluginError(err, "failed to decode secret bundle content", v1alpha1.DeserializeError)
	}
	return string(decoded), nil
}
