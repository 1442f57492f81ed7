/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package ocisecret

import (
	"context"
	"encoding/base64"
	"os"
	"testing"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1/contexts"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/secrets"
	"github.com/oracle/oci-go-sdk/v65/vault"
	"github.com/stretchr/testify/assert"
)

type fakeServiceError struct {
	status int
	msg    string
}

func (e fakeServiceError) Error() string           { return e.msg }
func (e fakeServiceError) GetHTTPStatusCode() int  { return e.status }
func (e fakeServiceError) GetMessage() string      { return e.msg }
func (e fakeServiceError) GetCode() string         { return "NotAuthorizedOrNotFound" }
func (e fakeServiceError) GetOpcRequestID() string { return "opc-request-id" }

var _ common.ServiceError = fakeServiceError{}

type fakeVaults struct {
	pages []vault.ListSecretsResponse
	err   error

	calls    int
	lastName string
}

func (f *fakeVaults) ListSecrets(ctx context.Context, request vault.ListSecretsRequest) (vault.ListSecretsResponse, error) {
	if f.err != nil {
		return vault.ListSecretsResponse{}, f.err
	}
	if request.Name != nil {
		f.lastName = *request.Name
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

type fakeBundles struct {
	data map[string]string
	err  error

	lastRequest secrets.GetSecretBundleRequest
}

func (f *fakeBundles) GetSecretBundle(ctx context.Context, request secrets.GetSecretBundleRequest) (secrets.GetSecretBundleResponse, error) {
	if f.err != nil {
		return secrets.GetSecretBundleResponse{}, f.err
	}
	f.lastRequest = request
	value, ok := f.data[*request.SecretId]
	if !ok {
		return secrets.GetSecretBundleResponse{}, fakeServiceError{status: 404, msg: "secret not found"}
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(value))
	return secrets.GetSecretBundleResponse{
		SecretBundle: secrets.SecretBundle{
			SecretId:            request.SecretId,
			SecretBundleContent: secrets.Base64SecretBundleContentDetails{Content: &encoded},
		},
	}, nil
}

func singlePage(ids ...string) []vault.ListSecretsResponse {
	items := make([]vault.SecretSummary, 0, len(ids))
	for i := range ids {
		items = append(items, vault.SecretSummary{Id: &ids[i]})
	}
	return []vault.ListSecretsResponse{{Items: items}}
}

func TestInit(t *testing.T) {
	provider := OCISecretProvider{}
	err := provider.Init(OCISecretProviderConfig{Name: "test"})
	assert.Nil(t, err)
}

func TestInitWithMap(t *testing.T) {
	provider := OCISecretProvider{}
	err := provider.InitWithMap(map[string]string{
		"name":          "test",
		"compartmentId": "ocid1.compartment.oc1..aaaa",
		"vaultId":       "ocid1.vault.oc1..aaaa",
		"versionNumber": "2",
		"stage":         "CURRENT",
	})
	assert.Nil(t, err)
	assert.Equal(t, int64(2), provider.Config.VersionNumber)
	assert.Equal(t, "CURRENT", provider.Config.Stage)
}

func TestInitWithMapBadVersionNumber(t *testing.T) {
	provider := OCISecretProvider{}
	err := provider.InitWithMap(map[string]string{
		"versionNumber": "two",
	})
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadConfig(err))
}

func TestID(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{Name: "vault-secrets"})
	assert.Equal(t, "vault-secrets", provider.ID())
}

func TestSetContext(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{Name: "test"})
	provider.SetContext(&contexts.PluginContext{})
	assert.NotNil(t, provider.Context)
}

func TestLookupByName(t *testing.T) {
	provider := OCISecretProvider{}
	err := provider.Init(OCISecretProviderConfig{
		Name:          "test",
		CompartmentID: "ocid1.compartment.oc1..aaaa",
	})
	assert.Nil(t, err)
	vaults := &fakeVaults{pages: singlePage("ocid1.vaultsecret.oc1..s1")}
	provider.vaults = vaults
	provider.bundles = &fakeBundles{data: map[string]string{
		"ocid1.vaultsecret.oc1..s1": "db_admin_password",
	}}

	values, err := provider.Lookup(context.Background(), "db-admin")
	assert.Nil(t, err)
	assert.Equal(t, []string{"db_admin_password"}, values)
	assert.Equal(t, "db-admin", vaults.lastName)
}

func TestLookupByOCID(t *testing.T) {
	provider := OCISecretProvider{}
	err := provider.Init(OCISecretProviderConfig{Name: "test"})
	assert.Nil(t, err)
	// no compartment configured: OCID lookups don't need one
	provider.vaults = &fakeVaults{}
	provider.bundles = &fakeBundles{data: map[string]string{
		"ocid1.vaultsecret.oc1..s1": "s3cr3t",
	}}

	values, err := provider.Lookup(context.Background(), "ocid1.vaultsecret.oc1..s1")
	assert.Nil(t, err)
	assert.Equal(t, []string{"s3cr3t"}, values)
}

func TestLookupEmptyTerm(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{Name: "test"})
	_, err := provider.Lookup(context.Background(), "  ")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsBadRequest(err))
}

func TestLookupMissingCompartment(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{Name: "test"})
	provider.vaults = &fakeVaults{}
	provider.bundles = &fakeBundles{}

	_, err := provider.Lookup(context.Background(), "db-admin")
	assert.NotNil(t, err)
	assert.Equal(t, v1alpha1.MissingConfig, v1alpha1.GetErrorState(err))
}

func TestLookupNotFound(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{
		Name:          "test",
		CompartmentID: "ocid1.compartment.oc1..aaaa",
	})
	provider.vaults = &fakeVaults{pages: singlePage()}
	provider.bundles = &fakeBundles{}

	_, err := provider.Lookup(context.Background(), "secret-not-exist")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsNotFound(err))
}

func TestLookupDenied(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{
		Name:          "test",
		CompartmentID: "ocid1.compartment.oc1..aaaa",
	})
	provider.vaults = &fakeVaults{err: fakeServiceError{status: 401, msg: "unauthorized"}}
	provider.bundles = &fakeBundles{}

	_, err := provider.Lookup(context.Background(), "secret-denied")
	assert.NotNil(t, err)
	assert.True(t, v1alpha1.IsAccessDenied(err))
}

func TestLookupMultipleMatches(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{
		Name:          "test",
		CompartmentID: "ocid1.compartment.oc1..aaaa",
	})
	provider.vaults = &fakeVaults{pages: singlePage("ocid1.vaultsecret.oc1..s1", "ocid1.vaultsecret.oc1..s2")}
	provider.bundles = &fakeBundles{data: map[string]string{
		"ocid1.vaultsecret.oc1..s1": "first",
		"ocid1.vaultsecret.oc1..s2": "second",
	}}

	values, err := provider.Lookup(context.Background(), "duplicated-name")
	assert.Nil(t, err)
	assert.Equal(t, []string{"first", "second"}, values)
}

func TestLookupPaginates(t *testing.T) {
	s1 := "ocid1.vaultsecret.oc1..s1"
	s2 := "ocid1.vaultsecret.oc1..s2"
	next := "page-2"
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{
		Name:          "test",
		CompartmentID: "ocid1.compartment.oc1..aaaa",
	})
	vaults := &fakeVaults{pages: []vault.ListSecretsResponse{
		{Items: []vault.SecretSummary{{Id: &s1}}, OpcNextPage: &next},
		{Items: []vault.SecretSummary{{Id: &s2}}},
	}}
	provider.vaults = vaults
	provider.bundles = &fakeBundles{data: map[string]string{
		s1: "first",
		s2: "second",
	}}

	values, err := provider.Lookup(context.Background(), "duplicated-name")
	assert.Nil(t, err)
	assert.Equal(t, []string{"first", "second"}, values)
	assert.Equal(t, 2, vaults.calls)
}

func TestLookupVersionQualifiers(t *testing.T) {
	provider := OCISecretProvider{}
	provider.Init(OCISecretProviderConfig{
		Name:          "test",
		VersionNumber: 3,
		Stage:         "PREVIOUS",
	})
	bundles := &fakeBundles{data: map[string]string{
		"ocid1.vaultsecret.oc1..s1": "v3",
	}}
	provider.vaults = &fakeVaults{}
	provider.bundles = bundles

	values, err := provider.Lookup(context.Background(), "ocid1.vaultsecret.oc1..s1")
	assert.Nil(t, err)
	assert.Equal(t, []string{"v3"}, values)
	assert.Equal(t, int64(3), *bundles.lastRequest.VersionNumber)
	assert.Equal(t, secrets.GetSecretBundleStageEnum("PREVIOUS"), bundles.lastRequest.Stage)
}

func TestLookupLive(t *testing.T) {
	secretName := os.Getenv("TEST_OCI_SECRET_NAME")
	if secretName == "" {
		t.Skip("Skipping because TEST_OCI_SECRET_NAME is missing")
	}
	provider := OCISecretProvider{}
	err := provider.Init(OCISecretProviderConfig{
		Name:          "live",
		CompartmentID: os.Getenv("TEST_OCI_COMPARTMENT_ID"),
		VaultID:       os.Getenv("TEST_OCI_VAULT_ID"),
	})
	assert.Nil(t, err)
	values, err := provider.Lookup(context.Background(), secretName)
	assert.Nil(t, err)
	assert.NotEmpty(t, values)
}
