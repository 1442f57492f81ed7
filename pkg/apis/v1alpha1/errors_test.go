/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package v1alpha1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	pluginError := PluginError{
		State:      InternalError,
		Message:    "Mock Error Message",
		InnerError: errors.New("Mock Inner Error"),
	}
	errStr := pluginError.Error()
	assert.Equal(t, "Internal Error: Mock Error Message (caused by: Mock Inner Error)", errStr)
}

func TestErrorNoInner(t *testing.T) {
	pluginError := PluginError{
		State:   NotFound,
		Message: "Mock Error Message",
	}
	assert.Equal(t, "Not Found: Mock Error Message", pluginError.Error())
}

func TestFromError(t *testing.T) {
	pluginError := FromError(errors.New("Mock Error"))
	assert.Equal(t, "Mock Error", pluginError.Message)
	assert.Equal(t, InternalError, pluginError.State)
}

func TestFromHTTPResponseCode(t *testing.T) {
	mapCodeToState := map[int]State{
		400: BadRequest,
		401: Unauthorized,
		403: Forbidden,
		404: NotFound,
		409: Conflict,
		503: ServiceUnavailable,
		500: InternalError,
		418: InternalError,
	}
	for code, state := range mapCodeToState {
		pluginError := FromHTTPResponseCode(code, "Mock Error Message", errors.New("Mock Error"))
		assert.Equal(t, state, pluginError.State)
		assert.Equal(t, "Mock Error Message", pluginError.Message)
		assert.Equal(t, "Mock Error", pluginError.InnerError.Error())
	}
}

func TestNewPluginError(t *testing.T) {
	pluginError := NewPluginError(errors.New("Mock Error"), "Mock Error Message", InternalError)
	assert.Equal(t, "Mock Error", pluginError.InnerError.Error())
	assert.Equal(t, "Mock Error Message", pluginError.Message)
	assert.Equal(t, InternalError, pluginError.State)
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("Mock Error")
	pluginError := NewPluginError(inner, "Mock Error Message", InternalError)
	assert.True(t, errors.Is(pluginError, inner))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("Mock Error")))
	assert.True(t, IsNotFound(NewPluginError(errors.New("Mock Error"), "Mock Error Message", NotFound)))
}

func TestIsAccessDenied(t *testing.T) {
	assert.False(t, IsAccessDenied(errors.New("Mock Error")))
	assert.False(t, IsAccessDenied(NewPluginError(nil, "Mock Error Message", NotFound)))
	assert.True(t, IsAccessDenied(NewPluginError(nil, "Mock Error Message", Unauthorized)))
	assert.True(t, IsAccessDenied(NewPluginError(nil, "Mock Error Message", Forbidden)))
}

func TestIsBadConfig(t *testing.T) {
	assert.False(t, IsBadConfig(errors.New("Mock Error")))
	assert.True(t, IsBadConfig(NewPluginError(nil, "Mock Error Message", BadConfig)))
}

func TestIsUserErr(t *testing.T) {
	assert.True(t, NewPluginError(nil, "", NotFound).IsUserErr())
	assert.False(t, NewPluginError(nil, "", InternalError).IsUserErr())
	assert.False(t, NewPluginError(nil, "", BadConfig).IsUserErr())
}

func TestGetErrorState(t *testing.T) {
	assert.Equal(t, InternalError, GetErrorState(errors.New("Mock Error")))
	assert.Equal(t, NotFound, GetErrorState(NewPluginError(nil, "Mock Error Message", NotFound)))
}
