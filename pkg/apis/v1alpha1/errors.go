/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package v1alpha1

import (
	"fmt"
)

// PluginError is the error type surfaced from plugin providers and managers to
// the host runtime. State carries the failure classification so callers can
// apply per-state policies without parsing messages.
type PluginError struct {
	InnerError error
	Message    string
	State      State
}

func (e PluginError) Error() string {
	if e.Message != "" && e.InnerError != nil {
		return fmt.Sprintf("%s: %s (caused by: %s)", e.State.String(), e.Message, e.InnerError.Error())
	} else if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.State.String(), e.Message)
	} else if e.InnerError != nil {
		return e.InnerError.Error()
	} else {
		return ""
	}
}

func (e PluginError) Unwrap() error {
	return e.InnerError
}

func (e PluginError) IsUserErr() bool {
	return e.State < 500 && e.State >= 400
}

func NewPluginError(err error, msg string, state State) PluginError {
	return PluginError{
		InnerError: err,
		Message:    msg,
		State:      state,
	}
}

func FromError(err error) PluginError {
	return PluginError{
		InnerError: err,
		Message:    err.Error(),
		State:      InternalError,
	}
}

// FromHTTPResponseCode maps a service HTTP status to a PluginError state. The
// OCI SDK exposes the status of a failed call through its service error
// interface, which is all the classification the plugins need.
func FromHTTPResponseCode(code int, msg string, err error) PluginError {
	var state State
	switch code {
	case 400:
		state = BadRequest
	case 401:
		state = Unauthorized
	case 403:
		state = Forbidden
	case 404:
		state = NotFound
	case 409:
		state = Conflict
	case 503:
		state = ServiceUnavailable
	default:
		state = InternalError
	}
	return PluginError{
		InnerError: err,
		Message:    msg,
		State:      state,
	}
}

func GetErrorState(err error) State {
	if pluginErr, ok := err.(PluginError); ok {
		return pluginErr.State
	}
	return InternalError
}

func IsNotFound(err error) bool {
	pluginErr, ok := err.(PluginError)
	if !ok {
		return false
	}
	return pluginErr.State == NotFound
}

// IsAccessDenied reports whether the error is an authorization failure. OCI
// answers 401 for bad auth material and 404 NotAuthorizedOrNotFound for policy
// denials, so only explicit 401/403 states count here.
func IsAccessDenied(err error) bool {
	pluginErr, ok := err.(PluginError)
	if !ok {
		return false
	}
	return pluginErr.State == Unauthorized || pluginErr.State == Forbidden
}

func IsBadConfig(err error) bool {
	pluginErr, ok := err.(PluginError)
	if !ok {
		return false
	}
	return pluginErr.State == BadConfig
}

func IsBadRequest(err error) bool {
	pluginErr, ok := err.(PluginError)
	if !ok {
		return false
	}
	return pluginErr.State == BadRequest || pluginErr.State == InvalidArgument
}
