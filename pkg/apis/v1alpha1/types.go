/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package v1alpha1

// State represents a response state
type State uint16

const (
	// OK = HTTP 200
	OK State = 200
	// BadRequest = HTTP 400
	BadRequest State = 400
	// Unauthorized = HTTP 401
	Unauthorized State = 401
	// Forbidden = HTTP 403
	Forbidden State = 403
	// NotFound = HTTP 404
	NotFound State = 404
	Conflict State = 409
	// InternalError = HTTP 500
	InternalError      State = 500
	ServiceUnavailable State = 503
	// Config errors
	BadConfig     State = 1000
	MissingConfig State = 1001
	// API invocation errors
	InvalidArgument State = 2000
	// Serialization errors
	SerializationError State = 5000
	DeserializeError   State = 5001
)

func (s State) String() string {
	switch s {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case Conflict:
		return "Conflict"
	case InternalError:
		return "Internal Error"
	case ServiceUnavailable:
		return "Service Unavailable"
	case BadConfig:
		return "Bad Config"
	case MissingConfig:
		return "Missing Config"
	case InvalidArgument:
		return "Invalid Argument"
	case SerializationError:
		return "Serialization Error"
	case DeserializeError:
		return "De-serialization Error"
	default:
		return "Unknown State"
	}
}

const (
	// TracingExporterConsole is the console exporter for tracing pipelines.
	TracingExporterConsole = "tracing.exporters.console"
	// TracingExporterZipkin is the zipkin exporter for tracing pipelines.
	TracingExporterZipkin = "tracing.exporters.zipkin"
)

// Well-known manager property keys that select named providers.
const (
	ProvidersState    = "providers.state"
	ProvidersLookup   = "providers.lookup"
	ProvidersHostvars = "providers.hostvars"
)
