/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package observability

import (
	"bytes"
	"context"
	"fmt"

	v1alpha1 "github.com/ITD27M01/ansible-oci-collection/pkg/apis/v1alpha1"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

type ObservabilityConfig struct {
	Pipelines []PipelineConfig `json:"pipelines"`
}

type PipelineConfig struct {
	Exporter ExporterConfig `json:"exporter"`
}

type ExporterConfig struct {
	Type       string `json:"type"`
	BackendUrl string `json:"backendUrl"`
}

type Observability struct {
	Tracer         trace.Tracer
	TracerProvider trace.TracerProvider
	Buffer         *bytes.Buffer
}

// StartSpan starts a child span of whatever span is carried by ctx, attaching
// the supplied attributes.
func StartSpan(name string, ctx context.Context, attributes *map[string]string) (context.Context, trace.Span) {
	childCtx, childSpan := otel.Tracer(name).Start(ctx, name)
	setSpanAttributes(childSpan, attributes)
	return childCtx, childSpan
}

func setSpanAttributes(span trace.Span, attributes *map[string]string) {
	if attributes != nil {
		for k, v := range *attributes {
			span.SetAttributes(attribute.String(k, v))
		}
	}
}

func EndSpan(ctx context.Context) {
	span := trace.SpanFromContext(ctx)
	span.End()
}

// CloseSpanWithError records the eventual outcome of the operation on the span
// and ends it. Meant to be deferred with a pointer to the named error return.
func CloseSpanWithError(span trace.Span, err *error) {
	if err != nil && *err != nil {
		span.SetStatus(codes.Error, (*err).Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *Observability) Init(config ObservabilityConfig) error {
	for _, p := range config.Pipelines {
		err := o.createPipeline(p)
		if err != nil {
			return err
		}
	}
	propagator := propagation.NewCompositeTextMapPropagator(propagation.Baggage{}, propagation.TraceContext{})
	otel.SetTextMapPropagator(propagator)
	return nil
}

func (o *Observability) createPipeline(config PipelineConfig) error {
	return o.createExporter(config.Exporter)
}

func (o *Observability) createExporter(config ExporterConfig) error {
	var exporter sdktrace.SpanExporter
	var err error
	switch config.Type {
	case v1alpha1.TracingExporterConsole:
		if o.Buffer == nil {
			exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		} else {
			exporter, err = stdouttrace.New(stdouttrace.WithWriter(o.Buffer), stdouttrace.WithPrettyPrint())
		}
		if err != nil {
			return err
		}
	case v1alpha1.TracingExporterZipkin:
		exporter, err = zipkin.New(config.BackendUrl)
		if err != nil {
			return err
		}
	default:
		return v1alpha1.NewPluginError(nil, fmt.Sprintf("exporter type '%s' is not supported", config.Type), v1alpha1.BadConfig)
	}
	batcher := sdktrace.NewBatchSpanProcessor(exporter)
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(batcher),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("OCI Collection"),
		))))
	return nil
}
