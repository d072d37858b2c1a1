// Package telemetry provides the OpenTelemetry tracer used around segment I/O.
package telemetry

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/slicer/internal/core/ports"
)

// InstrumentationName identifies spans emitted by slicer.
const InstrumentationName = "go.trai.ch/slicer"

// NewProvider returns a TracerProvider that reports every ended span to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
}

// NewTracer registers a provider backed by logger as the global one and
// returns slicer's tracer from it.
func NewTracer(logger ports.Logger) trace.Tracer {
	tp := NewProvider(logger)
	otel.SetTracerProvider(tp)
	return tp.Tracer(InstrumentationName)
}
