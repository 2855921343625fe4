package survey

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("lib/survey")
