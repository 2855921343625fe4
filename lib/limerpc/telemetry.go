package limerpc

import (
	"limeharvest/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/limerpc")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
