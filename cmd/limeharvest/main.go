package main

import (
	"context"
	"os"

	"limeharvest/cmd/limeharvest/commands"
	"limeharvest/lib/serviceutil"
	"limeharvest/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	// a missing telemetry.json5 just means telemetry is not configured
	err := telemetry.SetupFromEnv(context.Background(), "limeharvest")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())

	commands.ExecuteContext(serviceutil.SignalContext())
}
