package commands

import (
	"context"
	"fmt"
	"os"

	"limeharvest/lib/configutil"
	"limeharvest/lib/limerpc"
	"limeharvest/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "limeharvest",
	Short: "limeharvest extracts LimeSurvey data into analysis-ready tables.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	Url      string            `json:"url"`
	Username string            `json:"username"`
	Password string            `json:"password"`
	Headers  map[string]string `json:"headers"`
}

func newClient() *limerpc.Client {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	client, err := limerpc.NewClient(limerpc.Credentials{
		Url:      cfg.Url,
		Username: cfg.Username,
		Password: cfg.Password,
		Headers:  cfg.Headers,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize remote control client", err)
	}
	return client
}
