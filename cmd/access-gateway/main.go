package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "access-gateway",
		Short: "RFID access-control gateway: decides badge swipes and keeps the audit trail",
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newDemoCmd(),
		newEmulateCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
