package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NeCjoi157/rfid-access-gateway/internal/config"
	"github.com/NeCjoi157/rfid-access-gateway/internal/db"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load employee and turnstile reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromEnv()

			conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.SeedReferenceData(ctx, conn); err != nil {
				return err
			}

			fmt.Println("reference data loaded")
			return nil
		},
	}
}
