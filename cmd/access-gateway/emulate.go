package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/types"
)

func newEmulateCmd() *cobra.Command {
	var (
		server   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Generate random badge swipes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := &http.Client{Timeout: 10 * time.Second}

			directions := []string{"IN", "OUT"}
			for {
				ev := types.AccessRequest{
					BadgeCode:   fmt.Sprintf("RFID-%d", 1000+rand.Intn(9000)),
					TurnstileID: int64(1 + rand.Intn(3)),
					Direction:   directions[rand.Intn(len(directions))],
				}

				fmt.Printf("[%s] badge %s | turnstile %d | %s\n",
					time.Now().Format("15:04:05"), ev.BadgeCode, ev.TurnstileID, ev.Direction)
				if err := postSwipe(client, server, ev); err != nil {
					fmt.Printf("request failed: %v\n", err)
				}

				select {
				case <-time.After(interval):
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8000", "gateway base URL")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "delay between swipes")
	return cmd
}
