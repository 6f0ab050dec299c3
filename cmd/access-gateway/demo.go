package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/types"
)

type demoStep struct {
	event types.AccessRequest
	delay time.Duration
}

// demoScenario walks a handful of known badges through the turnstiles and
// finishes with an unknown card.
var demoScenario = []demoStep{
	{types.AccessRequest{BadgeCode: "RFID-1001", TurnstileID: 1, Direction: "IN"}, 2 * time.Second},
	{types.AccessRequest{BadgeCode: "RFID-1003", TurnstileID: 1, Direction: "IN"}, 1 * time.Second},
	{types.AccessRequest{BadgeCode: "RFID-1005", TurnstileID: 2, Direction: "IN"}, 3 * time.Second},
	{types.AccessRequest{BadgeCode: "RFID-1003", TurnstileID: 1, Direction: "OUT"}, 2 * time.Second},
	{types.AccessRequest{BadgeCode: "RFID-9999", TurnstileID: 1, Direction: "IN"}, 1 * time.Second},
}

func newDemoCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted swipe scenario against a running gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := &http.Client{Timeout: 10 * time.Second}

			fmt.Println("=== access gateway demo ===")
			for _, step := range demoScenario {
				fmt.Printf("\n[%s] badge %s | turnstile %d | %s\n",
					time.Now().Format("15:04:05"),
					step.event.BadgeCode, step.event.TurnstileID, step.event.Direction)

				if err := postSwipe(client, server, step.event); err != nil {
					fmt.Printf("request failed: %v\n", err)
				}

				select {
				case <-time.After(step.delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8000", "gateway base URL")
	return cmd
}

func postSwipe(client *http.Client, server string, ev types.AccessRequest) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	resp, err := client.Post(server+"/api/access", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var granted types.AccessGranted
		if err := json.NewDecoder(resp.Body).Decode(&granted); err != nil {
			return err
		}
		fmt.Printf("access granted: %s (%s)\n", granted.Employee.FullName, granted.Employee.Position)
		return nil
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return err
	}
	fmt.Printf("rejected (%d): %s\n", resp.StatusCode, raw)
	return nil
}
