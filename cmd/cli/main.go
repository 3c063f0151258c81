package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kobowallet-cli",
		Short: "KoboWallet CLI tool",
		Long:  `A command line interface for interacting with the KoboWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the KoboWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("KOBOWALLET_TOKEN"), "Bearer token for authenticated requests")

	// Auth commands
	signupCmd := &cobra.Command{
		Use:   "signup <email> <name> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/auth/signup", map[string]any{
				"email":    args[0],
				"name":     args[1],
				"password": args[2],
			}, "")
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and print an access token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/auth/login", map[string]any{
				"email":    args[0],
				"password": args[1],
			}, "")
		},
	}

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	walletCreateCmd := &cobra.Command{
		Use:   "create <phone-number> <currency>",
		Short: "Provision a wallet for the authenticated user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/wallets", map[string]any{
				"phone_number": args[0],
				"currency":     args[1],
			}, "")
		},
	}

	walletListCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/wallets")
		},
	}

	walletGetCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get a wallet by account ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/wallets/" + args[0])
		},
	}

	walletCmd.AddCommand(walletCreateCmd, walletListCmd, walletGetCmd)

	// Transfer command
	transferCmd := &cobra.Command{
		Use:   "transfer <from-account-id> <to-account-id> <amount>",
		Short: "Transfer funds between wallets",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          args[2],
			}, uuid.NewString())
		},
	}

	// Health command
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/health")
		},
	}

	rootCmd.AddCommand(signupCmd, loginCmd, walletCmd, transferCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doPost(path string, payload map[string]any, idempotencyKey string) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	doRequest(req)
}

func doGet(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	doRequest(req)
}

func doRequest(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		body = pretty.Bytes()
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, string(body))

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
