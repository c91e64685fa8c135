package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Client commands
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "Client operations",
	}

	createClientCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Register a new client",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/clients", map[string]any{"name": args[0]})
		},
	}

	clientsCmd.AddCommand(createClientCmd)
	rootCmd.AddCommand(clientsCmd)

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var (
		accCurrency string
		accInitial  string
	)

	openAccountCmd := &cobra.Command{
		Use:   "open [client-id] [account-number]",
		Short: "Open an account for a client",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/clients/"+args[0]+"/accounts", map[string]any{
				"account_number":  args[1],
				"currency":        accCurrency,
				"initial_balance": accInitial,
			})
		},
	}
	openAccountCmd.Flags().StringVar(&accCurrency, "currency", "USD", "Account currency code")
	openAccountCmd.Flags().StringVar(&accInitial, "initial", "0", "Initial balance")

	listAccountsCmd := &cobra.Command{
		Use:   "list [client-id]",
		Short: "List a client's accounts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/clients/" + args[0] + "/accounts")
		},
	}

	accountsCmd.AddCommand(openAccountCmd, listAccountsCmd)
	rootCmd.AddCommand(accountsCmd)

	// Transfer command
	var transferClientID string

	transferCmd := &cobra.Command{
		Use:   "transfer [from-number] [to-number] [amount]",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]any{
				"from_account_number": args[0],
				"to_account_number":   args[1],
				"amount":              args[2],
				"client_id":           transferClientID,
			})
		},
	}
	transferCmd.Flags().StringVar(&transferClientID, "client", "", "ID of the client initiating the transfer")
	transferCmd.MarkFlagRequired("client")

	rootCmd.AddCommand(transferCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
