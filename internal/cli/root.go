package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cinemabooking/internal/adapters/api"
)

var apiBaseURL string

var rootCmd = &cobra.Command{
	Use:   "cinema",
	Short: "Cinema booking CLI",
	Long:  `Browse movies, cinemas and sessions, book seats and pay bookings from the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of the cinema CLI",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cinema CLI v0.1")
	},
}

// newAPIClient builds an API client for the configured base URL. A token in
// CINEMA_TOKEN is attached so authenticated commands work without logging in
// every time.
func newAPIClient() *api.Client {
	c := api.NewClient(apiBaseURL, &http.Client{Timeout: 15 * time.Second})
	if token := os.Getenv("CINEMA_TOKEN"); token != "" {
		c.SetToken(token)
	}
	return c
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", envOr("API_BASE_URL", "http://localhost:3022"), "booking API base URL")
	rootCmd.AddCommand(moviesCmd, cinemasCmd, sessionsCmd, bookingsCmd, bookCmd, signupCmd, loginCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
