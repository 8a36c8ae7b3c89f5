// Package main mints bearer tokens for the admin-only routes of the API.
// Tokens are signed with JWT_SECRET, so they only work against a server sharing that secret.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/octobees/sales-routes/api/internal/auth"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Subject   string `json:"subject"`
	Role      string `json:"role"`
	ExpiresIn string `json:"expires_in"`
}

type tokenOptions struct {
	subject string
	name    string
	role    string
	secret  string
	ttl     time.Duration
	json    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := tokenOptions{}

	cmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Generate a signed access token",
		Long: `Generate an HS256 access token accepted by the JWT middleware.

Examples:
  tokengen --subject admin-1 --role admin
  tokengen --subject seller-7 --name "Ana Souza" --ttl 1h --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokengen(out, opts)
		},
	}

	cmd.Flags().StringVar(&opts.subject, "subject", "", "user identifier stored in the sub claim")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name stored in the token")
	cmd.Flags().StringVar(&opts.role, "role", "admin", "role checked by RequireRole")
	cmd.Flags().StringVar(&opts.secret, "secret", envOr("JWT_SECRET", "dev-secret"), "HMAC signing secret")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token time-to-live")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the token as JSON")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runTokengen(out io.Writer, opts tokenOptions) error {
	manager := auth.NewJWTManager(opts.secret, opts.ttl)
	token, err := manager.GenerateToken(opts.subject, opts.name, opts.role)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	if !opts.json {
		_, err = fmt.Fprintln(out, token)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutput{
		Token:     token,
		Subject:   opts.subject,
		Role:      opts.role,
		ExpiresIn: manager.TTL().String(),
	})
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
