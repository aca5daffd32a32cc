package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finanzas/internal/auth"
)

func newTokenCommand(e *env) *cobra.Command {
	var (
		email string
		name  string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a whitelisted email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := auth.NewVerifier(e.cfg.Auth.JWTSecret, e.cfg.Auth.Whitelist)
			if err != nil {
				return fmt.Errorf("configure auth: %w", err)
			}

			token, err := v.Issue(email, name, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "whitelisted email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&name, "name", "", "display name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")

	return cmd
}
