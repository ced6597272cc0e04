package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jawad-khan/xblock-group-project-v2/auth"
	"github.com/jawad-khan/xblock-group-project-v2/conf"
)

func newTokenCmd() *cobra.Command {
	var (
		userID   int
		username string
		email    string
		fullName string
		staff    bool
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for calling the API as a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.Load()
			if err != nil {
				return err
			}
			key, err := cfg.ResolveJwtKey(cmd.Context())
			if err != nil {
				return err
			}

			token, err := auth.GenerateJWT(userID, username, email, fullName, staff, key)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			log.Debug().Int("userId", userID).Bool("staff", staff).Msg("issued token")
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	tokenCmd.Flags().IntVarP(&userID, "user-id", "u", 0, "User id (required)")
	tokenCmd.Flags().StringVar(&username, "username", "", "Username")
	tokenCmd.Flags().StringVar(&email, "email", "", "Email address")
	tokenCmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	tokenCmd.Flags().BoolVar(&staff, "staff", false, "Issue a staff token")
	tokenCmd.MarkFlagRequired("user-id")

	return tokenCmd
}
