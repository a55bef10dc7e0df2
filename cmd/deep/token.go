package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/deep-core/internal/core/services"
)

var tokenClient string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the control API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if appCfg.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is not set")
		}

		svc := services.NewAuthService(auth.NewAdapter(appCfg.Auth.JWTSecret), appCfg.Auth.TokenTTL)
		token, claims, err := svc.IssueToken(cmd.Context(), tokenClient)
		if err != nil {
			return err
		}

		logger.Info("issued token", "client", claims.ClientID, "expires", time.Unix(claims.ExpiresAt, 0))
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenClient, "client", "cli", "client name embedded in the token")
	rootCmd.AddCommand(tokenCmd, versionCmd)
}
