// Package token mints access tokens for local development and operators.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/infrastructure/auth"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/bootstrap"
	"github.com/boomerhub/boomerhub/internal/shared/authorization"
)

var (
	flags  bootstrap.Flags
	userID string
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token tools",
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token for a user",
		Long:  `Sign an access token with the configured JWT secret. Tokens are normally issued by the site's auth provider; this is for development and operator access.`,
		RunE:  runIssue,
	}
	issue.Flags().StringVarP(&userID, "user", "u", "", "User id placed in the sub claim (required)")
	issue.Flags().StringVarP(&role, "role", "r", string(authorization.RoleUser), "Role claim (user, admin)")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return err
	}

	userRole := authorization.UserRole(role)
	if !userRole.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}

	jwtSvc, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	if err != nil {
		return err
	}

	token, err := jwtSvc.Generate(userID, userRole)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	log.Infow("access token issued", "user_id", userID, "role", userRole, "expires_in_minutes", jwtSvc.AccessExpMinutes())
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
