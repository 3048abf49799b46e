// Package usage provides operator commands to inspect and adjust quotas.
package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/infrastructure/database"
	"github.com/boomerhub/boomerhub/internal/infrastructure/llm"
	"github.com/boomerhub/boomerhub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/boomerhub/boomerhub/internal/interfaces/http"
)

var (
	flags        bootstrap.Flags
	identity     string
	identityType string
)

// usageAction runs one use case against the wired container.
type usageAction func(ctx context.Context, c *httpRouter.Container, req dto.IdentityRequest) (*dto.UsageStatusResponse, error)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect and adjust AI usage quotas",
		Long:  `Check, record or reset the daily AI usage quota of a guest or user identity.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&identity, "identity", "i", "", "Guest id or user id (required)")
	cmd.PersistentFlags().StringVarP(&identityType, "type", "t", "guest", "Identity type (guest, user)")
	_ = cmd.MarkPersistentFlagRequired("identity")

	cmd.AddCommand(
		newActionCommand("check", "Show the remaining quota", func(ctx context.Context, c *httpRouter.Container, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
			return c.CheckUsageUseCase().Execute(ctx, req)
		}),
		newActionCommand("record", "Record one AI invocation", func(ctx context.Context, c *httpRouter.Container, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
			return c.RecordUsageUseCase().Execute(ctx, req)
		}),
		newActionCommand("reset", "Reset the count to zero under a fresh window", func(ctx context.Context, c *httpRouter.Container, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
			return c.ResetUsageUseCase().Execute(ctx, req)
		}),
	)

	return cmd
}

func newActionCommand(use, short string, action usageAction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, action)
		},
	}
}

func runAction(cmd *cobra.Command, action usageAction) error {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return err
	}

	// Operator commands never pass through the burst guard.
	cfg.RateLimit.Enabled = false

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps := httpRouter.Deps{Generator: llm.NewNoopGenerator()}
	if bootstrap.NeedsDatabase(cfg) {
		if err := bootstrap.OpenDatabase(cfg); err != nil {
			return err
		}
		defer database.Close()
		deps.DB = database.Get()
	}
	if bootstrap.NeedsRedis(cfg) {
		client, err := bootstrap.OpenRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Redis = client
	}

	container, err := httpRouter.NewContainer(ctx, cfg, deps, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer container.Shutdown()

	status, err := action(ctx, container, dto.IdentityRequest{
		IdentityKey:  identity,
		IdentityType: identityType,
	})
	if err != nil {
		return err
	}

	return printStatus(cmd.OutOrStdout(), status)
}

func printStatus(w io.Writer, status *dto.UsageStatusResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}
