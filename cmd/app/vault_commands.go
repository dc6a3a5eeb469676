package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/passvault/passvault/cmd/app/commands"
	"github.com/passvault/passvault/internal/app"
	"github.com/passvault/passvault/internal/config"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-vault",
			Usage: "Create a new password-sealed vault",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique vault name",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				password, err := commands.GetPasswordConfirmed()
				if err != nil {
					return err
				}
				defer vaultDomain.Zero(password)

				return commands.RunCreateVault(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					string(password),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "export-vault",
			Usage: "Print a vault's sealed blob for offline backup",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Vault ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunExportVault(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-entries",
			Usage: "List entry names stored in a vault",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Vault ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				password, err := commands.GetPassword("Enter password: ")
				if err != nil {
					return err
				}
				defer vaultDomain.Zero(password)

				return commands.RunListEntries(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					string(password),
					cmd.String("format"),
				)
			},
		},
	}
}
