package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/posadmin/cmd/app/commands"
	"github.com/allisson/posadmin/internal/app"
	"github.com/allisson/posadmin/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create a new staff account bound to a role",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique sign-in handle",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plain password (hashed before storage)",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Role name the account belongs to",
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

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				roleRepository, err := container.RoleRepository()
				if err != nil {
					return err
				}

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					roleRepository,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("username"),
					cmd.String("password"),
					cmd.String("role"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-role",
			Usage: "Create a new role",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Role name (lowercase, hyphen-separated)",
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

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateRole(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("name"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-capability",
			Usage: "Register a new named capability",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Capability name (lowercase, hyphen-separated)",
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

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateCapability(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("name"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "grant-role-capability",
			Usage: "Add a capability to a role's default grant set",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Role name",
				},
				&cli.StringFlag{
					Name:     "capability",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Capability name",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunGrantRoleCapability(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("role"),
					cmd.String("capability"),
				)
			},
		},
	}
}
