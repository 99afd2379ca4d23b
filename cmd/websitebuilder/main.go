// @title        Website Builder API
// @version      1.0
// @description  Create small business sites, edit them with a secret token and list them as an admin.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "websitebuilder",
		Usage: "Small business website builder",
		Commands: []*cli.Command{
			serveCommand(),
			createAdminCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx)
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server (configured through environment variables)",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx)
		},
	}
}

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "Create an administrator in the configured store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true, Usage: "admin username"},
			&cli.StringFlag{Name: "password", Required: true, Usage: "admin password", Sources: cli.EnvVars("ADMIN_PASSWORD")},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return createAdmin(ctx, c.String("username"), c.String("password"))
		},
	}
}
