package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/aboutme/internal/app"
	"github.com/MrSnakeDoc/aboutme/internal/config"
	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/version"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "aboutme",
	Short: "Serve or build a personal About Me page",
	Long: `aboutme renders an About Me page from a publication fetched by host
from a GraphQL content API, combined with a static profile.

Configuration is read from the environment (ABOUTME_*, HASHNODE_*).`,
	SilenceUsage: true,
}

// serveCmd starts the HTTP service
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page and regenerate it in the background",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// buildCmd generates the page once
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the page once and write it to a file",
	Long: `Generate the page once.

A rendered page is written to --out. When the publication does not exist,
any previous output is removed and the command still succeeds.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "aboutme "+version.String())
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "public/index.html", "output file for the rendered page")

	rootCmd.AddCommand(serveCmd, buildCmd, versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, config.Load())
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	kind, err := app.Build(ctx, cfg, loggerClient, outPath)
	if err != nil {
		return err
	}
	if kind == domain.ResultNotFound {
		fmt.Fprintln(cmd.ErrOrStderr(), "publication not found, nothing written")
	}
	return nil
}
