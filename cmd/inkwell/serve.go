package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/inkwell/internal/domain/editor"
	"github.com/rpggio/inkwell/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long:  `Run the MCP server over stdio. Stdout carries the protocol, so all logging goes to stderr.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout belongs to the protocol in stdio mode.
		a, err := openApp(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		ed := editor.New(a.docs, a.logger,
			editor.WithQuiet(a.cfg.Autosave.Quiet()),
			editor.WithSettle(a.cfg.Autosave.Settle()),
		)

		server := mcp.NewServer(mcp.Config{
			Documents: a.docs,
			Editor:    ed,
			Logger:    a.logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a.logger.Info("starting stdio server",
			"db", a.cfg.DB.Path,
			"editing_session", ed.SessionID())

		if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
