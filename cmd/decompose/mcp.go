package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/decompose/pkg/adapters/mcp"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP Server so agents can call it as tools
(decompose_task, disambiguate_story, score_answer).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		modeName, _ := cmd.Flags().GetString("mode")
		delimiter, _ := cmd.Flags().GetString("delimiter")
		m, err := mode.Parse(modeName, delimiter)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Logs go to stderr so they don't corrupt JSON-RPC on stdout.
		stack, err := setup(ctx)
		if err != nil {
			return err
		}
		defer stack.Close()

		engine, err := stack.Engine(m)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(engine, stack.Logger)

		switch transport {
		case "stdio":
			stack.Logger.Info("Starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			return srv.ServeSSE(ctx, port)
		}
		return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport type (stdio, sse)")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for SSE server")
	mcpCmd.Flags().String("mode", string(mode.NameGeneric), "Mode (hitom, fantom, generic)")
	mcpCmd.Flags().String("delimiter", ".", "Sentence delimiter for generic mode")
}
