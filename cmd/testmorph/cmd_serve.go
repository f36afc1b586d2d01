package main

import (
	"context"

	"github.com/spf13/cobra"

	"testmorph/internal/logging"
	mcpserver "testmorph/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing detect_format and
convert_document tools. The server monitors for parent process death and
self-terminates when the connected editor or agent goes away.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	detector, err := buildDetector()
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(detector)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting testmorph MCP server over stdio")
	return srv.Run(ctx)
}
