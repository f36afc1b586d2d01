package mcp

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the connected editor exited or restarted),
// it calls cancelFn so the stdio server shuts down instead of lingering
// as a zombie.
//
// This must NOT read from stdin — the SDK's StdioTransport owns stdin
// exclusively; stealing bytes here would corrupt the JSON-RPC stream.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					slog.Warn("parent process died, shutting down MCP server", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
