package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mistakes/pkg/store"
)

// Runner coordinates MCP server startup. The server speaks stdio only.
type Runner struct {
	Persistence store.Persistence
	Name        string
	Version     string

	// In and Out default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// Do serves MCP on stdin/stdout until the client disconnects.
func (r Runner) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("mcp runner requires persistence")
	}
	in, out := r.In, r.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	stdio := server.NewStdioServer(r.newServer())
	return stdio.Listen(ctx, in, out)
}

func (r Runner) newServer() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "mistakes"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Record mistakes, manage flags and read the mistake counts via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Persistence)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}
