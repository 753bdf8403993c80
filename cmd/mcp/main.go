package main

import (
	"fmt"
	"os"

	"github.com/labops/labctl/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"labctl-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterLabTools(s, cfg.StateFile, cfg.ProjectPrefix)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
