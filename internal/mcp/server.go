// ABOUTME: MCP server setup for the myhealth store.
// ABOUTME: Wraps MCP server with storage access scoped to one user.
package mcp

import (
	"context"

	"github.com/harperreed/myhealth/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Storage
	userID    int64
	logger    *zap.Logger
}

// NewServer creates a new MCP server acting as userID on the given storage.
func NewServer(store storage.Storage, userID int64, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "myhealth",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		userID:    userID,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.Int64("user_id", s.userID))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
