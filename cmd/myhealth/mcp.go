// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Serves the local store over stdio until the context is canceled.
package main

import (
	"github.com/harperreed/myhealth/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates over stdin/stdout and acts as the configured user.
Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "myhealth": {
        "command": "myhealth",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  set_weight, list_weight, delete_weight
  get_food, find_food, set_food, delete_food
  list_sports, set_sport, delete_sport
  add_sport_activity, sport_activity_report
  get_user_settings, set_user_settings, list_bundles

AVAILABLE RESOURCES:

  myhealth://food       Food catalog
  myhealth://sports     Sport catalog
  myhealth://summary    Calorie limit, weight trend and recent activity`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, userID(), logger)
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
