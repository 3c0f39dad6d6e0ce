// ABOUTME: Root Cobra command for the myhealth CLI.
// ABOUTME: Loads config, opens the SQLite store in PersistentPreRunE and closes it afterwards.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/myhealth/internal/config"
	"github.com/harperreed/myhealth/internal/logging"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	store  storage.Storage
	logger *zap.Logger
	loc    = time.Local

	dataDirFlag string
	userFlag    int64
)

var rootCmd = &cobra.Command{
	Use:   "myhealth",
	Short: "Personal food, weight and exercise log",
	Long: `myhealth keeps a local log of what you eat, what you weigh and how you train.

WHAT IT TRACKS:

  Food        a catalog of foods with calories and macros per 100g
  Bundles     your meal templates built from foods and other bundles
  Weight      body weight measurements over time
  Sports      a catalog of exercises and the sets you did
  Settings    your daily calorie limit

QUICK START:

  $ myhealth weight add 82.5
  $ myhealth food set oats "Rolled oats" --cal 370 --prot 13 --fat 7 --carb 60
  $ myhealth sport set pushups "Push-ups"
  $ myhealth activity add pushups 20 15 12
  $ myhealth activity report

BACKUPS:

  $ myhealth backup export -o backup.json     # write weight, food and settings
  $ myhealth backup restore backup.json       # load them back
  $ myhealth sync push                        # upload a snapshot to Charm Cloud

MCP INTEGRATION:

  Run 'myhealth mcp' to serve your log to an MCP-compatible assistant.

DATA STORAGE:

  Data lives in a single SQLite file, by default ~/.local/share/myhealth/myhealth.db.
  Configure it in ~/.config/myhealth/config.json or with MYHEALTH_DATA_DIR.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func setup() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if userFlag > 0 {
		c.UserID = userFlag
	}

	l, err := logging.New(c.GetLogLevel())
	if err != nil {
		return err
	}

	location, err := c.GetLocation()
	if err != nil {
		return err
	}

	s, err := c.OpenStorage(l)
	if err != nil {
		return err
	}

	cfg, logger, loc, store = c, l, location, s
	logger.Debug("storage opened", zap.String("path", c.GetDBPath()), zap.Int64("user_id", c.GetUserID()))
	return nil
}

// teardown closes the store. It is safe to call more than once.
func teardown() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// userID is the user every per-user command acts as.
func userID() int64 {
	return cfg.GetUserID()
}

// Execute runs the command tree with a context canceled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

// describeError renders a failure for the terminal by its storage kind.
func describeError(err error) string {
	switch {
	case storage.IsNothingFound(err):
		return "Nothing found."
	case storage.IsRejectedInput(err):
		return fmt.Sprintf("rejected input: %v", err)
	case storage.IsStorageError(storage.KindSportIsUsed, err):
		return "cannot delete, still referenced by recorded activities"
	case storage.IsStorageError(storage.KindFoodIsUsed, err):
		return "cannot delete, still referenced by journal entries"
	}

	var se *storage.Error
	if errors.As(err, &se) {
		if logger != nil {
			logger.Error("storage failure", zap.Error(err))
		}
		return fmt.Sprintf("internal error while trying to %s (set %s=debug for details)", se.Op, config.EnvLogLevel)
	}
	return fmt.Sprintf("error: %v", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding myhealth.db (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&userFlag, "user", 0, "user ID to act as (overrides config)")
}
