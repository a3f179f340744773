package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"asset-cache/core/assets"
	"asset-cache/core/config"
	"asset-cache/core/database"
	"asset-cache/core/pack"
	"asset-cache/core/reconcile"
	"asset-cache/core/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addKind    string
	purgeRows  bool
	trackFiles bool
	dryRunDB   bool
	yesConfirm bool
)

// dbCmd is the parent command for asset database operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and edit the asset databases",
	Long: `Inspect and edit the per-protocol asset databases.
Every mutation is persisted through the configured pack backend.`,
}

var dbListCmd = &cobra.Command{
	Use:   "list <protocol>",
	Short: "Print the rows of a protocol as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		rows := rt.manager.DatabaseRows(args[0])
		if rows == nil {
			rows = []assets.Row{}
		}
		return printJSON(rows)
	}),
}

var dbAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Register a location and print its UID",
	Args:  cobra.ExactArgs(1),
	RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		key := utils.NormalizeKey(args[0])
		kind := addKind
		if kind == "" {
			kind, _ = rt.router.KindFor(key)
		}
		uid := rt.manager.AddAsset(key, assets.Meta{Type: kind})
		if err := rt.manager.SaveDatabase(ctx, protocolOf(key)); err != nil {
			return err
		}
		fmt.Println(uid)
		return nil
	}),
}

var dbRenameCmd = &cobra.Command{
	Use:   "rename <key> <new-key>",
	Short: "Move a location, or every location under a directory",
	Args:  cobra.ExactArgs(2),
	RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		n := rt.manager.RenameAssetInfo(args[0], args[1])
		if n == 0 {
			return fmt.Errorf("no rows under %s", args[0])
		}
		for _, protocol := range rt.manager.Protocols() {
			if err := rt.manager.SaveDatabase(ctx, protocol); err != nil {
				return err
			}
		}
		rt.logger.Info("Rows renamed", zap.Int("count", n))
		return nil
	}),
}

var dbRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Forget a location",
	Args:  cobra.ExactArgs(1),
	RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if !rt.manager.RemoveAssetInfo(args[0]) {
			return fmt.Errorf("no row for %s", args[0])
		}
		return rt.manager.SaveDatabase(ctx, protocolOf(args[0]))
	}),
}

var dbReconcileCmd = &cobra.Command{
	Use:   "reconcile <protocol>",
	Short: "Compare a database against its files (report + optionally purge/track)",
	Long: `Reports rows whose file is gone and files without a row.

Examples:
  # Report only
  db reconcile app

  # Drop stale rows, with interactive confirmation
  db reconcile app --purge

  # Drop stale rows and register untracked files without prompting
  db reconcile app --purge --track --yes`,
	Args: cobra.ExactArgs(1),
	RunE: withRuntime(runReconcile),
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the asset_database table of the sql backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := pack.NewSQLStore(db).Migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("asset_database migrated")
		return nil
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop <protocol>",
	Short: "Delete the persisted database of a protocol",
	Args:  cobra.ExactArgs(1),
	RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if !confirmDestructiveAction() {
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		if err := rt.store.Delete(ctx, args[0]); err != nil {
			return err
		}
		rt.logger.Info("Database dropped", zap.String("protocol", args[0]))
		return nil
	}),
}

func init() {
	dbAddCmd.Flags().StringVar(&addKind, "kind", "", "Asset kind (default: routed by extension)")

	dbReconcileCmd.Flags().BoolVar(&purgeRows, "purge", false, "Remove rows whose file is gone")
	dbReconcileCmd.Flags().BoolVar(&trackFiles, "track", false, "Add rows for untracked files")
	dbReconcileCmd.Flags().BoolVar(&dryRunDB, "dry-run", false, "Force dry-run (no mutations even with --yes)")

	dbCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	dbCmd.AddCommand(dbListCmd, dbAddCmd, dbRenameCmd, dbRemoveCmd, dbReconcileCmd, dbMigrateCmd, dbDropCmd)
	RootCmd.AddCommand(dbCmd)
}

// withRuntime runs fn on a runtime that is closed afterwards.
func withRuntime(fn func(ctx context.Context, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rt, err := loadRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()
		return fn(ctx, rt, args)
	}
}

func runReconcile(ctx context.Context, rt *runtime, args []string) error {
	protocol := strings.ToLower(args[0])
	engine := reconcile.New(rt.manager, rt.resolver, rt.router.KindFor)
	spec := &reconcile.Spec{Protocol: protocol}

	opts := reconcile.ReconcileOptions{
		DoPurge: purgeRows,
		DoTrack: trackFiles,
		DryRun:  dryRunDB,
	}

	rt.logger.Info("Planning reconciliation...", zap.String("protocol", protocol))
	plan, err := engine.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(rt.logger, plan)

	if !purgeRows && !trackFiles {
		rt.logger.Info("No actions requested. Use --purge to drop stale rows or --track to register untracked files.")
		return nil
	}
	if dryRunDB {
		rt.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		rt.logger.Info("No actions required based on current flags.")
		return nil
	}
	if !confirmDestructiveAction() {
		rt.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts.Confirmed = true
	rt.logger.Info("Applying actions...")
	executed, err := engine.ApplyPlan(ctx, spec, rt.manager, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	if err := rt.manager.SaveDatabase(ctx, protocol); err != nil {
		return err
	}
	rt.logger.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_file", s.MissingFile),
		zap.Int("missing_db", s.MissingDB),
		zap.Int("mismatches", s.Mismatches),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("track_actions", s.TrackActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func protocolOf(key string) string {
	protocol, _, _ := utils.SplitKey(utils.NormalizeKey(key))
	return protocol
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
