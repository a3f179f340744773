package cmd

import (
	"context"
	"fmt"
	"time"

	"asset-cache/core/assets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loadKind    string
	loadTimeout time.Duration
	loadSave    bool
)

// loadCmd loads assets and prints their entries once every load settled.
var loadCmd = &cobra.Command{
	Use:   "load <key>...",
	Short: "Load assets and print their state",
	Long: `Loads every key, waits for the loads to settle and prints one JSON entry per key.

The kind is routed from the file extension unless --kind is given.

Examples:
  load app:/data/ui/logo.png
  load --kind text app:/data/shaders/lit.frag app:/data/shaders/lit.vert
  load --save app:/data/materials/brick.mat`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadKind, "kind", "", "Asset kind for every key (default: routed by extension)")
	loadCmd.Flags().DurationVar(&loadTimeout, "timeout", 30*time.Second, "Maximum time to wait for all loads")
	loadCmd.Flags().BoolVar(&loadSave, "save", false, "Persist the databases after loading")
	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	// schedule everything before waiting on anything
	type pending struct {
		key     string
		binding assets.Binding
	}
	var loads []pending
	for _, key := range args {
		kind := loadKind
		if kind == "" {
			routed, ok := rt.router.KindFor(key)
			if !ok {
				return fmt.Errorf("no asset kind handles %s, use --kind", key)
			}
			kind = routed
		}
		b, ok := rt.manager.Binding(kind)
		if !ok {
			return fmt.Errorf("%w: %s", assets.ErrUnknownKind, kind)
		}
		b.Load(key, assets.LoadStandard)
		loads = append(loads, pending{key: key, binding: b})
	}

	entries := make([]assets.Entry, 0, len(loads))
	failed := 0
	for _, p := range loads {
		e, err := p.binding.Wait(ctx, p.key)
		if err != nil {
			failed++
			rt.logger.Warn("Load failed", zap.String("key", p.key), zap.Error(err))
			if e.Error == "" {
				e.Error = err.Error()
			}
		}
		entries = append(entries, e)
	}

	if err := printJSON(entries); err != nil {
		return err
	}

	if loadSave {
		if err := rt.manager.SaveAll(context.Background()); err != nil {
			return fmt.Errorf("failed to save databases: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d loads failed", failed, len(loads))
	}
	return nil
}
