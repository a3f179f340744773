package reconcile

import (
	"context"

	"asset-cache/core/assets"
)

// ReconcileWithPlan reconciles spec and plans actions without executing them.
func (e *Engine) ReconcileWithPlan(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, error) {
	results, err := e.ReconcileAll(ctx, spec)
	if err != nil {
		return nil, err
	}

	summary, actions := buildPlanFromResults(results, opts)
	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions of plan through mutator and returns how many ran.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func (e *Engine) ApplyPlan(ctx context.Context, spec *Spec, mutator Mutator, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	defer e.InvalidateCache(spec)

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		switch action.Type {
		case ActionDeleteDB:
			if mutator.RemoveAssetInfo(action.Key) {
				executed++
			}
		case ActionTrackDB:
			mutator.AddAsset(action.Key, assets.Meta{Type: action.Kind})
			executed++
		}
	}
	return executed, nil
}

// ReconcileAndApply plans and optionally applies actions.
func (e *Engine) ReconcileAndApply(ctx context.Context, spec *Spec, mutator Mutator, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := e.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}
	executed, err := e.ApplyPlan(ctx, spec, mutator, plan, opts)
	return plan, executed, err
}

func buildPlanFromResults(results []ReconcileResult, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)
	for _, result := range results {
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		switch {
		case result.DBPresent && !result.FilePresent:
			summary.MissingFile++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionDeleteDB,
					Key:    result.Key,
					Reason: "file missing",
				})
				summary.PurgeActions++
			}
		case !result.DBPresent && result.FilePresent:
			summary.MissingDB++
			// files no kind can load stay untracked
			if opts.DoTrack && result.Type != "" {
				actions = append(actions, Action{
					Type:   ActionTrackDB,
					Key:    result.Key,
					Kind:   result.Type,
					Reason: "not in database",
				})
				summary.TrackActions++
			}
		}
	}
	return summary, actions
}
