// Package reconcile compares the asset database of a protocol against the
// files mounted under it.
//
// Each location found in either source yields a ReconcileResult with its
// presence flags. A row whose file is gone is stale; a file without a row is
// untracked. Compiled artifacts count as their source. The database pack
// itself is ignored.
//
// Indices are built concurrently and cached per protocol for Spec.CacheTTL;
// concurrent builds of the same protocol are collapsed.
//
// # Usage Example
//
//	engine := reconcile.New(manager, resolver, router.KindFor)
//	spec := &reconcile.Spec{Protocol: "app", CacheTTL: time.Minute}
//
//	opts := reconcile.ReconcileOptions{DoPurge: true, Confirmed: true}
//	plan, executed, err := engine.ReconcileAndApply(ctx, spec, manager, opts)
package reconcile
