// Package assets implements the asynchronous, type-indexed asset cache.
//
// A Manager owns one Storage per asset kind and one Database per protocol.
// Loading a key returns a Handle immediately; the value is produced by a task
// on the job pool and observed through the handle once ready.
//
// # Keys
//
// Keys have the form "<protocol>:/<path>" and are normalized on entry:
// backslashes become slashes, repeated slashes collapse and the protocol is
// lower-cased. Group queries match prefixes case-insensitively.
//
// # Deduplication
//
// Each storage serializes its map behind one mutex, so the check-then-schedule
// sequence of Load is atomic and at most one task exists per key. LoadReload
// stops the outgoing task before scheduling a new one on the same handle.
//
// # Identity
//
// Every loaded key is registered in the database of its protocol. The UID of
// a location is stable across calls and follows renames. UIDPolicy selects
// random, deterministic or legacy derivation for new locations.
//
// # Usage
//
//	mgr := assets.NewManager(pool, assets.Options{Logger: logger, Store: store})
//	assets.AddStorage[Text](mgr, "text", assets.NewFileLoader("text", pool, resolver, decodeText, logger))
//
//	h := assets.Load[Text](mgr, "app:/data/readme.txt", assets.LoadStandard)
//	if h.IsReady() {
//	    fmt.Println(h.Get(false).Body)
//	}
//	text, err := h.Wait(ctx)
package assets
