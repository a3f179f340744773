// Package watcher keeps the asset cache in sync with the files under every
// mounted protocol.
//
// Raw fsnotify events are collected for Config.DebounceMillis and folded into
// one change per file; a rename followed by a create becomes a single rename.
// Changes are applied through the kind bindings of the manager:
//
//	removed           Unload
//	renamed           Rename (entry and database rows)
//	created/modified  Load with LoadReload, LoadStandard for the startup scan
//
// Compiled artifacts under ":/compiled" are routed to their ":/data" source.
// An artifact whose source no longer exists is deleted.
package watcher
