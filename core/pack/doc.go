// Package pack persists asset databases.
//
// Each protocol owns one database. It is serialized as a TOML document:
//
//	version = 1
//
//	[[assets]]
//	uid = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
//	location = "app:/data/textures/hero.png"
//	type = "image"
//
// # Backends
//
//   - FileStore: "<protocol>:/assets.pack" through the virtual filesystem.
//   - BucketStore: "<prefix><protocol>/assets.pack" in an object storage bucket.
//   - SQLStore: rows of the asset_database table, replaced per protocol in a transaction.
//
// # Usage
//
//	store, err := pack.Open(cfg.Pack, pack.Deps{Files: resolver})
//	mgr := assets.NewManager(pool, assets.Options{Store: store})
//	err = mgr.LoadDatabase(ctx, "app")
package pack
