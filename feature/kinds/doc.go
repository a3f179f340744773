// Package kinds provides the built-in asset kinds and their decoders.
//
// Text, binary, image, bitmap font and material assets are registered on a
// manager with Register. The returned Router maps a key to its kind by file
// extension, which is how the watcher and the catalog route untyped keys.
//
//	router := kinds.Register(manager, pool, resolver, logger)
//	kind, ok := router.KindFor("app:/data/ui/logo.png") // "image", true
package kinds
