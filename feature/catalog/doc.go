// Package catalog exposes the asset manager over HTTP.
//
// Routes:
//
//	GET    /assets                  kinds with their entry counts
//	GET    /assets/:kind?group=     entries of a kind
//	GET    /assets/:kind/entry?key= one entry
//	POST   /assets/:kind/load?key=&reload=&wait=
//	POST   /assets/:kind/rename     {"from": "...", "to": "..."}
//	DELETE /assets/:kind?key=|group=
//	GET    /database                protocols with a database
//	GET    /database/:protocol      rows of a protocol
//	GET    /database/uid/:uid       row of a UID
//	POST   /database/:protocol/save persist a protocol
//	GET    /reconcile/:protocol?purge=&track=
//	GET    /jobs/stats              job pool state
//
// Errors are returned as {"error": "..."}; unknown kinds and keys map to 404.
package catalog
