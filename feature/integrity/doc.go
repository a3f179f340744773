// Package integrity provides health checks for the infrastructure the asset cache runs on.
//
// Unlike the reconcile engine, which compares database rows with files, this package
// validates the structural requirements every load depends on.
//
// # Checks Provided
//
//   - Mounts: every mounted protocol points to an existing directory.
//   - Store: the persisted database of each protocol can be read from the configured backend.
//   - Bucket: the object storage bucket exists (bucket backend only).
//   - Schema: the asset table has the columns the sql backend writes (sql backend only).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/mounts : Runs the mount check (supports ?fix=true).
//   - GET /integrity/store : Runs the store check.
//   - GET /integrity/bucket : Runs the bucket check.
//   - GET /integrity/schema : Runs the schema check.
package integrity
