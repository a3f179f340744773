package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// ReconcileResult is the reconciliation output for a single asset location.
type ReconcileResult struct {
	// Key is the asset location.
	Key string `json:"key"`

	// UID is the identity recorded in the database, if any.
	UID uuid.UUID `json:"uid" swaggertype:"string" format:"uuid"`

	// Type is the recorded kind, or the routed kind for untracked files.
	Type string `json:"type,omitempty"`

	// DBPresent indicates whether the location has a database row.
	DBPresent bool `json:"db_present"`

	// FilePresent indicates whether the source or its compiled artifact exists.
	FilePresent bool `json:"file_present"`

	// Compiled indicates the file is present only as a compiled artifact.
	Compiled bool `json:"compiled"`

	// Mismatch describes disagreements between the row and the file,
	// e.g. "type: db=text file=image".
	Mismatch []string `json:"mismatch"`
}

// Spec selects what a reconciliation covers.
type Spec struct {
	// Protocol is the mount to reconcile.
	Protocol string

	// CacheTTL is the lifetime of cached indices. Zero disables caching.
	CacheTTL time.Duration
}

// CacheKey identifies the cached indices of this spec.
func (s *Spec) CacheKey() string {
	return s.Protocol
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteDB removes a row whose file is gone.
	ActionDeleteDB ActionType = "delete_db"
	// ActionTrackDB adds a row for an untracked file.
	ActionTrackDB ActionType = "track_db"
)

// Action represents a planned mutation operation.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Kind   string     `json:"kind,omitempty"`
	Reason string     `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	Results []ReconcileResult `json:"results"`
	Actions []Action          `json:"actions"`
	Summary PlanSummary       `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of distinct locations.
	TotalItems int `json:"total_items"`

	// MissingFile counts rows whose file is gone.
	MissingFile int `json:"missing_file"`

	// MissingDB counts files without a row.
	MissingDB int `json:"missing_db"`

	// Mismatches counts locations with disagreements.
	Mismatches int `json:"mismatches"`

	PurgeActions int `json:"purge_actions"`
	TrackActions int `json:"track_actions"`
}

// ReconcileOptions controls purge and track behavior.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge plans removal of rows whose file is gone.
	DoPurge bool

	// DoTrack plans rows for untracked files.
	DoTrack bool

	// Confirmed indicates the caller confirmed the mutations.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
