package checks

import (
	"context"
	"fmt"

	"asset-cache/core/assets"
	"asset-cache/core/storage"
)

// StoreReport is the result of reading every protocol from the database store.
type StoreReport struct {
	Backend string         `json:"backend"`
	Rows    map[string]int `json:"rows"`
	Errors  []string       `json:"errors"`
}

// CheckStore loads the persisted database of each protocol and counts its rows.
// A failing protocol is reported without stopping the others.
func CheckStore(ctx context.Context, store assets.DatabaseStore, backend string, protocols []string) *StoreReport {
	report := &StoreReport{
		Backend: backend,
		Rows:    make(map[string]int, len(protocols)),
		Errors:  []string{},
	}
	for _, protocol := range protocols {
		rows, err := store.Load(ctx, protocol)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", protocol, err))
			continue
		}
		report.Rows[protocol] = len(rows)
	}
	return report
}

// CheckBucket fails when bucket does not exist.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}
