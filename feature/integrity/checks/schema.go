package checks

import (
	"fmt"

	"asset-cache/core/database"
	"asset-cache/core/pack"

	"gorm.io/gorm"
)

// SchemaReport is the result of inspecting the asset table.
type SchemaReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema compares the asset table with the columns the sql backend needs.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingColumns(db, pack.SQLTable, pack.SQLColumns)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{Table: pack.SQLTable, MissingColumns: []string{}, Status: "ok"}
	if len(missing) > 0 {
		report.MissingColumns = missing
		report.Status = "error"
	}
	return report, nil
}
