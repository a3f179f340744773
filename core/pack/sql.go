package pack

import (
	"context"
	"fmt"
	"strings"

	"asset-cache/core/assets"
	"asset-cache/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLTable is the table SQLStore keeps its rows in.
const SQLTable = "asset_database"

// SQLColumns are the columns SQLStore reads and writes.
var SQLColumns = []string{"protocol", "uid", "location", "type"}

// assetRow is the table layout of SQLStore.
type assetRow struct {
	Protocol string `gorm:"column:protocol;primaryKey;size:64"`
	UID      string `gorm:"column:uid;primaryKey;size:36"`
	Location string `gorm:"column:location;size:512;index"`
	Type     string `gorm:"column:type;size:64"`
}

func (assetRow) TableName() string {
	return SQLTable
}

// SQLStore keeps every database in one table, keyed by protocol and uid.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a store on db.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates or updates the table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&assetRow{}); err != nil {
		return fmt.Errorf("failed to migrate asset_database: %w", err)
	}
	return nil
}

// Verify fails when the table lacks a column, which means Migrate has not run.
func (s *SQLStore) Verify(ctx context.Context) error {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), SQLTable, SQLColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("asset_database is missing columns %s, run the db migrate command", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads the rows of protocol ordered by location.
func (s *SQLStore) Load(ctx context.Context, protocol string) ([]assets.Row, error) {
	var records []assetRow
	if err := s.db.WithContext(ctx).Where("protocol = ?", protocol).Order("location").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query asset_database: %w", err)
	}

	rows := make([]assets.Row, 0, len(records))
	for _, rec := range records {
		uid, err := uuid.Parse(rec.UID)
		if err != nil {
			return nil, fmt.Errorf("invalid uid %q for %s: %w", rec.UID, rec.Location, err)
		}
		rows = append(rows, assets.Row{UID: uid, Location: rec.Location, Type: rec.Type})
	}
	return rows, nil
}

// Save replaces the rows of protocol in a single transaction.
func (s *SQLStore) Save(ctx context.Context, protocol string, rows []assets.Row) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("protocol = ?", protocol).Delete(&assetRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear asset_database: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		records := make([]assetRow, 0, len(rows))
		for _, r := range rows {
			records = append(records, assetRow{
				Protocol: protocol,
				UID:      r.UID.String(),
				Location: r.Location,
				Type:     r.Type,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to insert asset_database rows: %w", err)
		}
		return nil
	})
}

// Delete removes every row of protocol.
func (s *SQLStore) Delete(ctx context.Context, protocol string) error {
	if err := s.db.WithContext(ctx).Where("protocol = ?", protocol).Delete(&assetRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete asset_database rows: %w", err)
	}
	return nil
}
