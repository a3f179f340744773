// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration. The connection backs the sql pack backend,
// which keeps asset databases in the asset_database table.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read SHOW COLUMNS output so the service
// can report an unmigrated asset_database table before it is used.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "asset_database", []string{"protocol", "uid"})
package database
