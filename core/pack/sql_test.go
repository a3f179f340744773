package pack

import (
	"context"
	"testing"

	"asset-cache/core/assets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestSQLStore_Load(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewSQLStore(db)
	uid := uuid.New()

	rows := sqlmock.NewRows([]string{"protocol", "uid", "location", "type"}).
		AddRow("app", uid.String(), "app:/data/a.png", "image")
	sqlMock.ExpectQuery("SELECT \\* FROM `asset_database` WHERE protocol = \\? ORDER BY location").
		WithArgs("app").
		WillReturnRows(rows)

	got, err := store.Load(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, []assets.Row{{UID: uid, Location: "app:/data/a.png", Type: "image"}}, got)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSQLStore_LoadInvalidUID(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewSQLStore(db)

	rows := sqlmock.NewRows([]string{"protocol", "uid", "location", "type"}).
		AddRow("app", "broken", "app:/data/a.png", "image")
	sqlMock.ExpectQuery("SELECT \\* FROM `asset_database`").WillReturnRows(rows)

	_, err := store.Load(context.Background(), "app")
	assert.Error(t, err)
}

func TestSQLStore_Save(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewSQLStore(db)

	rows := []assets.Row{
		{UID: uuid.New(), Location: "app:/data/a.png", Type: "image"},
		{UID: uuid.New(), Location: "app:/data/b.txt", Type: "text"},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `asset_database` WHERE protocol = \\?").
		WithArgs("app").
		WillReturnResult(sqlmock.NewResult(0, 3))
	sqlMock.ExpectExec("INSERT INTO `asset_database`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	sqlMock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), "app", rows))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSQLStore_SaveRollsBack(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewSQLStore(db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `asset_database`").WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	err := store.Save(context.Background(), "app", nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSQLStore_Delete(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewSQLStore(db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `asset_database` WHERE protocol = \\?").
		WithArgs("app").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	require.NoError(t, store.Delete(context.Background(), "app"))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestSQLStore_Verify(t *testing.T) {
	columns := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}

	t.Run("Migrated", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `asset_database`").WillReturnRows(sqlmock.NewRows(columns).
			AddRow("protocol", "varchar(64)", "NO", "PRI", nil, "").
			AddRow("uid", "varchar(36)", "NO", "PRI", nil, "").
			AddRow("location", "varchar(512)", "YES", "MUL", nil, "").
			AddRow("type", "varchar(64)", "YES", "", nil, ""))

		assert.NoError(t, NewSQLStore(db).Verify(context.Background()))
	})

	t.Run("MissingColumns", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `asset_database`").WillReturnRows(sqlmock.NewRows(columns).
			AddRow("protocol", "varchar(64)", "NO", "PRI", nil, ""))

		err := NewSQLStore(db).Verify(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "uid, location, type")
	})
}
