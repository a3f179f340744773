package assets

import (
	"sort"
	"strings"

	"asset-cache/core/utils"

	"github.com/google/uuid"
)

// Meta describes an asset being registered.
// A nil UID asks the manager to derive one.
type Meta struct {
	UID  uuid.UUID
	Type string
}

// Row is one entry of an asset database.
type Row struct {
	UID      uuid.UUID `json:"uid" swaggertype:"string" format:"uuid"`
	Location string    `json:"location"`
	Type     string    `json:"type"`
}

// Database maps asset identities to locations for a single protocol.
// It is not safe for concurrent use; the Manager guards its databases.
type Database struct {
	rows       map[uuid.UUID]Row
	byLocation map[string]uuid.UUID
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{
		rows:       make(map[uuid.UUID]Row),
		byLocation: make(map[string]uuid.UUID),
	}
}

// NewDatabaseFromRows builds a database from persisted rows. Later duplicates win.
func NewDatabaseFromRows(rows []Row) *Database {
	d := NewDatabase()
	for _, r := range rows {
		if r.UID == uuid.Nil || r.Location == "" {
			continue
		}
		d.put(r)
	}
	return d
}

// AddAsset registers location and returns its identity.
// A location that is already registered keeps its identity.
// A known identity registered for a new location is moved there.
func (d *Database) AddAsset(location string, meta Meta) uuid.UUID {
	if uid, ok := d.byLocation[location]; ok {
		if meta.Type != "" && d.rows[uid].Type == "" {
			r := d.rows[uid]
			r.Type = meta.Type
			d.rows[uid] = r
		}
		return uid
	}

	uid := meta.UID
	if uid == uuid.Nil {
		uid = uuid.New()
	}
	d.put(Row{UID: uid, Location: location, Type: meta.Type})
	return uid
}

func (d *Database) put(r Row) {
	if old, ok := d.rows[r.UID]; ok {
		delete(d.byLocation, old.Location)
	}
	if uid, ok := d.byLocation[r.Location]; ok {
		delete(d.rows, uid)
	}
	d.rows[r.UID] = r
	d.byLocation[r.Location] = r.UID
}

// GetMetadata returns the row registered for uid.
func (d *Database) GetMetadata(uid uuid.UUID) (Row, bool) {
	r, ok := d.rows[uid]
	return r, ok
}

// FindByLocation returns the row registered for location.
func (d *Database) FindByLocation(location string) (Row, bool) {
	uid, ok := d.byLocation[location]
	if !ok {
		return Row{}, false
	}
	return d.rows[uid], true
}

// RemoveAsset drops the row of location.
func (d *Database) RemoveAsset(location string) bool {
	uid, ok := d.byLocation[location]
	if !ok {
		return false
	}
	delete(d.byLocation, location)
	delete(d.rows, uid)
	return true
}

// RenameAsset moves the row of oldLocation, and every row below it when it is a
// directory, to newLocation. It returns the number of rows moved.
func (d *Database) RenameAsset(oldLocation, newLocation string) int {
	if oldLocation == newLocation {
		return 0
	}
	dir := strings.TrimSuffix(oldLocation, "/") + "/"

	var moved []Row
	for _, r := range d.rows {
		switch {
		case r.Location == oldLocation:
			r.Location = newLocation
		case strings.HasPrefix(r.Location, dir):
			r.Location = strings.TrimSuffix(newLocation, "/") + "/" + strings.TrimPrefix(r.Location, dir)
		default:
			continue
		}
		moved = append(moved, r)
	}
	for _, r := range moved {
		d.put(r)
	}
	return len(moved)
}

// RemoveGroup drops every row whose location starts with prefix.
func (d *Database) RemoveGroup(prefix string) int {
	removed := 0
	for uid, r := range d.rows {
		if utils.HasPrefixFold(r.Location, prefix) {
			delete(d.rows, uid)
			delete(d.byLocation, r.Location)
			removed++
		}
	}
	return removed
}

// Clear drops every row.
func (d *Database) Clear() {
	clear(d.rows)
	clear(d.byLocation)
}

// Len returns the number of rows.
func (d *Database) Len() int {
	return len(d.rows)
}

// Rows returns every row sorted by location.
func (d *Database) Rows() []Row {
	out := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

func (d *Database) clone() *Database {
	return NewDatabaseFromRows(d.Rows())
}
