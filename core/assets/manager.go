package assets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"asset-cache/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DatabaseStore persists the database of a protocol.
type DatabaseStore interface {
	Load(ctx context.Context, protocol string) ([]Row, error)
	Save(ctx context.Context, protocol string, rows []Row) error
}

// Options configures a Manager.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Store persists databases. Persistence calls fail without one.
	Store DatabaseStore
	// UIDPolicy selects identity derivation for new locations.
	UIDPolicy UIDPolicy
	// Parent is consulted on misses and receives forwarded renames and unloads.
	Parent *Manager
}

// Manager owns one storage per asset kind and one database per protocol.
type Manager struct {
	executor Executor
	logger   *zap.Logger
	store    DatabaseStore
	uids     UIDGenerator
	parent   *Manager

	storagesMu sync.RWMutex
	storages   map[any]any
	bindings   map[string]Binding

	dbMu      sync.RWMutex
	databases map[string]*Database
}

// NewManager creates a manager scheduling through executor.
func NewManager(executor Executor, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.UIDPolicy
	if policy == "" {
		policy = UIDRandom
	}
	return &Manager{
		executor:  executor,
		logger:    logger,
		store:     opts.Store,
		uids:      NewUIDGenerator(policy),
		parent:    opts.Parent,
		storages:  make(map[any]any),
		bindings:  make(map[string]Binding),
		databases: make(map[string]*Database),
	}
}

// Parent returns the parent manager, if any.
func (m *Manager) Parent() *Manager {
	return m.parent
}

// tagOf identifies the storage of T without reflection.
func tagOf[T any]() any {
	return (*T)(nil)
}

func defaultKind[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}

// AddStorage registers the storage of T under kind with its loader.
// Registering a type twice replaces the loader and keeps the cached entries.
func AddStorage[T any](m *Manager, kind string, loader Loader[T]) *Storage[T] {
	return registerStorage(m, kind, loader, true)
}

// GetStorage returns the storage of T, creating a loader-less one on first use.
func GetStorage[T any](m *Manager) *Storage[T] {
	m.storagesMu.RLock()
	s, ok := m.storages[tagOf[T]()].(*Storage[T])
	m.storagesMu.RUnlock()
	if ok {
		return s
	}
	return registerStorage[T](m, defaultKind[T](), nil, false)
}

func registerStorage[T any](m *Manager, kind string, loader Loader[T], replace bool) *Storage[T] {
	m.storagesMu.Lock()
	defer m.storagesMu.Unlock()

	if existing, ok := m.storages[tagOf[T]()].(*Storage[T]); ok {
		if replace {
			existing.mu.Lock()
			existing.loader = loader
			existing.mu.Unlock()
		}
		return existing
	}
	if _, taken := m.bindings[kind]; taken {
		m.logger.Warn("Asset kind registered twice, replacing binding", zap.String("kind", kind))
	}

	s := newStorage(kind, loader, m.executor, m.logger)
	m.storages[tagOf[T]()] = s
	m.bindings[kind] = &binding[T]{m: m, s: s}
	return s
}

// Load returns the handle of key, scheduling a load unless one is cached.
// LoadReload stops the current task and schedules a new one on the same handle.
// The call never waits for the load.
func Load[T any](m *Manager, key string, flags LoadFlags) Handle[T] {
	key = utils.NormalizeKey(key)
	s := GetStorage[T](m)
	h, err := s.load(key, flags, func() uuid.UUID {
		return m.AddAsset(key, Meta{Type: s.kind})
	})
	if errors.Is(err, ErrUnknownProtocol) {
		m.forgetUnresolvable(key)
	}
	return h
}

// LoadFromInstance caches value under key unless the key is already loaded.
func LoadFromInstance[T any](m *Manager, key string, value *T) Handle[T] {
	key = utils.NormalizeKey(key)
	s := GetStorage[T](m)
	return s.loadFromInstance(key, value, func() uuid.UUID {
		return m.AddAsset(key, Meta{Type: s.kind})
	})
}

// LoadByUID loads the asset registered under uid in any database,
// falling back to the parent. The sentinel is returned when uid is unknown.
func LoadByUID[T any](m *Manager, uid uuid.UUID, flags LoadFlags) Handle[T] {
	if row, ok := m.localMetadata(uid); ok {
		return Load[T](m, row.Location, flags)
	}
	if m.parent != nil {
		return LoadByUID[T](m.parent, uid, flags)
	}
	return GetStorage[T](m).Empty()
}

// Find returns the cached handle of key without loading it.
// Misses consult the parent and end with the sentinel.
func Find[T any](m *Manager, key string) Handle[T] {
	key = utils.NormalizeKey(key)
	s := GetStorage[T](m)
	if h, ok := s.find(key); ok {
		return h
	}
	if m.parent != nil {
		return Find[T](m.parent, key)
	}
	return s.Empty()
}

// Rename moves key to newKey in every database and in the storage of T.
func Rename[T any](m *Manager, key, newKey string) bool {
	key = utils.NormalizeKey(key)
	newKey = utils.NormalizeKey(newKey)

	m.RenameAssetInfo(key, newKey)
	renamed := GetStorage[T](m).rename(key, newKey)

	if m.parent != nil {
		renamed = Rename[T](m.parent, key, newKey) || renamed
	}
	return renamed
}

// Unload removes key from the storage of T and from the parent's.
func Unload[T any](m *Manager, key string) int {
	n := GetStorage[T](m).UnloadSingle(key)
	if m.parent != nil {
		n += Unload[T](m.parent, key)
	}
	return n
}

// GetAssets returns the sentinel followed by every handle of group,
// then the parent's handles for the same group.
func GetAssets[T any](m *Manager, group string) []Handle[T] {
	out := GetStorage[T](m).GetGroup(group)
	if m.parent != nil {
		out = append(out, GetAssets[T](m.parent, group)[1:]...)
	}
	return out
}

// GetAssetsWhere returns the sentinel followed by every handle matching pred.
func GetAssetsWhere[T any](m *Manager, pred func(h Handle[T]) bool) []Handle[T] {
	return GetStorage[T](m).GetWithCondition(pred)
}

// ForEach calls fn for every cached entry of T in key order, then for the parent's.
// fn runs on a snapshot and may call back into the manager.
func ForEach[T any](m *Manager, fn func(key string, h Handle[T])) {
	entries := GetStorage[T](m).snapshot()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, entries[k])
	}
	if m.parent != nil {
		ForEach(m.parent, fn)
	}
}

// UnloadAll unloads every storage and clears every database.
func (m *Manager) UnloadAll() {
	for _, b := range m.Bindings() {
		b.UnloadAll()
	}

	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	for _, db := range m.databases {
		db.Clear()
	}
}

// UnloadGroup unloads group from every storage and purges its database rows.
func (m *Manager) UnloadGroup(group string) {
	group = utils.NormalizeKey(group)
	for _, b := range m.Bindings() {
		b.UnloadGroup(group)
	}

	protocol, _, ok := utils.SplitKey(group)
	if !ok {
		return
	}
	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	if db, ok := m.databases[protocol]; ok {
		db.RemoveGroup(group)
	}
}

// Binding returns the type-erased view of a registered kind.
func (m *Manager) Binding(kind string) (Binding, bool) {
	m.storagesMu.RLock()
	defer m.storagesMu.RUnlock()
	b, ok := m.bindings[kind]
	return b, ok
}

// Bindings returns every registered kind sorted by name.
func (m *Manager) Bindings() []Binding {
	m.storagesMu.RLock()
	out := make([]Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		out = append(out, b)
	}
	m.storagesMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Kind() < out[j].Kind() })
	return out
}

func protocolOf(key string) string {
	protocol, _, _ := utils.SplitKey(key)
	return strings.ToLower(protocol)
}

// databaseLocked returns the database of protocol, creating it. dbMu must be held.
func (m *Manager) databaseLocked(protocol string) *Database {
	db, ok := m.databases[protocol]
	if !ok {
		db = NewDatabase()
		m.databases[protocol] = db
	}
	return db
}

// Database returns a snapshot of the database owning key's protocol.
func (m *Manager) Database(key string) *Database {
	protocol := protocolOf(utils.NormalizeKey(key))
	m.dbMu.RLock()
	defer m.dbMu.RUnlock()
	if db, ok := m.databases[protocol]; ok {
		return db.clone()
	}
	return NewDatabase()
}

// AddAsset registers location in its protocol database and returns its identity.
// Registration is idempotent by location.
func (m *Manager) AddAsset(location string, meta Meta) uuid.UUID {
	location = utils.NormalizeKey(location)

	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	db := m.databaseLocked(protocolOf(location))
	if _, known := db.FindByLocation(location); !known && meta.UID == uuid.Nil {
		meta.UID = m.uids.Generate(location)
	}
	return db.AddAsset(location, meta)
}

// GetMetadata finds the row of uid in any database, then in the parent.
func (m *Manager) GetMetadata(uid uuid.UUID) (Row, bool) {
	if row, ok := m.localMetadata(uid); ok {
		return row, true
	}
	if m.parent != nil {
		return m.parent.GetMetadata(uid)
	}
	return Row{}, false
}

func (m *Manager) localMetadata(uid uuid.UUID) (Row, bool) {
	m.dbMu.RLock()
	defer m.dbMu.RUnlock()
	for _, db := range m.databases {
		if row, ok := db.GetMetadata(uid); ok {
			return row, true
		}
	}
	return Row{}, false
}

// forgetUnresolvable drops the row registered for a key whose protocol cannot be
// resolved, and the database it created, so nothing unmounted is persisted.
func (m *Manager) forgetUnresolvable(location string) {
	protocol := protocolOf(location)
	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	db, ok := m.databases[protocol]
	if !ok {
		return
	}
	db.RemoveAsset(location)
	if db.Len() == 0 {
		delete(m.databases, protocol)
	}
}

// RemoveAssetInfo drops the row of location.
func (m *Manager) RemoveAssetInfo(location string) bool {
	location = utils.NormalizeKey(location)
	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	if db, ok := m.databases[protocolOf(location)]; ok {
		return db.RemoveAsset(location)
	}
	return false
}

// RenameAssetInfo renames location rows in every database.
func (m *Manager) RenameAssetInfo(oldLocation, newLocation string) int {
	oldLocation = utils.NormalizeKey(oldLocation)
	newLocation = utils.NormalizeKey(newLocation)
	m.dbMu.Lock()
	defer m.dbMu.Unlock()
	n := 0
	for _, db := range m.databases {
		n += db.RenameAsset(oldLocation, newLocation)
	}
	return n
}

// DatabaseRows returns the rows of protocol sorted by location.
func (m *Manager) DatabaseRows(protocol string) []Row {
	m.dbMu.RLock()
	defer m.dbMu.RUnlock()
	if db, ok := m.databases[strings.ToLower(protocol)]; ok {
		return db.Rows()
	}
	return nil
}

// Protocols returns the protocols that own a database.
func (m *Manager) Protocols() []string {
	m.dbMu.RLock()
	defer m.dbMu.RUnlock()
	out := make([]string, 0, len(m.databases))
	for p := range m.databases {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// LoadDatabase replaces the database of protocol with the persisted one.
func (m *Manager) LoadDatabase(ctx context.Context, protocol string) error {
	if m.store == nil {
		return ErrNoDatabaseStore
	}
	protocol = strings.ToLower(protocol)
	rows, err := m.store.Load(ctx, protocol)
	if err != nil {
		return fmt.Errorf("failed to load database %s: %w", protocol, err)
	}

	m.dbMu.Lock()
	m.databases[protocol] = NewDatabaseFromRows(rows)
	m.dbMu.Unlock()

	m.logger.Info("Loaded asset database", zap.String("protocol", protocol), zap.Int("rows", len(rows)))
	return nil
}

// SaveDatabase persists the database of protocol.
func (m *Manager) SaveDatabase(ctx context.Context, protocol string) error {
	if m.store == nil {
		return ErrNoDatabaseStore
	}
	protocol = strings.ToLower(protocol)
	rows := m.DatabaseRows(protocol)
	if err := m.store.Save(ctx, protocol, rows); err != nil {
		return fmt.Errorf("failed to save database %s: %w", protocol, err)
	}
	m.logger.Info("Saved asset database", zap.String("protocol", protocol), zap.Int("rows", len(rows)))
	return nil
}

// SaveAll persists every database concurrently.
func (m *Manager) SaveAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, protocol := range m.Protocols() {
		g.Go(func() error {
			return m.SaveDatabase(ctx, protocol)
		})
	}
	return g.Wait()
}
