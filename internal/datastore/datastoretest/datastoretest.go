// Package datastoretest provides datastore.Store doubles for tests.
package datastoretest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/database/database"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/datastore/sqlstore"
)

// NewSQLite returns a record store on a private in-memory sqlite database.
func NewSQLite(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlstore.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return sqlstore.New(db, zap.NewNop().Sugar())
}

// MustCreate inserts a record and returns its id.
func MustCreate(t *testing.T, store datastore.Store, table string, fields datastore.Fields) string {
	t.Helper()
	rec, err := store.Create(context.Background(), table, fields)
	require.NoError(t, err)
	return rec.ID
}

// MockStore is a testify mock of datastore.Store.
type MockStore struct {
	mock.Mock
}

var _ datastore.Store = (*MockStore)(nil)

func (m *MockStore) List(ctx context.Context, table string, opts datastore.ListOptions) ([]datastore.Record, error) {
	args := m.Called(ctx, table, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.Record), args.Error(1)
}

func (m *MockStore) Find(ctx context.Context, table, id string) (datastore.Record, error) {
	args := m.Called(ctx, table, id)
	return args.Get(0).(datastore.Record), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, table string, fields datastore.Fields) (datastore.Record, error) {
	args := m.Called(ctx, table, fields)
	return args.Get(0).(datastore.Record), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, table, id string, fields datastore.Fields) (datastore.Record, error) {
	args := m.Called(ctx, table, id, fields)
	return args.Get(0).(datastore.Record), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, table, id string) error {
	args := m.Called(ctx, table, id)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
