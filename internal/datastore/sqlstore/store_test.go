package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/database/database"
	"github.com/festy23/pitmstr/internal/datastore"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return New(db, zap.NewNop().Sugar())
}

func TestRecord_TableName(t *testing.T) {
	assert.Equal(t, "records", Record{}.TableName())
}

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 17)
	assert.Equal(t, "rec", id[:3])
	assert.NotEqual(t, id, NewID())
}

func TestStore_CreateFind(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, datastore.TableTeams, datastore.Fields{
		"Team Name": "Smoke Kings",
		"Division":  []string{"recDiv1"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedTime.IsZero())

	found, err := store.Find(ctx, datastore.TableTeams, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smoke Kings", found.String("Team Name"))
	assert.Equal(t, "recDiv1", found.FirstLinkedID("Division"))

	t.Run("table scoped", func(t *testing.T) {
		_, err := store.Find(ctx, datastore.TableEvents, created.ID)
		assert.ErrorIs(t, err, datastore.ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Find(ctx, datastore.TableTeams, "recNope")
		assert.ErrorIs(t, err, datastore.ErrNotFound)
	})
}

func TestStore_List(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, f := range []datastore.Fields{
		{"Event Name": "Spring", "Event Date": "2025-04-01", "Team Count": 3},
		{"Event Name": "Summer", "Event Date": "2025-07-01", "Team Count": 12},
		{"Event Name": "Undated"},
		{"Event Name": "Fall", "Event Date": "2025-10-01", "Team Count": 7},
	} {
		_, err := store.Create(ctx, datastore.TableEvents, f)
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, datastore.TableTeams, datastore.Fields{"Team Name": "other table"})
	require.NoError(t, err)

	t.Run("all rows of table", func(t *testing.T) {
		records, err := store.List(ctx, datastore.TableEvents, datastore.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, records, 4)
	})

	t.Run("sorted descending with missing last", func(t *testing.T) {
		records, err := store.List(ctx, datastore.TableEvents, datastore.ListOptions{
			Sort: []datastore.Sort{{Field: "Event Date", Direction: datastore.SortDesc}},
		})
		require.NoError(t, err)
		names := []string{}
		for _, r := range records {
			names = append(names, r.String("Event Name"))
		}
		assert.Equal(t, []string{"Fall", "Summer", "Spring", "Undated"}, names)
	})

	t.Run("numeric sort and max records", func(t *testing.T) {
		records, err := store.List(ctx, datastore.TableEvents, datastore.ListOptions{
			Sort:       []datastore.Sort{{Field: "Team Count", Direction: datastore.SortAsc}},
			MaxRecords: 2,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Spring", records[0].String("Event Name"))
		assert.Equal(t, "Fall", records[1].String("Event Name"))
	})

	t.Run("field projection", func(t *testing.T) {
		records, err := store.List(ctx, datastore.TableEvents, datastore.ListOptions{Fields: []string{"Team Count"}})
		require.NoError(t, err)
		for _, r := range records {
			assert.NotContains(t, r.Fields, "Event Name")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		records, err := store.List(ctx, datastore.TableStates, datastore.ListOptions{})
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestStore_Update(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, datastore.TableUsers, datastore.Fields{"Clerk ID": "user_1", "Status": "Active"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, datastore.TableUsers, created.ID, datastore.Fields{"Status": "Suspended"})
	require.NoError(t, err)
	assert.Equal(t, "Suspended", updated.String("Status"))
	assert.Equal(t, "user_1", updated.String("Clerk ID"))

	found, err := store.Find(ctx, datastore.TableUsers, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suspended", found.String("Status"))

	_, err = store.Update(ctx, datastore.TableUsers, "recMissing", datastore.Fields{"Status": "x"})
	assert.ErrorIs(t, err, datastore.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, datastore.TableTeams, datastore.Fields{"Team Name": "Gone"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, datastore.TableTeams, created.ID))
	_, err = store.Find(ctx, datastore.TableTeams, created.ID)
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, datastore.TableTeams, created.ID), datastore.ErrNotFound)
}

func TestStore_Ping(t *testing.T) {
	store := setupStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
