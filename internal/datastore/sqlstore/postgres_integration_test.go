//go:build integration

package sqlstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/festy23/pitmstr/internal/database/migrate"
	"github.com/festy23/pitmstr/internal/datastore"
)

// PostgresSuite runs the record store against a real PostgreSQL with versioned migrations.
type PostgresSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	db          *gorm.DB
	store       *Store
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("pitmstr"),
		postgres.WithUsername("pit"),
		postgres.WithPassword("pit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(s.T(), err, "failed to start PostgreSQL container")
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	s.db = db

	os.Setenv("MIGRATIONS_PATH", "../../../migrations")
	require.NoError(s.T(), migrate.Migrate(db))
	// A second run is a no-op.
	require.NoError(s.T(), migrate.Migrate(db))

	s.store = New(db, zap.NewNop().Sugar())
}

func (s *PostgresSuite) TearDownSuite() {
	os.Unsetenv("MIGRATIONS_PATH")
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *PostgresSuite) SetupTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE records").Error)
}

func (s *PostgresSuite) TestRoundTrip() {
	created, err := s.store.Create(s.ctx, datastore.TableTurnIns, datastore.Fields{
		"Team":        []string{"recTeam1"},
		"Event":       []string{"recEvent1"},
		"Total Score": 87.25,
	})
	s.Require().NoError(err)

	found, err := s.store.Find(s.ctx, datastore.TableTurnIns, created.ID)
	s.Require().NoError(err)
	score, ok := found.Number("Total Score")
	s.True(ok)
	s.Equal(87.25, score)
	s.True(found.LinksTo("Event", "recEvent1"))

	updated, err := s.store.Update(s.ctx, datastore.TableTurnIns, created.ID, datastore.Fields{"Total Score": 90})
	s.Require().NoError(err)
	score, _ = updated.Number("Total Score")
	s.Equal(90.0, score)

	s.Require().NoError(s.store.Delete(s.ctx, datastore.TableTurnIns, created.ID))
	_, err = s.store.Find(s.ctx, datastore.TableTurnIns, created.ID)
	s.ErrorIs(err, datastore.ErrNotFound)
}

func (s *PostgresSuite) TestListScopedToTable() {
	for i := 0; i < 3; i++ {
		_, err := s.store.Create(s.ctx, datastore.TableTeams, datastore.Fields{"Team Name": "team"})
		s.Require().NoError(err)
	}
	_, err := s.store.Create(s.ctx, datastore.TableCharter, datastore.Fields{"Charter Name": "school"})
	s.Require().NoError(err)

	teams, err := s.store.List(s.ctx, datastore.TableTeams, datastore.ListOptions{})
	s.Require().NoError(err)
	s.Len(teams, 3)
	s.NoError(s.store.Ping(s.ctx))
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}
