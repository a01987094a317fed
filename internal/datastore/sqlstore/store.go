// Package sqlstore implements datastore.Store on a gorm database.
// Every table of the data service maps to rows of a single records table.
package sqlstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/pitmstr/internal/database/database"
	"github.com/festy23/pitmstr/internal/datastore"
)

// Record is a stored row. Fields holds the JSON-encoded field map.
type Record struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(32)"`
	Table     string    `gorm:"primaryKey;column:table_name;type:varchar(64)"`
	Fields    string    `gorm:"column:fields;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for GORM.
func (Record) TableName() string {
	return "records"
}

// Store is a datastore.Store backed by gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.SugaredLogger

	mu          sync.Mutex
	lastCreated time.Time
}

var _ datastore.Store = (*Store)(nil)

// New creates a new record store.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// AutoMigrate creates the records table. Used for sqlite; postgres uses versioned migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

// NewID returns an id in the data service's "rec" + 14 characters shape.
func NewID() string {
	return "rec" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

// List returns records of a table ordered by opts.Sort, then creation time.
func (s *Store) List(ctx context.Context, table string, opts datastore.ListOptions) ([]datastore.Record, error) {
	var rows []Record
	err := s.db.WithContext(ctx).
		Where("table_name = ?", table).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	records := make([]datastore.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.decode()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		records = append(records, rec)
	}

	if len(opts.Sort) > 0 {
		slices.SortStableFunc(records, func(a, b datastore.Record) int {
			for _, sort := range opts.Sort {
				if c := compareValues(a.Fields[sort.Field], b.Fields[sort.Field], sort.Direction); c != 0 {
					return c
				}
			}
			return 0
		})
	}
	if opts.MaxRecords > 0 && len(records) > opts.MaxRecords {
		records = records[:opts.MaxRecords]
	}
	if len(opts.Fields) > 0 {
		for i := range records {
			records[i].Fields = project(records[i].Fields, opts.Fields)
		}
	}
	return records, nil
}

// Find returns one record by id.
func (s *Store) Find(ctx context.Context, table, id string) (datastore.Record, error) {
	row, err := s.find(s.db.WithContext(ctx), table, id)
	if err != nil {
		return datastore.Record{}, fmt.Errorf("find %s/%s: %w", table, id, err)
	}
	return row.decode()
}

// Create inserts a record with a fresh id.
func (s *Store) Create(ctx context.Context, table string, fields datastore.Fields) (datastore.Record, error) {
	encoded, err := encodeFields(fields)
	if err != nil {
		return datastore.Record{}, fmt.Errorf("create %s: %w", table, err)
	}
	now := s.nextCreatedAt()
	row := Record{
		ID:        NewID(),
		Table:     table,
		Fields:    encoded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return datastore.Record{}, fmt.Errorf("create %s: %w", table, err)
	}
	s.logger.Debugw("record created", "table", table, "id", row.ID)
	return row.decode()
}

// Update merges fields into an existing record.
func (s *Store) Update(ctx context.Context, table, id string, fields datastore.Fields) (datastore.Record, error) {
	var updated Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, table, id)
		if err != nil {
			return err
		}
		current, err := row.decode()
		if err != nil {
			return err
		}
		if current.Fields == nil {
			current.Fields = datastore.Fields{}
		}
		for k, v := range fields {
			current.Fields[k] = v
		}
		encoded, err := encodeFields(current.Fields)
		if err != nil {
			return err
		}
		row.Fields = encoded
		row.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&Record{}).
			Where("table_name = ? AND id = ?", table, id).
			Updates(map[string]any{"fields": row.Fields, "updated_at": row.UpdatedAt}).Error; err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return datastore.Record{}, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	return updated.decode()
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	result := s.db.WithContext(ctx).
		Where("table_name = ? AND id = ?", table, id).
		Delete(&Record{})
	if result.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s/%s: %w", table, id, datastore.ErrNotFound)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// nextCreatedAt returns strictly increasing creation times so listing follows insertion order.
func (s *Store) nextCreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastCreated) {
		now = s.lastCreated.Add(time.Microsecond)
	}
	s.lastCreated = now
	return now
}

func (s *Store) find(db *gorm.DB, table, id string) (Record, error) {
	if id == "" {
		return Record{}, datastore.ErrNotFound
	}
	var row Record
	err := db.Where("table_name = ? AND id = ?", table, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, datastore.ErrNotFound
	}
	return row, err
}

func (r Record) decode() (datastore.Record, error) {
	fields := datastore.Fields{}
	if r.Fields != "" {
		if err := json.Unmarshal([]byte(r.Fields), &fields); err != nil {
			return datastore.Record{}, fmt.Errorf("decode fields of %s: %w", r.ID, err)
		}
	}
	return datastore.Record{ID: r.ID, CreatedTime: r.CreatedAt, Fields: fields}, nil
}

func encodeFields(fields datastore.Fields) (string, error) {
	if fields == nil {
		fields = datastore.Fields{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(raw), nil
}

func project(fields datastore.Fields, keep []string) datastore.Fields {
	out := make(datastore.Fields, len(keep))
	for _, k := range keep {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}

// compareValues orders decoded JSON values. Missing values sort last in either direction.
func compareValues(a, b any, direction datastore.SortDirection) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	var c int
	fa, aNum := a.(float64)
	fb, bNum := b.(float64)
	if aNum && bNum {
		c = cmp.Compare(fa, fb)
	} else {
		c = cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	if direction == datastore.SortDesc {
		return -c
	}
	return c
}
