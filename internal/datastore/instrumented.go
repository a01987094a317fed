package datastore

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// CallRecorder receives the outcome of every data service call.
type CallRecorder interface {
	RecordDatastoreCall(op, table string, err error)
}

type instrumented struct {
	next     Store
	recorder CallRecorder
	logger   *zap.SugaredLogger
}

// Instrument wraps a store so each call is counted and failures are logged.
// Not-found results are counted as successful calls.
func Instrument(next Store, recorder CallRecorder, logger *zap.SugaredLogger) Store {
	return &instrumented{next: next, recorder: recorder, logger: logger}
}

func (s *instrumented) observe(op, table string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	if s.recorder != nil {
		s.recorder.RecordDatastoreCall(op, table, err)
	}
	if err != nil {
		s.logger.Errorw("datastore call failed", "op", op, "table", table, "latency", time.Since(start), "error", err)
	}
}

func (s *instrumented) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	start := time.Now()
	records, err := s.next.List(ctx, table, opts)
	s.observe("list", table, start, err)
	return records, err
}

func (s *instrumented) Find(ctx context.Context, table, id string) (Record, error) {
	start := time.Now()
	rec, err := s.next.Find(ctx, table, id)
	s.observe("find", table, start, err)
	return rec, err
}

func (s *instrumented) Create(ctx context.Context, table string, fields Fields) (Record, error) {
	start := time.Now()
	rec, err := s.next.Create(ctx, table, fields)
	s.observe("create", table, start, err)
	return rec, err
}

func (s *instrumented) Update(ctx context.Context, table, id string, fields Fields) (Record, error) {
	start := time.Now()
	rec, err := s.next.Update(ctx, table, id, fields)
	s.observe("update", table, start, err)
	return rec, err
}

func (s *instrumented) Delete(ctx context.Context, table, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, table, id)
	s.observe("delete", table, start, err)
	return err
}

func (s *instrumented) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
