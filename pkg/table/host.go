// Package table drives the per-row edit loop over a stored table: it hands
// each row's record to a callback, persists rows the callback modified and
// decides from the callback's result whether to go on.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/spaddlewit/DotSpatial/pkg/codec"
)

// Convention says which callback result continues the row loop.
type Convention int

const (
	// ContinueOnTrue moves to the next row while the callback returns true.
	ContinueOnTrue Convention = iota
	// StopOnTrue ends the loop as soon as the callback returns true.
	StopOnTrue
)

func (c Convention) proceed(result bool) bool {
	if c == StopOnTrue {
		return !result
	}
	return result
}

func (c Convention) String() string {
	if c == StopOnTrue {
		return "stop-on-true"
	}
	return "continue-on-true"
}

// ConventionFor maps the configured continue-on value to a Convention.
func ConventionFor(continueOn bool) Convention {
	if continueOn {
		return ContinueOnTrue
	}
	return StopOnTrue
}

// RowStore is the storage a Host reads rows from and persists them to.
type RowStore interface {
	RowCount(id ksuid.KSUID) (uint64, error)
	ReadRow(id ksuid.KSUID, row uint64) ([]byte, error)
	AppendRow(id ksuid.KSUID, buf []byte) (uint64, error)
	UpdateRow(id ksuid.KSUID, row uint64, buf []byte) error
	ScanRows(id ksuid.KSUID, fn func(row uint64, buf []byte) error) error
}

// RowFunc edits or inspects one row. Its result is read through the
// Host's Convention.
type RowFunc func(row uint64, rec *codec.Record) bool

// Stats summarises one Each call.
type Stats struct {
	Visited   uint64
	Persisted uint64
	Stopped   bool
}

// Host runs row loops for one table layout.
type Host struct {
	codec      *codec.RecordCodec
	store      RowStore
	logger     *slog.Logger
	metrics    *Metrics
	convention Convention
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(h *Host) { h.metrics = m }
}

// WithConvention sets how callback results are read.
func WithConvention(c Convention) Option {
	return func(h *Host) { h.convention = c }
}

// NewHost creates a host for rows laid out by c and kept in store.
func NewHost(c *codec.RecordCodec, store RowStore, opts ...Option) *Host {
	h := &Host{
		codec:  c,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var errStop = errors.New("row loop stopped")

// Each visits rows in order. For every row it builds a fresh Record, calls
// fn, writes the buffer back if fn modified it, and then either continues
// or stops according to the Host's Convention. Context cancellation is
// checked between rows.
func (h *Host) Each(ctx context.Context, id ksuid.KSUID, fn RowFunc) (Stats, error) {
	var stats Stats
	table := id.String()

	err := h.store.ScanRows(id, func(row uint64, buf []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := h.wrap(table, "scan", row, buf)
		if err != nil {
			return err
		}
		result := fn(row, rec)
		stats.Visited++
		h.metrics.visited(table)

		if rec.Modified() {
			if err := h.store.UpdateRow(id, row, rec.Bytes()); err != nil {
				h.metrics.failed(table, "persist")
				return fmt.Errorf("failed to persist row %d: %w", row, err)
			}
			stats.Persisted++
			h.metrics.persisted(table)
			h.logger.Debug("persisted row", "table", table, "row", row)
		}

		if !h.convention.proceed(result) {
			stats.Stopped = true
			h.metrics.stopped(table)
			return errStop
		}
		return nil
	})
	if errors.Is(err, errStop) {
		err = nil
	}

	h.logger.Info("row loop finished",
		"table", table,
		"visited", stats.Visited,
		"persisted", stats.Persisted,
		"stopped", stats.Stopped,
		"convention", h.convention.String(),
	)
	return stats, err
}

// Append encodes values as a new row and stores it.
func (h *Host) Append(ctx context.Context, id ksuid.KSUID, values []codec.Value) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	table := id.String()

	rec := h.codec.NewRecord()
	if err := rec.SetAll(values); err != nil {
		h.metrics.failed(table, "append")
		return 0, err
	}
	row, err := h.store.AppendRow(id, rec.Bytes())
	if err != nil {
		h.metrics.failed(table, "append")
		return 0, fmt.Errorf("failed to append row: %w", err)
	}
	h.metrics.appended(table)
	h.logger.Debug("appended row", "table", table, "row", row)
	return row, nil
}

// Read decodes one stored row.
func (h *Host) Read(ctx context.Context, id ksuid.KSUID, row uint64) ([]codec.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := h.store.ReadRow(id, row)
	if err != nil {
		return nil, err
	}
	rec, err := h.wrap(id.String(), "read", row, buf)
	if err != nil {
		return nil, err
	}
	values, err := rec.Decode()
	if err != nil {
		h.metrics.failed(id.String(), "decode")
		return nil, fmt.Errorf("row %d: %w", row, err)
	}
	return values, nil
}

// Update runs fn against one row and persists the row if fn modified it.
// It reports whether the row was written.
func (h *Host) Update(ctx context.Context, id ksuid.KSUID, row uint64, fn func(rec *codec.Record) error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	buf, err := h.store.ReadRow(id, row)
	if err != nil {
		return false, err
	}
	rec, err := h.wrap(id.String(), "update", row, buf)
	if err != nil {
		return false, err
	}
	if err := fn(rec); err != nil {
		return false, err
	}
	if !rec.Modified() {
		return false, nil
	}
	if err := h.store.UpdateRow(id, row, rec.Bytes()); err != nil {
		h.metrics.failed(id.String(), "persist")
		return false, fmt.Errorf("failed to persist row %d: %w", row, err)
	}
	h.metrics.persisted(id.String())
	return true, nil
}

// wrap turns a stored row into a Record, refusing buffers shorter than the
// schema's record length.
func (h *Host) wrap(table, op string, row uint64, buf []byte) (*codec.Record, error) {
	if want := h.codec.Schema().RecordLength(); len(buf) < want {
		h.metrics.failed(table, op)
		return nil, fmt.Errorf("row %d: buffer is %d bytes, schema needs %d", row, len(buf), want)
	}
	return h.codec.Wrap(buf), nil
}

// Codec returns the record codec rows are built with.
func (h *Host) Codec() *codec.RecordCodec {
	return h.codec
}
