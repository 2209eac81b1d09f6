// Package storage persists fixed-length record buffers in a pebble database.
//
// Each table is identified by a KSUID. Rows are numbered from zero in
// insertion order and stored under
//
//	r/<table ksuid(20)><row(8, big-endian)>
//
// next to a per-table row counter and a name index.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
	ErrRowNotFound   = errors.New("row not found")
)

const (
	namePrefix  = "t/name/"
	countPrefix = "t/count/"
	rowPrefix   = "r/"
)

// RowStore is a pebble-backed store of record buffers.
type RowStore struct {
	db   *pebble.DB
	mu   sync.Mutex // serialises row counter updates
	opts *pebble.WriteOptions
}

// Options configures a RowStore.
type Options struct {
	// NoSync skips fsync on every write. Faster, but a crash can lose
	// recently written rows.
	NoSync bool
}

// NewRowStore opens (or creates) a row store at path.
func NewRowStore(path string, opts Options) (*RowStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open row store: %w", err)
	}
	wo := pebble.Sync
	if opts.NoSync {
		wo = pebble.NoSync
	}
	return &RowStore{db: db, opts: wo}, nil
}

// CreateTable registers a new table name and returns its id.
func (s *RowStore) CreateTable(name string) (ksuid.KSUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(name); err == nil {
		return ksuid.Nil, fmt.Errorf("%w: %s", ErrTableExists, name)
	} else if !errors.Is(err, ErrTableNotFound) {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set([]byte(namePrefix+name), id.Bytes(), nil); err != nil {
		return ksuid.Nil, err
	}
	if err := b.Set(countKey(id), encodeUint64(0), nil); err != nil {
		return ksuid.Nil, err
	}
	if err := b.Commit(s.opts); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return id, nil
}

// LookupTable returns the id of a named table.
func (s *RowStore) LookupTable(name string) (ksuid.KSUID, error) {
	return s.lookup(name)
}

func (s *RowStore) lookup(name string) (ksuid.KSUID, error) {
	data, closer, err := s.db.Get([]byte(namePrefix + name))
	if errors.Is(err, pebble.ErrNotFound) {
		return ksuid.Nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	if err != nil {
		return ksuid.Nil, err
	}
	defer closer.Close()

	id, err := ksuid.FromBytes(data)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("corrupt table id for %s: %w", name, err)
	}
	return id, nil
}

// RowCount returns how many rows a table holds.
func (s *RowStore) RowCount(id ksuid.KSUID) (uint64, error) {
	data, closer, err := s.db.Get(countKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	if err != nil {
		return 0, err
	}
	defer closer.Close()

	if len(data) != 8 {
		return 0, fmt.Errorf("corrupt row count for %s", id)
	}
	return binary.BigEndian.Uint64(data), nil
}

// AppendRow stores buf as the next row and returns its number.
func (s *RowStore) AppendRow(id ksuid.KSUID, buf []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.RowCount(id)
	if err != nil {
		return 0, err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(rowKey(id, n), buf, nil); err != nil {
		return 0, err
	}
	if err := b.Set(countKey(id), encodeUint64(n+1), nil); err != nil {
		return 0, err
	}
	if err := b.Commit(s.opts); err != nil {
		return 0, fmt.Errorf("failed to append row: %w", err)
	}
	return n, nil
}

// ReadRow returns a copy of one row's buffer.
func (s *RowStore) ReadRow(id ksuid.KSUID, row uint64) ([]byte, error) {
	data, closer, err := s.db.Get(rowKey(id, row))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s/%d", ErrRowNotFound, id, row)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), data...), nil
}

// UpdateRow overwrites an existing row.
func (s *RowStore) UpdateRow(id ksuid.KSUID, row uint64, buf []byte) error {
	n, err := s.RowCount(id)
	if err != nil {
		return err
	}
	if row >= n {
		return fmt.Errorf("%w: %s/%d", ErrRowNotFound, id, row)
	}
	return s.db.Set(rowKey(id, row), buf, s.opts)
}

// ScanRows calls fn for every row in order. fn receives its own copy of the
// buffer. Returning an error stops the scan and is passed back to the caller.
func (s *RowStore) ScanRows(id ksuid.KSUID, fn func(row uint64, buf []byte) error) error {
	prefix := rowPrefixFor(id)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: append(append([]byte(nil), prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != len(prefix)+8 {
			continue
		}
		row := binary.BigEndian.Uint64(key[len(prefix):])
		if err := fn(row, append([]byte(nil), iter.Value()...)); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close closes the underlying database.
func (s *RowStore) Close() error {
	return s.db.Close()
}

func countKey(id ksuid.KSUID) []byte {
	return append([]byte(countPrefix), id.Bytes()...)
}

func rowPrefixFor(id ksuid.KSUID) []byte {
	return append([]byte(rowPrefix), id.Bytes()...)
}

func rowKey(id ksuid.KSUID, row uint64) []byte {
	return binary.BigEndian.AppendUint64(rowPrefixFor(id), row)
}

func encodeUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}
