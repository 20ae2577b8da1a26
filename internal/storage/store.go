package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"expy/internal/cache"
	"expy/internal/core"
	"expy/internal/log"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a database that lives only as long as its store.
const MemoryPath = ":memory:"

const (
	selectColumns = `SELECT t_id, date, category, description, value, cc_value FROM trnsaction`

	insertQuery = `INSERT INTO trnsaction (date, category, description, value, cc_value)
		VALUES (?, ?, ?, ?, ?)`
	insertWithIDQuery = `INSERT INTO trnsaction (date, category, description, value, cc_value, t_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	getByIDQuery = selectColumns + ` WHERE t_id = ?`
	updateQuery  = `UPDATE trnsaction
		SET date = ?, category = ?, description = ?, value = ?, cc_value = ?
		WHERE t_id = ?`
	deleteQuery = `DELETE FROM trnsaction WHERE t_id = ?`
	countQuery  = `SELECT COUNT(*) FROM trnsaction`
)

// Options configures a Store.
type Options struct {
	Logger *log.Logger

	// CacheSize is the number of transactions kept for GetByID. 0 disables it.
	// Only stores handed out by a Registry are cached; Open ignores it.
	CacheSize int
	CacheTTL  time.Duration
}

// Store persists transactions in a single SQLite table over one connection.
// Operations are serialized; each one is atomic on its own.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	logger *log.Logger
	cache  cache.Cache[int64, core.Transaction]
}

// Open opens or creates the database at path and brings its schema up to
// date. On failure nothing is left open.
//
// The store has no read cache, so separate stores on one file always see
// each other's writes. Use a Registry to share one cached store per path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	opts.CacheSize = 0
	return open(ctx, path, opts)
}

func open(ctx context.Context, path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	failOp := func(op string, err error) (*Store, error) {
		logger.ErrorContext(ctx, "Failed to open transaction store",
			log.NewFields().WithOperation(op).With(log.FieldPath, path).WithError(err).ToSlice()...)
		return nil, &Error{Op: op, Path: path, Err: err, init: true}
	}
	fail := func(err error) (*Store, error) {
		return failOp(log.OpOpen, err)
	}

	if path == "" {
		return fail(errors.New("empty database path"))
	}

	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fail(fmt.Errorf("create db directory: %w", err))
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fail(fmt.Errorf("open sqlite database: %w", err))
	}

	// One connection for the life of the store. An in-memory database
	// exists only on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fail(fmt.Errorf("ping database: %w", err))
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return failOp(log.OpMigrate, err)
	}

	s := &Store{
		db:     db,
		path:   path,
		logger: logger,
	}
	if opts.CacheSize > 0 {
		s.cache = cache.NewLRUCache[int64, core.Transaction](opts.CacheSize, opts.CacheTTL)
	}

	logger.InfoContext(ctx, "Transaction store opened",
		log.FieldPath, path,
		"cache_size", opts.CacheSize)

	return s, nil
}

// Path returns the backing path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		s.cache.Clear()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return &Error{Op: log.OpClose, Path: s.path, Err: err}
		}
	}
	return nil
}

// Create inserts t. An id set on t is used as is; otherwise the database
// assigns the next one and it is written back into t. It reports whether
// exactly one row was inserted.
func (s *Store) Create(ctx context.Context, t *core.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := transactionFields(*t)
	s.logger.DebugContext(ctx, "Creating transaction", fields.WithOperation(log.OpCreate).ToSlice()...)

	var (
		res sql.Result
		err error
	)
	if id, ok := t.ID.Value(); ok {
		res, err = s.db.ExecContext(ctx, insertWithIDQuery,
			t.DateEpoch(), t.Category, t.Description, t.ValueCents(), t.CCValueCents(), id)
	} else {
		res, err = s.db.ExecContext(ctx, insertQuery,
			t.DateEpoch(), t.Category, t.Description, t.ValueCents(), t.CCValueCents())
	}
	if err != nil {
		return false, s.fault(ctx, log.OpCreate, fmt.Errorf("insert transaction: %w", err), fields)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault(ctx, log.OpCreate, fmt.Errorf("rows affected: %w", err), fields)
	}
	if n != 1 {
		return false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, s.fault(ctx, log.OpCreate, fmt.Errorf("last insert id: %w", err), fields)
	}
	t.ID = core.NewID(id)

	if s.cache != nil {
		s.cache.Set(id, stored(id, *t))
	}

	s.logger.InfoContext(ctx, "Transaction created",
		log.FieldTransactionID, id,
		log.FieldCategory, t.Category,
		log.FieldValueCents, t.ValueCents())

	return true, nil
}

// GetByID returns the transaction with the given id. The boolean is false
// when no such row exists.
func (s *Store) GetByID(ctx context.Context, id int64) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		if t, ok := s.cache.Get(id); ok {
			s.logger.DebugContext(ctx, "Transaction read",
				log.FieldOperation, log.OpRead,
				log.FieldTransactionID, id,
				log.FieldCacheHit, true)
			return t, true, nil
		}
	}

	t, err := scanTransaction(s.db.QueryRowContext(ctx, getByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.DebugContext(ctx, "Transaction not found",
			log.FieldOperation, log.OpRead,
			log.FieldTransactionID, id)
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, s.fault(ctx, log.OpRead,
			fmt.Errorf("get transaction by id: %w", err),
			log.NewFields().With(log.FieldTransactionID, id))
	}

	if s.cache != nil {
		if n := s.cache.CleanExpired(); n > 0 {
			s.logger.DebugContext(ctx, "Expired cache entries dropped", log.FieldRows, n)
		}
		s.cache.Set(id, t)
	}

	s.logger.DebugContext(ctx, "Transaction read",
		log.FieldOperation, log.OpRead,
		log.FieldTransactionID, id,
		log.FieldCacheHit, false)

	return t, true, nil
}

// GetFiltered returns the transactions matching f in insertion order, or in
// date order when f.OrderByDate is set. No match yields an empty slice.
func (s *Store) GetFiltered(ctx context.Context, f Filter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := filterFields(f)
	query, args := buildFilteredQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fault(ctx, log.OpList, fmt.Errorf("query transactions: %w", err), fields)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, s.fault(ctx, log.OpList, fmt.Errorf("scan transaction: %w", err), fields)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fault(ctx, log.OpList, fmt.Errorf("iterate transactions: %w", err), fields)
	}

	s.logger.DebugContext(ctx, "Transactions listed",
		fields.WithOperation(log.OpList).With(log.FieldRows, len(out)).ToSlice()...)

	return out, nil
}

// Update overwrites the stored row with t's id. It reports false when t has
// no id or no row has that id.
func (s *Store) Update(ctx context.Context, t core.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := transactionFields(t)
	id, ok := t.ID.Value()
	if !ok {
		s.logger.DebugContext(ctx, "Update skipped, transaction has no id",
			fields.WithOperation(log.OpUpdate).ToSlice()...)
		return false, nil
	}

	res, err := s.db.ExecContext(ctx, updateQuery,
		t.DateEpoch(), t.Category, t.Description, t.ValueCents(), t.CCValueCents(), id)
	if err != nil {
		return false, s.fault(ctx, log.OpUpdate, fmt.Errorf("update transaction: %w", err), fields)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault(ctx, log.OpUpdate, fmt.Errorf("rows affected: %w", err), fields)
	}

	if s.cache != nil {
		if n == 1 {
			s.cache.Set(id, stored(id, t))
		} else {
			s.cache.Delete(id)
		}
	}

	s.logger.InfoContext(ctx, "Transaction update",
		log.FieldOperation, log.OpUpdate,
		log.FieldTransactionID, id,
		log.FieldSuccess, n == 1)

	return n == 1, nil
}

// Delete removes the row with t's id. It reports false when t has no id or
// no row has that id.
func (s *Store) Delete(ctx context.Context, t core.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := t.ID.Value()
	if !ok {
		s.logger.DebugContext(ctx, "Delete skipped, transaction has no id",
			log.FieldOperation, log.OpDelete)
		return false, nil
	}

	fields := log.NewFields().With(log.FieldTransactionID, id)
	res, err := s.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return false, s.fault(ctx, log.OpDelete, fmt.Errorf("delete transaction: %w", err), fields)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault(ctx, log.OpDelete, fmt.Errorf("rows affected: %w", err), fields)
	}

	if s.cache != nil {
		s.cache.Delete(id)
	}

	s.logger.InfoContext(ctx, "Transaction delete",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id,
		log.FieldSuccess, n == 1)

	return n == 1, nil
}

// Count returns the number of stored transactions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return 0, s.fault(ctx, log.OpCount, fmt.Errorf("count transactions: %w", err), log.NewFields())
	}
	return n, nil
}

// fault logs err once and wraps it as a storage fault.
func (s *Store) fault(ctx context.Context, op string, err error, fields log.LogFields) error {
	errorType := log.ErrorTypeDatabase
	if IsConstraint(err) {
		errorType = log.ErrorTypeConflict
	}
	s.logger.ErrorContext(ctx, "Storage operation failed",
		fields.WithOperation(op).WithError(err).WithErrorType(errorType).ToSlice()...)
	return &Error{Op: op, Path: s.path, Err: err}
}

// stored returns t as a read would return it: the date truncated to the
// second in UTC.
func stored(id int64, t core.Transaction) core.Transaction {
	return core.NewTransaction(core.NewID(id), t.DateEpoch(), t.Category, t.Description,
		t.ValueCents(), t.CCValueCents())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		id, date, value, ccValue int64
		category                 string
		description              sql.NullString
	)
	if err := row.Scan(&id, &date, &category, &description, &value, &ccValue); err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(core.NewID(id), date, category, description.String, value, ccValue), nil
}

func transactionFields(t core.Transaction) log.LogFields {
	return log.NewFields().WithTransaction(t.ID.String(), t.DateEpoch(), t.Category, t.Description,
		t.ValueCents(), t.CCValueCents())
}

func filterFields(f Filter) log.LogFields {
	fields := log.NewFields().With(log.FieldFiltered, !f.IsEmpty())
	if f.DateRange != nil {
		fields.With(log.FieldDateRange, []int64{f.DateRange.From.Unix(), f.DateRange.To.Unix()})
	}
	if len(f.Categories) > 0 {
		fields.With(log.FieldCategories, f.Categories)
	}
	if f.ValueRange != nil {
		fields.With(log.FieldValueRange, []int64{f.ValueRange.Min, f.ValueRange.Max})
	}
	return fields
}
