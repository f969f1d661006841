package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/db/migrate"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

// Store is the transactional entity store the pipeline writes to.
//
// It follows clear-then-load semantics: callers empty a kind with DeleteAll and then
// create rows. There is no upsert; creating the same party twice yields two rows.
type Store interface {
	CreateVendor(ctx context.Context, v *entity.Vendor) (uuid.UUID, error)
	CreateCustomer(ctx context.Context, c *entity.Customer) (uuid.UUID, error)
	CreateInvoice(ctx context.Context, inv *entity.Invoice) (uuid.UUID, error)
	CreateLineItem(ctx context.Context, li *entity.LineItem) (uuid.UUID, error)
	CreatePayment(ctx context.Context, p *entity.Payment) (uuid.UUID, error)
	DeleteAll(ctx context.Context, kind constants.EntityKind) error
	Count(ctx context.Context, kind constants.EntityKind) (int, error)
	// WithTx runs fn against a Store bound to one transaction. The transaction commits
	// when fn returns nil and rolls back otherwise. Nested calls reuse the open transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// InvoiceLister reads invoices back for reports.
type InvoiceLister interface {
	ListInvoices(ctx context.Context) ([]*entity.InvoiceRow, error)
}

// SQLStore implements Store and InvoiceLister on an ent SQL driver.
type SQLStore struct {
	drv     *entsql.Driver // nil when bound to a transaction
	conn    dialect.ExecQuerier
	dialect string
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore returns a Store backed by db.
func NewStore(db *DB, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLStore{
		drv:     db.Driver,
		conn:    db.Driver,
		dialect: db.Dialect(),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *SQLStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *SQLStore) WithTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s.drv == nil {
		return fn(s)
	}
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", common.ErrDatabase, err)
	}
	txStore := &SQLStore{conn: tx, dialect: s.dialect, logger: s.logger, now: s.now}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(txStore); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			s.logger.Error("store.tx.rollback_failed", "run_id", common.RunIDFromContext(ctx), "error", rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", common.ErrDatabase, err)
	}
	return nil
}

func (s *SQLStore) DeleteAll(ctx context.Context, kind constants.EntityKind) error {
	table, ok := migrate.TableFor(kind)
	if !ok {
		return fmt.Errorf("%w: unknown entity kind %q", common.ErrInvalidInput, kind)
	}
	query, args := s.builder().Delete(table).Query()
	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		s.logger.Error("failed to delete rows", "table", table, "error", err)
		return fmt.Errorf("%w: delete %s: %v", common.ErrDatabase, table, err)
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context, kind constants.EntityKind) (int, error) {
	table, ok := migrate.TableFor(kind)
	if !ok {
		return 0, fmt.Errorf("%w: unknown entity kind %q", common.ErrInvalidInput, kind)
	}
	b := s.builder()
	query, args := b.Select(entsql.Count("*")).From(b.Table(table)).Query()

	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", common.ErrDatabase, table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("%w: scan count %s: %v", common.ErrDatabase, table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", common.ErrDatabase, table, err)
	}
	return n, nil
}

// insert writes one row. Values must already be driver-friendly (see nullable/money).
func (s *SQLStore) insert(ctx context.Context, table string, columns []string, values []any) error {
	query, args := s.builder().Insert(table).Columns(columns...).Values(values...).Query()
	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("%w: insert %s: %v", common.ErrDatabase, table, err)
	}
	return nil
}

// nullable converts an optional value into a driver argument.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func money(d decimal.Decimal) string {
	return d.String()
}

func nullableMoney(p *float64) any {
	if p == nil {
		return nil
	}
	return decimal.NewFromFloat(*p).String()
}
