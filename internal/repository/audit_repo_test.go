package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"omanvat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errAuditInsert = errors.New(`value too long for type character varying(140)`)

// statementLog is a database/sql connector that records every statement it receives and
// fails inserts into audit_logs the way PostgreSQL rejects an oversized actor.
type statementLog struct {
	mu         sync.Mutex
	statements []string
}

func (l *statementLog) record(stmt string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statements = append(l.statements, stmt)
}

func (l *statementLog) recorded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.statements...)
}

func (l *statementLog) Connect(context.Context) (driver.Conn, error) { return &loggedConn{log: l}, nil }
func (l *statementLog) Driver() driver.Driver { return loggedDriver{log: l} }

type loggedDriver struct{ log *statementLog }

func (d loggedDriver) Open(string) (driver.Conn, error) { return &loggedConn{log: d.log}, nil }

type loggedConn struct{ log *statementLog }

func (c *loggedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *loggedConn) Close() error { return nil }

func (c *loggedConn) Begin() (driver.Tx, error) {
	c.log.record("BEGIN")
	return loggedTx{log: c.log}, nil
}

func (c *loggedConn) CheckNamedValue(*driver.NamedValue) error { return nil }

func (c *loggedConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.log.record(query)
	if strings.HasPrefix(query, `INSERT INTO "audit_logs"`) {
		return nil, errAuditInsert
	}
	return driver.RowsAffected(1), nil
}

func (c *loggedConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.log.record(query)
	if strings.HasPrefix(query, `INSERT INTO "audit_logs"`) {
		return nil, errAuditInsert
	}
	return noRows{}, nil
}

type loggedTx struct{ log *statementLog }

func (t loggedTx) Commit() error {
	t.log.record("COMMIT")
	return nil
}

func (t loggedTx) Rollback() error {
	t.log.record("ROLLBACK")
	return nil
}

type noRows struct{}

func (noRows) Columns() []string { return nil }
func (noRows) Close() error { return nil }
func (noRows) Next([]driver.Value) error { return io.EOF }

func newLoggedDB(t *testing.T) (*gorm.DB, *statementLog) {
	t.Helper()
	log := &statementLog{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sql.OpenDB(log)}), &gorm.Config{
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, log
}

func assertStatements(t *testing.T, got []string, prefixes ...string) {
	t.Helper()
	require.Len(t, got, len(prefixes), strings.Join(got, "\n"))
	for i, prefix := range prefixes {
		assert.True(t, strings.HasPrefix(got[i], prefix), "statement %d: want prefix %q, got %q", i, prefix, got[i])
	}
}

func TestAuditRepository_FailedLogKeepsSurroundingTransaction(t *testing.T) {
	db, log := newLoggedDB(t)
	repo := NewAuditRepository(db)

	err := NewTransactionManager(db).RunInTx(context.Background(), func(txCtx context.Context) error {
		logErr := repo.Log(txCtx, &model.AuditLog{Actor: strings.Repeat("x", 141), Action: model.ActionCreateVATSetting})
		assert.ErrorIs(t, logErr, errAuditInsert)

		return GetDB(txCtx, db).Exec("UPDATE companies SET tax_id = ?", "OM123").Error
	})
	require.NoError(t, err)

	assertStatements(t, log.recorded(),
		"BEGIN",
		"SAVEPOINT sp",
		`INSERT INTO "audit_logs"`,
		"ROLLBACK TO SAVEPOINT sp",
		"UPDATE companies",
		"COMMIT",
	)
}

func TestAuditRepository_LogOutsideTransaction(t *testing.T) {
	db, log := newLoggedDB(t)

	err := NewAuditRepository(db).Log(context.Background(), &model.AuditLog{Action: model.ActionCreateVATSetting})
	require.ErrorIs(t, err, errAuditInsert)

	assertStatements(t, log.recorded(), "BEGIN", `INSERT INTO "audit_logs"`, "ROLLBACK")
}
