package db

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func setupKVMock(t *testing.T) (*PostgresBackend, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	backend := NewPostgresBackend(db)
	cleanup := func() { db.Close() }
	return backend, mock, cleanup
}

func TestGet_Found(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("tranum_trips").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	v, ok, err := backend.Get(context.Background(), "tranum_trips")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || v != `[]` {
		t.Errorf("Get = %q, %v; want %q, true", v, ok, `[]`)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("currentUser").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := backend.Get(context.Background(), "currentUser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGet_Error(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("tranum_users").
		WillReturnError(errors.New("query failed"))

	if _, _, err := backend.Get(context.Background(), "tranum_users"); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSet_Upsert(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv (key, value) VALUES ($1, $2)`)).
		WithArgs("tranum_luggage", `[{"id":"l1"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := backend.Set(context.Background(), "tranum_luggage", `[{"id":"l1"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSet_PostgresErrorNamed(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WithArgs("tranum_users", "x").
		WillReturnError(&pq.Error{Code: "42P01", Message: "relation \"kv\" does not exist"})

	err := backend.Set(context.Background(), "tranum_users", "x")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "undefined_table") {
		t.Errorf("error = %q; want SQLSTATE name", err)
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		t.Error("expected wrapped *pq.Error")
	}
}

func TestRemove(t *testing.T) {
	backend, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = $1`)).
		WithArgs("currentUser").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := backend.Remove(context.Background(), "currentUser"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
