package staff

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func profileRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "login_id", "name", "email", "phone", "address", "status", "created_at", "updated_at"}).
		AddRow(testUUID, testLoginID, "Ada Joy", "ada@example.com", "", "", "active", now, now)
}

func TestPGDirectoryFindProfileByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("from profiles where id=").WithArgs(testUUID).WillReturnRows(profileRows(t))

	dir := NewPGDirectory(db)
	profile, err := dir.FindProfileByID(context.Background(), testUUID)
	if err != nil {
		t.Fatalf("FindProfileByID: %v", err)
	}
	if profile.LoginID != testLoginID {
		t.Fatalf("unexpected login id: %s", profile.LoginID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGDirectoryFindProfileByLoginIDMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("from profiles where login_id=").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	dir := NewPGDirectory(db)
	if _, err := dir.FindProfileByLoginID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGDirectoryFindRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select role from user_roles where user_id=").
		WithArgs(testUUID).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("manager"))
	mock.ExpectQuery("select role from user_roles where user_id=").
		WithArgs("no-role").
		WillReturnError(sql.ErrNoRows)

	dir := NewPGDirectory(db)
	role, err := dir.FindRole(context.Background(), testUUID)
	if err != nil {
		t.Fatalf("FindRole: %v", err)
	}
	if role != RoleManager {
		t.Fatalf("unexpected role: %s", role)
	}

	if _, err := dir.FindRole(context.Background(), "no-role"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
