package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a sqlmock connection as a postgres [DB].
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		driver:             config.DriverPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var userRowColumns = []string{"id", "username", "email", "password_hash", "is_verified"}

const (
	insertUserSQL = `INSERT INTO users (username,email,password_hash,is_verified) VALUES ($1,$2,$3,$4) RETURNING id`
	selectUserSQL = `SELECT id, username, email, password_hash, is_verified FROM users WHERE `
	verifyUserSQL = `UPDATE users SET is_verified = $1 WHERE email = $2 AND is_verified = $3`
	listUsersSQL  = `SELECT id, username, email, password_hash, is_verified FROM users ORDER BY id`
)

// ── CreateUser ────────────────────────────────────────────────────────────────

// TestCreateUser_Success verifies that the returned user carries the id
// produced by RETURNING and is unverified.
func TestCreateUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("alice", "alice@example.com", "hash", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	created, err := repo.CreateUser(testContext(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "alice", created.Username)
	assert.False(t, created.IsVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateUser_UniqueViolations verifies the mapping of constraint names
// to domain errors.
func TestCreateUser_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "username", constraint: "users_username_key", want: ErrUsernameAlreadyExists},
		{name: "email", constraint: "users_email_key", want: ErrEmailAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

			mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
				WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: tt.constraint})

			_, err := repo.CreateUser(testContext(), models.User{Username: "alice"})

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestCreateUser_RetriesTransientErrors verifies that a serialization
// failure is retried and the second attempt wins.
func TestCreateUser_RetriesTransientErrors(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	created, err := repo.CreateUser(testContext(), models.User{Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), created.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateUser_UnexpectedDBError verifies that other failures are wrapped
// and not retried.
func TestCreateUser_UnexpectedDBError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(testContext(), models.User{Username: "alice"})

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Find* ─────────────────────────────────────────────────────────────────────

func TestFindUser(t *testing.T) {
	tests := []struct {
		name  string
		where string
		arg   any
		call  func(r UserRepository) (models.User, error)
	}{
		{
			name: "by username", where: "username = $1", arg: "alice",
			call: func(r UserRepository) (models.User, error) { return r.FindUserByUsername(testContext(), "alice") },
		},
		{
			name: "by email", where: "email = $1", arg: "alice@example.com",
			call: func(r UserRepository) (models.User, error) {
				return r.FindUserByEmail(testContext(), "alice@example.com")
			},
		},
		{
			name: "by id", where: "id = $1", arg: int64(3),
			call: func(r UserRepository) (models.User, error) { return r.FindUserByID(testContext(), 3) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

			mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL + tt.where + " LIMIT 1")).
				WithArgs(tt.arg).
				WillReturnRows(sqlmock.NewRows(userRowColumns).
					AddRow(int64(3), "alice", "alice@example.com", "hash", true))

			user, err := tt.call(repo)

			require.NoError(t, err)
			assert.Equal(t, models.User{
				UserID: 3, Username: "alice", Email: "alice@example.com", PasswordHash: "hash", IsVerified: true,
			}, user)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindUser_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByUsername(testContext(), "ghost")

	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUser_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindUserByEmail(testContext(), "a@b.c")

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrNoUserWasFound)
}

// ── MarkUserVerified ──────────────────────────────────────────────────────────

// TestMarkUserVerified verifies that the affected row count decides whether
// the activation was applied.
func TestMarkUserVerified(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "applied", affected: 1, want: true},
		{name: "already verified or missing", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

			mock.ExpectExec(regexp.QuoteMeta(verifyUserSQL)).
				WithArgs(true, "a@b.c", false).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			applied, err := repo.MarkUserVerified(testContext(), "a@b.c")

			require.NoError(t, err)
			assert.Equal(t, tt.want, applied)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarkUserVerified_Error(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(verifyUserSQL)).
		WillReturnError(errors.New("disk full"))

	applied, err := repo.MarkUserVerified(testContext(), "a@b.c")

	assert.False(t, applied)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

// ── ListUsers ─────────────────────────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listUsersSQL)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice", "alice@example.com", "h1", true).
			AddRow(int64(2), "bob", "bob@example.com", "h2", false))

	users, err := repo.ListUsers(testContext())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.False(t, users[1].IsVerified)
}

func TestListUsers_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listUsersSQL)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := repo.ListUsers(testContext())

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestListUsers_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listUsersSQL)).
		WillReturnError(errors.New("boom"))

	_, err := repo.ListUsers(testContext())

	assert.ErrorIs(t, err, ErrExecutingQuery)
}
