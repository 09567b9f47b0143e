// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/models"
)

func Test_buildCreateUserQuery(t *testing.T) {
	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	query, args, err := buildCreateUserQuery(statementBuilder(config.DriverPostgres), user)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO users (username,email,password_hash,is_verified) VALUES ($1,$2,$3,$4) RETURNING id",
		query)
	assert.Equal(t, []any{"alice", "alice@example.com", "hash", false}, args)
}

func Test_buildCreateUserQuery_SQLitePlaceholders(t *testing.T) {
	query, _, err := buildCreateUserQuery(statementBuilder(config.DriverSQLite), models.User{})
	require.NoError(t, err)

	assert.Contains(t, query, "VALUES (?,?,?,?)")
	assert.NotContains(t, query, "$1")
}

func Test_buildFindUserQuery(t *testing.T) {
	tests := []struct {
		name     string
		where    sq.Eq
		wantCond string
		wantArg  any
	}{
		{name: "by username", where: sq.Eq{"username": "alice"}, wantCond: "WHERE username = $1", wantArg: "alice"},
		{name: "by email", where: sq.Eq{"email": "a@b.c"}, wantCond: "WHERE email = $1", wantArg: "a@b.c"},
		{name: "by id", where: sq.Eq{"id": int64(7)}, wantCond: "WHERE id = $1", wantArg: int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindUserQuery(statementBuilder(config.DriverPostgres), tt.where)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "SELECT id, username, email, password_hash, is_verified FROM users"))
			assert.Contains(t, query, tt.wantCond)
			assert.Contains(t, query, "LIMIT 1")
			assert.Equal(t, []any{tt.wantArg}, args)
		})
	}
}

func Test_buildMarkUserVerifiedQuery(t *testing.T) {
	query, args, err := buildMarkUserVerifiedQuery(statementBuilder(config.DriverSQLite), "a@b.c")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET is_verified = ? WHERE email = ? AND is_verified = ?", query)
	assert.Equal(t, []any{true, "a@b.c", false}, args)
}

func Test_buildListUsersQuery(t *testing.T) {
	query, args, err := buildListUsersQuery(statementBuilder(config.DriverSQLite))
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, username, email, password_hash, is_verified FROM users ORDER BY id", query)
	assert.Empty(t, args)
}

func Test_buildSaveMeasurementQuery(t *testing.T) {
	m := models.Measurement{Timestamp: "2026-01-02 03:04:05", DeviceID: "dev", HeartRate: 70, SpO2: 98, Resp: 16}

	query, args, err := buildSaveMeasurementQuery(statementBuilder(config.DriverPostgres), m)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO measurements (timestamp,device_id,heart_rate,spo2,resp) VALUES ($1,$2,$3,$4,$5) RETURNING id",
		query)
	assert.Equal(t, []any{"2026-01-02 03:04:05", "dev", 70, 98, 16}, args)
}

func Test_buildRecentMeasurementsQuery(t *testing.T) {
	query, args, err := buildRecentMeasurementsQuery(statementBuilder(config.DriverSQLite), 100)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, timestamp, device_id, heart_rate, spo2, resp FROM measurements ORDER BY id DESC LIMIT 100",
		query)
	assert.Empty(t, args)
}
