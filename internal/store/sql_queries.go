package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vitascope/models"
)

var (
	userColumns        = []string{"id", "username", "email", "password_hash", "is_verified"}
	measurementColumns = []string{"id", "timestamp", "device_id", "heart_rate", "spo2", "resp"}
)

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(models.User{}.TableName()).
		Columns("username", "email", "password_hash", "is_verified").
		Values(user.Username, user.Email, user.PasswordHash, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildMarkUserVerifiedQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	query, args, err := b.Update(models.User{}.TableName()).
		Set("is_verified", true).
		Where(sq.Eq{"email": email, "is_verified": false}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveMeasurementQuery(b sq.StatementBuilderType, m models.Measurement) (string, []any, error) {
	query, args, err := b.Insert(models.Measurement{}.TableName()).
		Columns("timestamp", "device_id", "heart_rate", "spo2", "resp").
		Values(m.Timestamp, m.DeviceID, m.HeartRate, m.SpO2, m.Resp).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRecentMeasurementsQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	query, args, err := b.Select(measurementColumns...).
		From(models.Measurement{}.TableName()).
		OrderBy("id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
