package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/firstlight/backend/internal/db"
	"github.com/firstlight/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type otpRepository struct {
	db *sqlx.DB
}

func newOtpRepository(db *sqlx.DB) *otpRepository {
	return &otpRepository{
		db: db,
	}
}

func (r *otpRepository) Replace(ctx context.Context, otp *domain.Otp) (int64, error) {
	const op = "repository.otp.Replace"

	const invalidateQuery = `
    UPDATE otp
    SET used = 1, used_at = ?
    WHERE email = ? AND purpose = ? AND used = 0
    `

	const insertQuery = `
    INSERT INTO otp (id, email, code, purpose, expires_at, created_at)
    VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?)
    `

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, invalidateQuery, otp.CreatedAt, otp.Email, otp.Purpose)
	if err != nil {
		return 0, fmt.Errorf("%s: invalidate existing otp failed: %w", op, err)
	}

	invalidated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	res, err = tx.ExecContext(ctx, insertQuery, otp.ID, otp.Email, otp.Code, otp.Purpose, otp.ExpiresAt, otp.CreatedAt)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return 0, domain.ErrDuplicateEntry
		}
		return 0, fmt.Errorf("%s: insert otp failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return 0, fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return invalidated, nil
}

func (r *otpRepository) Consume(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) error {
	const op = "repository.otp.Consume"

	const query = `
    UPDATE otp
    SET used = 1, used_at = ?
    WHERE email = ? AND code = ? AND purpose = ? AND used = 0 AND expires_at > ?
    ORDER BY created_at DESC
    LIMIT 1
    `

	res, err := r.db.ExecContext(ctx, query, now, email, code, purpose, now)
	if err != nil {
		return fmt.Errorf("%s: update otp failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *otpRepository) IsValid(ctx context.Context, email string, code string, purpose domain.OtpPurpose, now time.Time) (bool, error) {
	const op = "repository.otp.IsValid"

	const query = `
    SELECT COUNT(*)
    FROM otp
    WHERE email = ? AND code = ? AND purpose = ? AND used = 0 AND expires_at > ?
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, email, code, purpose, now); err != nil {
		return false, fmt.Errorf("%s: count otp failed: %w", op, err)
	}

	return count > 0, nil
}

func (r *otpRepository) CountCreatedSince(ctx context.Context, email string, since time.Time) (int, error) {
	const op = "repository.otp.CountCreatedSince"

	const query = `SELECT COUNT(*) FROM otp WHERE email = ? AND created_at > ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, email, since); err != nil {
		return 0, fmt.Errorf("%s: count otp failed: %w", op, err)
	}

	return count, nil
}

func (r *otpRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const op = "repository.otp.DeleteExpiredBefore"

	const query = `DELETE FROM otp WHERE expires_at < ?`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: delete otp failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}

func (r *otpRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	const op = "repository.otp.GetOneByID"

	const query = `
    SELECT id, email, code, purpose, used, used_at, expires_at, created_at
    FROM otp
    WHERE id = uuid_to_bin(?)
    `

	var otp domain.Otp
	if err := r.db.GetContext(ctx, &otp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp failed: %w", op, err)
	}

	return &otp, nil
}
