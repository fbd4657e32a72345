package db

import (
	"context"
	"time"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

// ClaimChallengeSlot atomically consumes one daily dispatch slot. The counter
// resets when the previous dispatch happened before dayStart. Returns false
// without error when the employee already used maxPerDay slots today.
func (s *DB) ClaimChallengeSlot(ctx context.Context, id int64, dayStart, now time.Time, maxPerDay int32) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ClaimChallengeSlot")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET challenge_count = CASE
				WHEN last_challenge_at IS NULL OR last_challenge_at < $2 THEN 1
				ELSE challenge_count + 1
			END,
			last_challenge_at = $3,
			updated_at = now()
		WHERE id = $1
		  AND (last_challenge_at IS NULL OR last_challenge_at < $2 OR challenge_count < $4)`,
		id, dayStart, now, maxPerDay)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

// ReleaseChallengeSlot returns a previously claimed slot, used when the
// dispatch that consumed it failed.
func (s *DB) ReleaseChallengeSlot(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ReleaseChallengeSlot")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET challenge_count = GREATEST(challenge_count - 1, 0), updated_at = now()
		WHERE id = $1`, id)

	return s.mapError(err)
}

func (s *DB) StoreChallenge(ctx context.Context, id int64, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "StoreChallenge")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET challenge_kind = $2, challenge_secret = $3, challenge_expires_at = $4,
			updated_at = now()
		WHERE id = $1`,
		id, int16(ch.Kind), ch.Secret, ch.ExpiresAt)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ClearChallenge removes the active challenge. Returns false when no
// challenge was present, which happens when a concurrent verify won.
func (s *DB) ClearChallenge(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ClearChallenge")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET challenge_kind = NULL, challenge_secret = NULL, challenge_expires_at = NULL,
			updated_at = now()
		WHERE id = $1 AND challenge_secret IS NOT NULL`, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
