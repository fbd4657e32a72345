package db

import (
	"context"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

func (s *DB) UpdateEmployee(ctx context.Context, id int64, patch entity.PatchEmployee) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateEmployee")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			updated_at = now()
		WHERE id = $1`,
		id, patch.FullName, patch.Phone)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// UpdatePolicyStatus records a policy decision, last write wins.
func (s *DB) UpdatePolicyStatus(ctx context.Context, id int64, status entity.PolicyStatus, acknowledged bool) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePolicyStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_employees
		SET policy_status = $2, policy_acknowledged = $3, updated_at = now()
		WHERE id = $1`,
		id, int16(status), acknowledged)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
