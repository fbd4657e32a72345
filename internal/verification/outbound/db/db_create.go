package db

import (
	"context"

	"github.com/staffgate/staffgate/internal/verification/entity"
)

func (s *DB) CreateEmployee(ctx context.Context, emp entity.NewEmployee) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEmployee")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO verification_employees (id, full_name, phone, policy_status)
		VALUES ($1, $2, $3, $4)`,
		emp.ID, emp.FullName, emp.Phone, int16(entity.PolicyStatusPending))

	return s.mapError(err)
}
