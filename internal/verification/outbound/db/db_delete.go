package db

import "context"

// DeleteEmployee removes an employee. Deleting a missing employee is not an
// error so retries stay idempotent.
func (s *DB) DeleteEmployee(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteEmployee")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM verification_employees WHERE id = $1`, id)

	return s.mapError(err)
}
