package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

const employeeColumns = `id, full_name, phone, challenge_kind, challenge_secret,
	challenge_expires_at, challenge_count, last_challenge_at, policy_status,
	policy_acknowledged, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var (
		emp       entity.Employee
		kind      *int16
		secret    *string
		expiresAt *time.Time
		status    int16
	)

	err := row.Scan(&emp.ID, &emp.FullName, &emp.Phone, &kind, &secret,
		&expiresAt, &emp.ChallengeCount, &emp.LastChallengeAt, &status,
		&emp.PolicyAcknowledged, &emp.UpdatedAt)
	if err != nil {
		return nil, err
	}

	emp.PolicyStatus = entity.PolicyStatus(status)
	if secret != nil && kind != nil && expiresAt != nil {
		emp.Challenge = &entity.Challenge{
			Kind:      entity.ChallengeKind(*kind),
			Secret:    *secret,
			ExpiresAt: *expiresAt,
		}
	}

	return &emp, nil
}

func (s *DB) GetEmployeeByPhone(ctx context.Context, phone string) (_ *entity.Employee, err error) {
	ctx, span := s.startSpan(ctx, "GetEmployeeByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM verification_employees WHERE phone = $1`, phone)

	emp, err := scanEmployee(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return emp, nil
}

func (s *DB) GetEmployeeByID(ctx context.Context, id int64) (_ *entity.Employee, err error) {
	ctx, span := s.startSpan(ctx, "GetEmployeeByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM verification_employees WHERE id = $1`, id)

	emp, err := scanEmployee(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return emp, nil
}

// GetEmployeeList returns employees ordered by name. A zero limit returns
// the whole directory.
func (s *DB) GetEmployeeList(ctx context.Context, limit, offset int32) (_ []entity.Employee, err error) {
	ctx, span := s.startSpan(ctx, "GetEmployeeList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+employeeColumns+` FROM verification_employees
		 ORDER BY full_name, id LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var emps []entity.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		emps = append(emps, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return emps, nil
}

func (s *DB) GetAdminByUsername(ctx context.Context, username string) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByUsername")
	defer func() { s.endSpan(span, err) }()

	var adm entity.Admin
	err = s.conn.QueryRow(ctx,
		`SELECT id, username, password FROM verification_admins WHERE username = $1`, username).
		Scan(&adm.ID, &adm.Username, &adm.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &adm, nil
}
