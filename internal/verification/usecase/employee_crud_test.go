package usecase

import (
	"context"
	"testing"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

func TestEmployeeList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")
		h.repo.getEmployeeList = func(_ context.Context, limit, offset int32) ([]entity.Employee, error) {
			if limit != 0 || offset != 0 {
				t.Fatalf("expected unpaged listing, got limit=%d offset=%d", limit, offset)
			}
			return []entity.Employee{*registeredEmployee()}, nil
		}

		// Act
		out, err := h.uc.EmployeeList(ctx, EmployeeListInput{})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Employees) != 1 || out.Employees[0].ID != 7 {
			t.Fatalf("unexpected employees %+v", out.Employees)
		}
	})

	t.Run("PagedListing", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		var gotLimit, gotOffset int32
		h.repo.getEmployeeList = func(_ context.Context, limit, offset int32) ([]entity.Employee, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		}

		// Act
		_, err := h.uc.EmployeeList(ctx, EmployeeListInput{Limit: 25, Offset: 50})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != 25 || gotOffset != 50 {
			t.Fatalf("expected limit=25 offset=50, got limit=%d offset=%d", gotLimit, gotOffset)
		}
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		// Act
		_, err := h.uc.EmployeeList(ctx, EmployeeListInput{Offset: -1})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("EmployeeRoleForbidden", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		// Act
		_, err := h.uc.EmployeeList(ctx, EmployeeListInput{})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}

func TestEmployeeCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		var created entity.NewEmployee
		h.repo.createEmployee = func(_ context.Context, emp entity.NewEmployee) error {
			created = emp
			return nil
		}

		// Act
		out, err := h.uc.EmployeeCreate(ctx, EmployeeCreateInput{
			FullName: "  Ravi Kumar ",
			Phone:    "+91 91234-56789",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.FullName != "Ravi Kumar" {
			t.Fatalf("expected trimmed name, got %q", created.FullName)
		}
		if created.Phone != "9123456789" {
			t.Fatalf("expected normalized phone, got %q", created.Phone)
		}
		if out.ID == 0 || out.ID != created.ID {
			t.Fatalf("expected generated id returned, got %d vs %d", out.ID, created.ID)
		}
	})

	t.Run("DuplicatePhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")
		h.repo.createEmployee = func(context.Context, entity.NewEmployee) error {
			return goerror.ErrConflict
		}

		// Act
		_, err := h.uc.EmployeeCreate(ctx, EmployeeCreateInput{
			FullName: "Ravi Kumar",
			Phone:    "9123456789",
		})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("InvalidName", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		// Act
		_, err := h.uc.EmployeeCreate(ctx, EmployeeCreateInput{
			FullName: "R4v1!",
			Phone:    "9123456789",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("EmployeeRoleForbidden", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		// Act
		_, err := h.uc.EmployeeCreate(ctx, EmployeeCreateInput{
			FullName: "Ravi Kumar",
			Phone:    "9123456789",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}

func TestEmployeeUpdate(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		var patched entity.PatchEmployee
		h.repo.updateEmployee = func(_ context.Context, id int64, patch entity.PatchEmployee) error {
			if id != 7 {
				t.Fatalf("expected update for employee 7, got %d", id)
			}
			patched = patch
			return nil
		}

		name := "Asha R Rao"

		// Act
		err := h.uc.EmployeeUpdate(ctx, EmployeeUpdateInput{ID: 7, FullName: &name})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patched.FullName == nil || *patched.FullName != "Asha R Rao" {
			t.Fatalf("expected name patch, got %+v", patched)
		}
		if patched.Phone != nil {
			t.Fatalf("expected phone untouched, got %+v", patched.Phone)
		}
	})

	t.Run("NothingToUpdate", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		// Act
		err := h.uc.EmployeeUpdate(ctx, EmployeeUpdateInput{ID: 7})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")
		h.repo.updateEmployee = func(context.Context, int64, entity.PatchEmployee) error {
			return goerror.ErrNotFound
		}

		name := "Asha R Rao"

		// Act
		err := h.uc.EmployeeUpdate(ctx, EmployeeUpdateInput{ID: 99, FullName: &name})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}

func TestEmployeeDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		var deletedID int64
		h.repo.deleteEmployee = func(_ context.Context, id int64) error {
			deletedID = id
			return nil
		}

		// Act
		err := h.uc.EmployeeDelete(ctx, EmployeeDeleteInput{ID: 7})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deletedID != 7 {
			t.Fatalf("expected delete for employee 7, got %d", deletedID)
		}
	})

	t.Run("EmployeeRoleForbidden", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		// Act
		err := h.uc.EmployeeDelete(ctx, EmployeeDeleteInput{ID: 7})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}
