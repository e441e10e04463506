package employees_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	mocks "github.com/UnknownOlympus/hestia/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStaff(t *testing.T) (*employees.Staff, *mocks.EmployeeRepoIface, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockRepo := mocks.NewEmployeeRepoIface(t)
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return employees.NewStaff(logger, mockRepo, testMetrics), mockRepo, testMetrics
}

func TestNewStaff(t *testing.T) {
	t.Parallel()

	s, _, _ := newStaff(t)

	assert.NotNil(t, s)
}

func TestSaveEmployee(t *testing.T) {
	t.Parallel()

	employee := models.Employee{FirstName: "vikas", LastName: "kumar", Email: "vikas@gmail.com"}

	t.Run("should save a new employee", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, testMetrics := newStaff(t)

		saved := employee
		saved.ID = 1

		mockRepo.On("FindByEmail", mock.Anything, employee.Email).
			Return(models.Employee{}, repository.ErrNotFound).Once()
		mockRepo.On("Save", mock.Anything, employee).Return(saved, nil).Once()

		result, err := staff.SaveEmployee(t.Context(), employee)

		require.NoError(t, err)
		assert.Positive(t, result.ID)
		assert.Equal(t, employee.FirstName, result.FirstName)
		assert.Equal(t, employee.LastName, result.LastName)
		assert.Equal(t, employee.Email, result.Email)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeesCreated), 0)
	})

	t.Run("should reject a duplicate email without writing", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, testMetrics := newStaff(t)

		existing := employee
		existing.ID = 1

		mockRepo.On("FindByEmail", mock.Anything, employee.Email).Return(existing, nil).Once()

		_, err := staff.SaveEmployee(t.Context(), employee)

		require.ErrorIs(t, err, employees.ErrEmployeeExists)
		assert.Contains(t, err.Error(), employee.Email)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.DuplicateEmails), 0)
	})

	t.Run("should report a duplicate lost to a concurrent writer", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindByEmail", mock.Anything, employee.Email).
			Return(models.Employee{}, repository.ErrNotFound).Once()
		mockRepo.On("Save", mock.Anything, employee).
			Return(models.Employee{}, fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, employee.Email)).Once()

		_, err := staff.SaveEmployee(t.Context(), employee)

		require.ErrorIs(t, err, employees.ErrEmployeeExists)
	})

	t.Run("should propagate lookup errors without writing", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindByEmail", mock.Anything, employee.Email).
			Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.SaveEmployee(t.Context(), employee)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to check employee email")
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should propagate save errors", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindByEmail", mock.Anything, employee.Email).
			Return(models.Employee{}, repository.ErrNotFound).Once()
		mockRepo.On("Save", mock.Anything, employee).Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.SaveEmployee(t.Context(), employee)

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, employees.ErrEmployeeExists)
	})
}

func TestGetAllEmployees(t *testing.T) {
	t.Parallel()

	t.Run("should return every employee", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		list := []models.Employee{
			{ID: 1, FirstName: "Vikas", LastName: "kumar", Email: "vikas@gmail.com"},
			{ID: 2, FirstName: "Ramesh", LastName: "Fadatare", Email: "ramesh@gmail.com"},
		}
		mockRepo.On("FindAll", mock.Anything).Return(list, nil).Once()

		result, err := staff.GetAllEmployees(t.Context())

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, list, result)
	})

	t.Run("should return an empty list", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindAll", mock.Anything).Return([]models.Employee{}, nil).Once()

		result, err := staff.GetAllEmployees(t.Context())

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should propagate errors", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindAll", mock.Anything).Return(nil, assert.AnError).Once()

		_, err := staff.GetAllEmployees(t.Context())

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestGetEmployeeByID(t *testing.T) {
	t.Parallel()

	t.Run("should return the employee", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		expected := models.Employee{ID: 1, FirstName: "vikas", LastName: "kumar", Email: "vikas@gmail.com"}
		mockRepo.On("FindByID", mock.Anything, int64(1)).Return(expected, nil).Once()

		employee, ok, err := staff.GetEmployeeByID(t.Context(), 1)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, expected, employee)
	})

	t.Run("should report absence without error", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindByID", mock.Anything, int64(999)).
			Return(models.Employee{}, fmt.Errorf("failed to get employee by id: %w", repository.ErrNotFound)).Once()

		employee, ok, err := staff.GetEmployeeByID(t.Context(), 999)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, models.Employee{}, employee)
	})

	t.Run("should propagate store errors", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("FindByID", mock.Anything, int64(1)).Return(models.Employee{}, assert.AnError).Once()

		_, ok, err := staff.GetEmployeeByID(t.Context(), 1)

		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
	})
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	updated := models.Employee{ID: 1, FirstName: "Ram", LastName: "Fadatare", Email: "ram@gmail.com"}

	t.Run("should overwrite the employee and keep the id", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("Save", mock.Anything, updated).Return(updated, nil).Once()

		result, err := staff.UpdateEmployee(t.Context(), updated)

		require.NoError(t, err)
		assert.Equal(t, updated, result)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("should report an email taken by another employee", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("Save", mock.Anything, updated).
			Return(models.Employee{}, fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, updated.Email)).Once()

		_, err := staff.UpdateEmployee(t.Context(), updated)

		require.ErrorIs(t, err, employees.ErrEmployeeExists)
	})

	t.Run("should propagate errors", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("Save", mock.Anything, updated).Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.UpdateEmployee(t.Context(), updated)

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	t.Run("should delete", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("DeleteByID", mock.Anything, int64(1)).Return(nil).Once()

		require.NoError(t, staff.DeleteEmployee(t.Context(), 1))
	})

	t.Run("should propagate errors", func(t *testing.T) {
		t.Parallel()
		staff, mockRepo, _ := newStaff(t)

		mockRepo.On("DeleteByID", mock.Anything, int64(1)).Return(assert.AnError).Once()

		err := staff.DeleteEmployee(t.Context(), 1)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to delete employee 1")
	})
}
