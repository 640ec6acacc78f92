package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListVisibleToUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListDefaults(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func TestExpenseService_Create(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()
	categoryID := uuid.New()
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	input := func(amount string) ExpenseInput {
		return ExpenseInput{
			CategoryID:  categoryID,
			Amount:      decimal.RequireFromString(amount),
			Description: "lunch",
			Date:        date,
		}
	}

	tests := []struct {
		name          string
		input         ExpenseInput
		setupMock     func(*MockExpenseRepository, *MockCategoryRepository, *MockActivityService)
		expectedError error
	}{
		{
			name:  "shared default category",
			input: input("12.50"),
			setupMock: func(mExpenses *MockExpenseRepository, mCategories *MockCategoryRepository, mActivity *MockActivityService) {
				mCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID: categoryID, IsDefault: true,
				}, nil)
				mExpenses.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
		},
		{
			name:  "own custom category",
			input: input("12.50"),
			setupMock: func(mExpenses *MockExpenseRepository, mCategories *MockCategoryRepository, mActivity *MockActivityService) {
				mCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID: categoryID, UserID: &userID,
				}, nil)
				mExpenses.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)
				mActivity.On("Log", mock.Anything, mock.Anything).Return()
			},
		},
		{
			// Another user's private category behaves like a missing one.
			name:  "foreign category looks missing",
			input: input("12.50"),
			setupMock: func(mExpenses *MockExpenseRepository, mCategories *MockCategoryRepository, mActivity *MockActivityService) {
				mCategories.On("FindByID", mock.Anything, categoryID).Return(&model.Category{
					ID: categoryID, UserID: &otherUserID,
				}, nil)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:  "unknown category",
			input: input("12.50"),
			setupMock: func(mExpenses *MockExpenseRepository, mCategories *MockCategoryRepository, mActivity *MockActivityService) {
				mCategories.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:          "zero amount",
			input:         input("0"),
			setupMock:     func(mExpenses *MockExpenseRepository, mCategories *MockCategoryRepository, mActivity *MockActivityService) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExpenses := new(MockExpenseRepository)
			mockCategories := new(MockCategoryRepository)
			mockActivity := new(MockActivityService)
			tt.setupMock(mockExpenses, mockCategories, mockActivity)

			service := NewExpenseService(mockExpenses, mockCategories, mockActivity)
			expense, err := service.Create(context.Background(), userID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, expense)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, expense)
				assert.Equal(t, userID, expense.UserID)
				assert.True(t, expense.Amount.Equal(tt.input.Amount))
			}

			mockExpenses.AssertExpectations(t)
			mockCategories.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Delete_MissingRow(t *testing.T) {
	userID := uuid.New()
	expenseID := uuid.New()

	mockExpenses := new(MockExpenseRepository)
	mockCategories := new(MockCategoryRepository)
	mockActivity := new(MockActivityService)
	mockExpenses.On("Delete", mock.Anything, expenseID, userID).Return(gorm.ErrRecordNotFound)

	service := NewExpenseService(mockExpenses, mockCategories, mockActivity)
	err := service.Delete(context.Background(), userID, expenseID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockExpenses.AssertExpectations(t)
}
