package core

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inovuslabs/certanchor/internal/model"
)

// userRow returns a pgx.Row that scans the given user into the
// userColumns destinations.
func userRow(u model.User) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*string) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(**string) = u.Mobile
		*dest[4].(**string) = u.Address
		*dest[5].(*string) = u.Role
		*dest[6].(*string) = u.Status
		*dest[7].(*time.Time) = u.CreatedAt
		*dest[8].(*time.Time) = u.UpdatedAt
		return nil
	}}
}

func TestUpsert_CreatesWithDefaults(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	db.On("QueryRow", mock.Anything, sqlContains("FROM users"), mock.Anything).Return(noRows())

	var inserted []any
	db.On("Exec", mock.Anything, sqlContains("INSERT INTO users"), mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(2).([]any) }).
		Return(pgconn.CommandTag{}, nil)

	u, err := svc.Upsert(context.Background(), UpsertUser{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, model.UserStatusActive, u.Status)
	assert.Nil(t, u.Mobile)
	require.Len(t, inserted, 9)
	assert.Equal(t, "jane@example.com", inserted[2])
	db.AssertExpectations(t)
}

func TestUpsert_RequiresNameAndEmail(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	_, err := svc.Upsert(context.Background(), UpsertUser{Email: "jane@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)
	db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsert_MergePreservesUnsetFields(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	existing := model.User{
		ID:      "user-1",
		Name:    "Old Name",
		Email:   "jane@example.com",
		Mobile:  strPtr("9999999999"),
		Address: strPtr("0x1111111111111111111111111111111111111111"),
		Role:    model.RoleIssuer,
		Status:  model.UserStatusActive,
	}
	db.On("QueryRow", mock.Anything, sqlContains("FROM users"), mock.Anything).Return(userRow(existing))

	var updated []any
	db.On("Exec", mock.Anything, sqlContains("UPDATE users"), mock.Anything).
		Run(func(args mock.Arguments) { updated = args.Get(2).([]any) }).
		Return(pgconn.CommandTag{}, nil)

	u, err := svc.Upsert(context.Background(), UpsertUser{
		Name:  "New Name",
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	// Name is last-write-wins; mobile, address and role survive.
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "9999999999", *u.Mobile)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", *u.Address)
	assert.Equal(t, model.RoleIssuer, u.Role)
	require.Len(t, updated, 7)
	assert.Equal(t, "user-1", updated[0])
	assert.Equal(t, "New Name", updated[1])
	db.AssertExpectations(t)
}

func TestUpsert_MergeOverwritesProvidedFields(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	existing := model.User{
		ID:     "user-1",
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Mobile: strPtr("9999999999"),
		Role:   model.RoleUser,
		Status: model.UserStatusActive,
	}
	db.On("QueryRow", mock.Anything, sqlContains("FROM users"), mock.Anything).Return(userRow(existing))
	db.On("Exec", mock.Anything, sqlContains("UPDATE users"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	u, err := svc.Upsert(context.Background(), UpsertUser{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Mobile: strPtr("8888888888"),
		Role:   model.RoleIssuer,
		Status: model.UserStatusInactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "8888888888", *u.Mobile)
	assert.Equal(t, model.RoleIssuer, u.Role)
	assert.Equal(t, model.UserStatusInactive, u.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	db.On("QueryRow", mock.Anything, sqlContains("FROM users"), mock.Anything).Return(noRows())

	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetManager_WritesRoleAndAddress(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	var args []any
	db.On("Exec", mock.Anything, sqlContains("UPDATE users"), mock.Anything).
		Run(func(a mock.Arguments) { args = a.Get(2).([]any) }).
		Return(pgconn.CommandTag{}, nil)

	err := svc.SetManager(context.Background(), "user-1", "0xabc")
	require.NoError(t, err)
	require.Len(t, args, 3)
	assert.Equal(t, "user-1", args[0])
	assert.Equal(t, model.RoleIssuer, args[1])
	assert.Equal(t, "0xabc", args[2])
}

func TestClearManager_ResetsRole(t *testing.T) {
	db := &mockDB{}
	svc := NewUserService(db)

	var args []any
	db.On("Exec", mock.Anything, sqlContains("address = NULL"), mock.Anything).
		Run(func(a mock.Arguments) { args = a.Get(2).([]any) }).
		Return(pgconn.CommandTag{}, nil)

	err := svc.ClearManager(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, model.RoleUser, args[1])
}
