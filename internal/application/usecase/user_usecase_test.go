package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/application/apptest"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
)

func newUserUseCase() (*usecase.UserUseCase, *apptest.Store) {
	db := apptest.NewStore()
	return usecase.NewUserUseCase(db.Users(), db.Roles(), db.TxRunner(), &apptest.Hasher{}, nil), db
}

func ptr[T any](v T) *T { return &v }

func TestCreateStaffUser_OK(t *testing.T) {
	uc, _ := newUserUseCase()
	ctx := context.Background()

	resp, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{
		Username: "vera", Password: "x", Role: entity.RoleVendedor, StoreID: ptr(int64(3)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleVendedor}, resp.Roles)
	require.NotNil(t, resp.RoleLabel)
	assert.Equal(t, entity.RoleVendedor, *resp.RoleLabel, "el cargo por defecto es el nombre del rol")

	got, err := uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleVendedor}, got.Roles)
	assert.Equal(t, ptr(int64(3)), got.StoreID)
}

func TestCreateStaffUser_CargoExplicito(t *testing.T) {
	uc, _ := newUserUseCase()

	resp, err := uc.CreateStaffUser(context.Background(), dto.CreateStaffUserRequest{
		Username: "gus", Password: "x", Role: entity.RoleGerente, RoleLabel: ptr("Jefe de turno"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jefe de turno", *resp.RoleLabel)
}

func TestCreateStaffUser_RolInvalidoNoCreaUsuario(t *testing.T) {
	for _, role := range []string{"OWNER", "ADMIN", "vendedor", ""} {
		t.Run(role, func(t *testing.T) {
			uc, db := newUserUseCase()

			_, err := uc.CreateStaffUser(context.Background(), dto.CreateStaffUserRequest{
				Username: "x", Password: "x", Role: role,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidRole)
			assert.Equal(t, 0, db.UserCount())
			assert.Zero(t, db.Mutations)
		})
	}
}

func TestCreateStaffUser_Duplicado(t *testing.T) {
	uc, db := newUserUseCase()
	ctx := context.Background()
	in := dto.CreateStaffUserRequest{Username: "vera", Password: "x", Role: entity.RoleVendedor}

	_, err := uc.CreateStaffUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.CreateStaffUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, 1, db.UserCount())
}

func TestCreateStaffUser_FalloAlAsignarRolHaceRollback(t *testing.T) {
	uc, db := newUserUseCase()
	storageErr := domain.NewStorageError("assign role", errors.New("connection reset"))
	db.Faults.Assign = storageErr

	_, err := uc.CreateStaffUser(context.Background(), dto.CreateStaffUserRequest{
		Username: "vera", Password: "x", Role: entity.RoleVendedor,
	})
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
	assert.Equal(t, 0, db.UserCount(), "no debe quedar usuario sin rol")
}

func TestCreateStaffUser_FalloAlCrearRolHaceRollback(t *testing.T) {
	uc, db := newUserUseCase()
	db.Faults.CreateRole = domain.NewStorageError("insert role", errors.New("disk full"))

	_, err := uc.CreateStaffUser(context.Background(), dto.CreateStaffUserRequest{
		Username: "vera", Password: "x", Role: entity.RoleGerente,
	})
	require.Error(t, err)
	assert.Equal(t, 0, db.UserCount())
}

func TestAssignRole_Idempotente(t *testing.T) {
	uc, db := newUserUseCase()
	ctx := context.Background()
	resp, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{Username: "vera", Password: "x", Role: entity.RoleVendedor})
	require.NoError(t, err)

	require.NoError(t, uc.AssignRole(ctx, resp.ID, entity.RoleGerente))
	require.NoError(t, uc.AssignRole(ctx, resp.ID, entity.RoleGerente))

	assert.Equal(t, 2, db.AssignmentCount(resp.ID))
	got, err := uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleGerente, entity.RoleVendedor}, got.Roles)
}

func TestAssignRole_UsuarioInexistente(t *testing.T) {
	uc, _ := newUserUseCase()
	assert.ErrorIs(t, uc.AssignRole(context.Background(), 42, entity.RoleGerente), domain.ErrUserNotFound)
}

func TestUpdateUser_SobrescribeCampos(t *testing.T) {
	uc, _ := newUserUseCase()
	ctx := context.Background()
	resp, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{
		Username: "vera", Password: "x", Role: entity.RoleVendedor, Email: ptr("v@pos.local"), StoreID: ptr(int64(1)),
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateUser(ctx, resp.ID, dto.UpdateUserRequest{RoleLabel: ptr("Cajera"), StoreID: ptr(int64(2))}))

	got, err := uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cajera", *got.RoleLabel)
	assert.Nil(t, got.Email, "un campo omitido se sobrescribe con NULL")
	assert.Equal(t, int64(2), *got.StoreID)
}

func TestUpdateUser_IDInexistenteNoEsError(t *testing.T) {
	uc, _ := newUserUseCase()
	assert.NoError(t, uc.UpdateUser(context.Background(), 999, dto.UpdateUserRequest{}))
}

func TestDeleteUser_BajaLogica(t *testing.T) {
	uc, _ := newUserUseCase()
	ctx := context.Background()
	a, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{Username: "a", Password: "x", Role: entity.RoleVendedor, StoreID: ptr(int64(7))})
	require.NoError(t, err)
	b, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{Username: "b", Password: "x", Role: entity.RoleVendedor, StoreID: ptr(int64(7))})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(ctx, a.ID))

	byStore, err := uc.GetUsersByStore(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byStore, 1)
	assert.Equal(t, b.ID, byStore[0].ID)

	all, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusInactive), got.Status)
}

func TestGetUsersByStore_OtraTienda(t *testing.T) {
	uc, _ := newUserUseCase()
	ctx := context.Background()
	_, err := uc.CreateStaffUser(ctx, dto.CreateStaffUserRequest{Username: "a", Password: "x", Role: entity.RoleVendedor, StoreID: ptr(int64(1))})
	require.NoError(t, err)

	users, err := uc.GetUsersByStore(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, users)
}
