package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/application/apptest"
	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	db     *apptest.Store
	hasher *apptest.Hasher
	uc     *auth.AuthUseCase
}

func newFixture(t *testing.T, opts auth.Options) *fixture {
	t.Helper()
	db := apptest.NewStore()
	h := &apptest.Hasher{}
	uc := auth.NewAuthUseCase(
		db.Users(), db.Roles(), db.TxRunner(), h,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "pos-core-test"},
		opts, nil, nil,
	)
	return &fixture{db: db, hasher: h, uc: uc}
}

func (f *fixture) seed(t *testing.T, username, password string, status entity.Status) int64 {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	return f.db.SeedUser(entity.User{Username: username, PasswordHash: hash, Status: status})
}

// ──────────────────────────────────────────────────────────────────────────────
// InitializeAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestInitializeAdmin_BaseVaciaCreaAdmin(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	require.NoError(t, f.uc.InitializeAdmin(ctx))

	admin, err := f.db.Users().GetByUsername(ctx, auth.AdminUsername)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.StatusActive, admin.Status)

	roles, err := f.db.Roles().ListNamesByUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin}, roles)
}

func TestInitializeAdmin_Idempotente(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	require.NoError(t, f.uc.InitializeAdmin(ctx))
	mutations := f.db.Mutations

	require.NoError(t, f.uc.InitializeAdmin(ctx))
	assert.Equal(t, mutations, f.db.Mutations, "la segunda ejecución no debe escribir")
	assert.Equal(t, 1, f.db.UserCount())
}

func TestInitializeAdmin_ConUsuariosExistentesNoCreaAdmin(t *testing.T) {
	f := newFixture(t, auth.Options{})
	f.seed(t, "cajero", "x", entity.StatusActive)

	require.NoError(t, f.uc.InitializeAdmin(context.Background()))

	admin, err := f.db.Users().GetByUsername(context.Background(), auth.AdminUsername)
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestInitializeAdmin_FalloEnAsignacionNoDejaUsuario(t *testing.T) {
	f := newFixture(t, auth.Options{})
	f.db.Faults.Assign = errors.New("boom")

	err := f.uc.InitializeAdmin(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, f.db.UserCount())
}

func TestInitializeAdmin_ContrasenaConfigurada(t *testing.T) {
	f := newFixture(t, auth.Options{AdminPassword: "s3cret"})
	ctx := context.Background()
	require.NoError(t, f.uc.InitializeAdmin(ctx))

	_, err := f.uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AdminRootTrasArranque(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()
	require.NoError(t, f.uc.InitializeAdmin(ctx))

	resp, err := f.uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "root"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, []string{entity.RoleAdmin}, resp.User.Roles)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{entity.RoleAdmin}, claims.Roles)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newFixture(t, auth.Options{})

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	tests := []struct {
		name   string
		status entity.Status
	}{
		{name: "activo", status: entity.StatusActive},
		{name: "inactivo", status: entity.StatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, auth.Options{})
			f.seed(t, "ana", "correcta", tt.status)

			_, err := f.uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "mala"})
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestLogin_CuentaInactiva(t *testing.T) {
	f := newFixture(t, auth.Options{})
	f.seed(t, "ana", "correcta", entity.StatusInactive)

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestLogin_CuentaInactivaPermitidaPorConfiguracion(t *testing.T) {
	f := newFixture(t, auth.Options{AllowInactiveLogin: true})
	f.seed(t, "ana", "correcta", entity.StatusInactive)

	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "correcta"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusInactive), resp.User.Status)
}

func TestLogin_FalloDelHasher(t *testing.T) {
	f := newFixture(t, auth.Options{})
	f.seed(t, "ana", "correcta", entity.StatusActive)
	f.hasher.VerifyErr = errors.New("hash corrupto")

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrHashing)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateUser / GetUsers
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_OK(t *testing.T) {
	f := newFixture(t, auth.Options{})
	email := "ana@pos.local"

	resp, err := f.uc.CreateUser(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "x", Email: &email})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, &email, resp.Email)
	assert.Equal(t, string(entity.StatusActive), resp.Status)
	assert.Empty(t, resp.Roles)
}

func TestCreateUser_DuplicadoAunqueEsteDadoDeBaja(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	resp, err := f.uc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Password: "x"})
	require.NoError(t, err)
	require.NoError(t, f.db.Users().SoftDelete(ctx, resp.ID))

	_, err = f.uc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, 1, f.db.UserCount())
}

func TestCreateUser_FalloDelHasher(t *testing.T) {
	f := newFixture(t, auth.Options{})
	f.hasher.HashErr = errors.New("sin entropía")

	_, err := f.uc.CreateUser(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrHashing)
	assert.Equal(t, 0, f.db.UserCount())
}

func TestGetUsers_SoloActivosConRoles(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()
	require.NoError(t, f.uc.InitializeAdmin(ctx))
	f.seed(t, "baja", "x", entity.StatusInactive)

	users, err := f.uc.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, []string{entity.RoleAdmin}, users[0].Roles)
}

func TestListActiveUsers_MismoResultadoQueGetUsers(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()
	require.NoError(t, f.uc.InitializeAdmin(ctx))
	uid := f.seed(t, "vera", "x", entity.StatusActive)
	require.NoError(t, auth.AssignRole(ctx, f.db.Roles(), uid, entity.RoleVendedor))

	users, err := auth.ListActiveUsers(ctx, f.db.Users(), f.db.Roles())
	require.NoError(t, err)
	resp, err := f.uc.GetUsers(ctx)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, dto.ToUserResponses(users), resp)
	assert.Equal(t, []string{entity.RoleVendedor}, users[1].Roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyPassword(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()
	require.NoError(t, f.uc.InitializeAdmin(ctx))
	login, err := f.uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "root"})
	require.NoError(t, err)
	id := auth.Identity{UserID: login.User.ID, Username: "admin", Roles: login.User.Roles}

	ok, err := f.uc.VerifyPassword(ctx, id, "root")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.uc.VerifyPassword(ctx, id, "otra")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_SinRolAdmin(t *testing.T) {
	f := newFixture(t, auth.Options{})
	uid := f.seed(t, "vendedor", "x", entity.StatusActive)

	_, err := f.uc.VerifyPassword(context.Background(), auth.Identity{UserID: uid, Roles: []string{entity.RoleVendedor}}, "x")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerifyPassword_UsuarioInexistente(t *testing.T) {
	f := newFixture(t, auth.Options{})

	_, err := f.uc.VerifyPassword(context.Background(), auth.Identity{UserID: 99, Roles: []string{entity.RoleAdmin}}, "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerifyPassword_CuentaInactiva(t *testing.T) {
	f := newFixture(t, auth.Options{})
	uid := f.seed(t, "jefe", "secreta", entity.StatusInactive)
	id := auth.Identity{UserID: uid, Username: "jefe", Roles: []string{entity.RoleAdmin}}

	ok, err := f.uc.VerifyPassword(context.Background(), id, "secreta")
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
	assert.False(t, ok)
}

func TestVerifyPassword_CuentaInactivaPermitida(t *testing.T) {
	f := newFixture(t, auth.Options{AllowInactiveLogin: true})
	uid := f.seed(t, "jefe", "secreta", entity.StatusInactive)
	id := auth.Identity{UserID: uid, Username: "jefe", Roles: []string{entity.RoleAdmin}}

	ok, err := f.uc.VerifyPassword(context.Background(), id, "secreta")
	require.NoError(t, err)
	assert.True(t, ok)
}
