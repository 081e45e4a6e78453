package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
	"github.com/jhoicas/pos-core/pkg/jwt"
	"github.com/jhoicas/pos-core/pkg/logger"
	"github.com/jhoicas/pos-core/pkg/metrics"
)

// AdminUsername nombre del usuario creado en el arranque sobre una base vacía.
const AdminUsername = "admin"

// DefaultAdminPassword contraseña inicial del administrador si no se configura otra.
const DefaultAdminPassword = "root"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Options políticas configurables de autenticación.
type Options struct {
	AdminPassword      string
	AllowInactiveLogin bool
}

// AuthUseCase casos de uso de autenticación: arranque del admin, login, alta y re-verificación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	txRunner TxRunner
	hasher   PasswordHasher
	jwtCfg   JWTConfig
	opts     Options
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewAuthUseCase construye el caso de uso de auth. log y m pueden ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	txRunner TxRunner,
	hasher PasswordHasher,
	jwtCfg JWTConfig,
	opts Options,
	log *logger.Logger,
	m *metrics.Metrics,
) *AuthUseCase {
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		txRunner: txRunner,
		hasher:   hasher,
		jwtCfg:   jwtCfg,
		opts:     opts,
		log:      log.Component("auth"),
		metrics:  m,
	}
}

// InitializeAdmin garantiza el rol ADMIN y, si no hay ningún usuario, crea admin con la
// contraseña inicial y le asigna ADMIN. Todo ocurre en una sola transacción; sobre una
// base ya inicializada no escribe nada.
func (uc *AuthUseCase) InitializeAdmin(ctx context.Context) error {
	created := false
	err := uc.txRunner.Run(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		role, err := EnsureRole(ctx, roleRepo, entity.RoleAdmin)
		if err != nil {
			return err
		}
		count, err := userRepo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		hash, err := uc.hasher.Hash(uc.opts.AdminPassword)
		if err != nil {
			return domain.HashingError(err)
		}
		label := entity.RoleAdmin
		admin := &entity.User{
			Username:     AdminUsername,
			PasswordHash: hash,
			RoleLabel:    &label,
			Status:       entity.StatusActive,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		if err := roleRepo.Assign(ctx, admin.ID, role.ID); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("initialize admin: %w", err)
	}
	if created {
		uc.metrics.ObserveBootstrap()
		uc.log.Warn().Str("username", AdminUsername).Msg("usuario administrador inicial creado; cambie la contraseña")
	} else {
		uc.log.Debug().Msg("base ya inicializada, se omite el admin inicial")
	}
	return nil
}

// Login verifica usuario/contraseña y devuelve el usuario (sin hash) con su JWT de sesión.
// La contraseña se compara antes de mirar el estado: una cuenta inactiva con contraseña
// incorrecta recibe ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return nil, err
	}
	if user == nil {
		uc.metrics.ObserveLogin(metrics.LoginUserNotFound)
		uc.log.Info().Str("username", in.Username).Msg("login: usuario no encontrado")
		return nil, domain.ErrUserNotFound
	}
	ok, err := uc.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: hash ilegible")
		return nil, domain.HashingError(err)
	}
	if !ok {
		uc.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
		uc.log.Info().Int64("user_id", user.ID).Msg("login: contraseña incorrecta")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Status.IsActive() && !uc.opts.AllowInactiveLogin {
		uc.metrics.ObserveLogin(metrics.LoginInactive)
		uc.log.Info().Int64("user_id", user.ID).Msg("login: cuenta inactiva")
		return nil, domain.ErrAccountInactive
	}

	roles, err := uc.roleRepo.ListNamesByUser(ctx, user.ID)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return nil, err
	}
	user.Roles = roles

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return nil, fmt.Errorf("generate token: %w", err)
	}
	uc.metrics.ObserveLogin(metrics.LoginSuccess)
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// CreateUser crea un usuario activo sin roles. El username debe ser único entre todas las
// filas, incluidas las dadas de baja.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.HashingError(err)
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Status:       entity.StatusActive,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("usuario creado")
	return dto.ToUserResponse(user), nil
}

// GetUsers lista los usuarios activos con sus roles.
func (uc *AuthUseCase) GetUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := ListActiveUsers(ctx, uc.userRepo, uc.roleRepo)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(users), nil
}

// VerifyPassword re-verifica la contraseña del operador autenticado (p. ej. antes de una
// acción sensible). Solo identidades con rol ADMIN pueden usarla.
func (uc *AuthUseCase) VerifyPassword(ctx context.Context, id Identity, password string) (bool, error) {
	if !id.HasRole(entity.RoleAdmin) {
		return false, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrUserNotFound
	}
	// Un token emitido antes de la baja sigue vigente; la cuenta se revisa aquí.
	if !user.Status.IsActive() && !uc.opts.AllowInactiveLogin {
		return false, domain.ErrAccountInactive
	}
	ok, err := uc.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return false, domain.HashingError(err)
	}
	if !ok {
		uc.log.Info().Int64("user_id", user.ID).Msg("re-verificación de contraseña fallida")
	}
	return ok, nil
}
