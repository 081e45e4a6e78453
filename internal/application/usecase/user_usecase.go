package usecase

import (
	"context"

	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
	"github.com/jhoicas/pos-core/pkg/logger"
)

// UserUseCase orquesta el personal de tienda: alta con rol, edición, baja lógica y listados.
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	txRunner auth.TxRunner
	hasher   auth.PasswordHasher
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso. log puede ser nil.
func NewUserUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	txRunner auth.TxRunner,
	hasher auth.PasswordHasher,
	log *logger.Logger,
) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		txRunner: txRunner,
		hasher:   hasher,
		log:      log.Component("users"),
	}
}

// CreateStaffUser crea un VENDEDOR o GERENTE. El rol se valida antes de cualquier escritura;
// alta, creación del rol y asignación van en una transacción.
func (uc *UserUseCase) CreateStaffUser(ctx context.Context, in dto.CreateStaffUserRequest) (*dto.UserResponse, error) {
	if !entity.IsStaffRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.HashingError(err)
	}
	label := in.RoleLabel
	if label == nil || *label == "" {
		r := in.Role
		label = &r
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: hash,
		RoleLabel:    label,
		Email:        in.Email,
		StoreID:      in.StoreID,
		Status:       entity.StatusActive,
	}

	err = uc.txRunner.Run(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		existing, err := userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateUsername
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return auth.AssignRole(ctx, roleRepo, user.ID, in.Role)
	})
	if err != nil {
		return nil, err
	}
	user.Roles = []string{in.Role}
	uc.log.Info().Int64("user_id", user.ID).Str("role", in.Role).Msg("personal creado")
	return dto.ToUserResponse(user), nil
}

// UpdateUser sobrescribe cargo, email y tienda. Un id inexistente no es error.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int64, in dto.UpdateUserRequest) error {
	return uc.userRepo.Update(ctx, &entity.User{
		ID:        id,
		RoleLabel: in.RoleLabel,
		Email:     in.Email,
		StoreID:   in.StoreID,
	})
}

// DeleteUser da de baja lógica al usuario; sigue ocupando su username.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id int64) error {
	if err := uc.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Msg("usuario dado de baja")
	return nil
}

// GetUsersByStore lista los usuarios activos de la tienda.
func (uc *UserUseCase) GetUsersByStore(ctx context.Context, storeID int64) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.ListActiveByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := auth.LoadRoles(ctx, uc.roleRepo, users); err != nil {
		return nil, err
	}
	return dto.ToUserResponses(users), nil
}

// ListUsers lista todos los usuarios activos.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := auth.ListActiveUsers(ctx, uc.userRepo, uc.roleRepo)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(users), nil
}

// GetByID obtiene un usuario sin importar su estado.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := auth.LoadRoles(ctx, uc.roleRepo, []*entity.User{user}); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// AssignRole asigna un rol formal (lo crea si no existe). Repetirlo no duplica la asignación.
func (uc *UserUseCase) AssignRole(ctx context.Context, userID int64, roleName string) error {
	if roleName == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return auth.AssignRole(ctx, uc.roleRepo, userID, roleName)
}

