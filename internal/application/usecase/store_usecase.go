package usecase

import (
	"context"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda activa y devuelve el registro completo.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.StoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	store := &entity.Store{Name: in.Name, Code: in.Code, Address: in.Address, Status: entity.StatusActive}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return dto.ToStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID, esté activa o no.
func (uc *StoreUseCase) GetByID(ctx context.Context, id int64) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToStoreResponse(store), nil
}

// Update sobrescribe nombre, código y dirección. Un id inexistente no es error.
func (uc *StoreUseCase) Update(ctx context.Context, id int64, in dto.StoreRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.Update(ctx, &entity.Store{ID: id, Name: in.Name, Code: in.Code, Address: in.Address})
}

// Delete da de baja lógica a la tienda.
func (uc *StoreUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.SoftDelete(ctx, id)
}

// List lista las tiendas activas.
func (uc *StoreUseCase) List(ctx context.Context) ([]dto.StoreResponse, error) {
	stores, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToStoreResponses(stores), nil
}
