package dto

import (
	"time"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// StoreRequest entrada para crear o sobrescribir una tienda.
type StoreRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Code    *string `json:"code"`
	Address *string `json:"address"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Code      *string    `json:"code"`
	Address   *string    `json:"address"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at"`
}

func ToStoreResponse(s *entity.Store) *StoreResponse {
	if s == nil {
		return nil
	}
	return &StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Code:      s.Code,
		Address:   s.Address,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

func ToStoreResponses(stores []*entity.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *ToStoreResponse(s))
	}
	return out
}
