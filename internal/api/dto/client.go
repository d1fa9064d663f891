package dto

import (
	"context"

	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
)

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Address string `json:"address" validate:"omitempty,max=1024"`
	Notes   string `json:"notes" validate:"omitempty,max=2048"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		OwnerID:   types.GetUserID(ctx),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Notes:     r.Notes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=64"`
	Address *string `json:"address" validate:"omitempty,max=1024"`
	Notes   *string `json:"notes" validate:"omitempty,max=2048"`
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ClientResponse struct {
	*client.Client
}

// ListClientsResponse represents a paginated list of clients
type ListClientsResponse = types.ListResponse[*ClientResponse]
