package types

import (
	ierr "github.com/billfold/billfold/internal/errors"
)

const (
	FilterDefaultLimit  = 50
	FilterMaxLimit      = 1000
	FilterDefaultOffset = 0
)

// BaseFilter is implemented by all list filters and drives pagination
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	IsUnlimited() bool
	Validate() error
}

// QueryFilter holds the common pagination fields shared by all list endpoints
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Status *Status `json:"status,omitempty" form:"status"`
}

func NewQueryFilter() QueryFilter {
	limit := FilterDefaultLimit
	offset := FilterDefaultOffset
	return QueryFilter{Limit: &limit, Offset: &offset}
}

// NewNoLimitQueryFilter returns a filter that disables pagination
func NewNoLimitQueryFilter() QueryFilter {
	return QueryFilter{}
}

func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return FilterDefaultLimit
	}
	return *f.Limit
}

func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return FilterDefaultOffset
	}
	return *f.Offset
}

func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil && f.Offset == nil
}

func (f QueryFilter) GetStatus() Status {
	if f.Status == nil {
		return StatusPublished
	}
	return *f.Status
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > FilterMaxLimit) {
		return ierr.NewError("invalid limit").
			WithHintf("Limit must be between 1 and %d", FilterMaxLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("invalid offset").
			WithHint("Offset must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ClientFilter filters client list queries
type ClientFilter struct {
	QueryFilter
	Email string `json:"email,omitempty" form:"email"`
}

// InvoiceFilter filters invoice list queries
type InvoiceFilter struct {
	QueryFilter
	ClientName    string `json:"client_name,omitempty" form:"client_name"`
	InvoiceNumber string `json:"invoice_number,omitempty" form:"invoice_number"`
}

// ListResponse is a generic response wrapper for list endpoints
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
