package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	// SetStatus records a refresh outcome. Online also bumps last_seen_at.
	SetStatus(ctx context.Context, id string, status Status) error
}

type CreateRequest struct {
	Name           string            `json:"name"`
	Class          string            `json:"class"`
	Endpoint       string            `json:"endpoint"`
	PricePerPage   string            `json:"price_per_page"`
	CostPerPage    string            `json:"cost_per_page"`
	RevenueFormula string            `json:"revenue_formula"`
	CostFormula    string            `json:"cost_formula"`
	Attributes     map[string]string `json:"attributes"`
}

type UpdateRequest struct {
	ID             string             `json:"id"`
	Name           *string            `json:"name,omitempty"`
	Class          *string            `json:"class,omitempty"`
	Endpoint       *string            `json:"endpoint,omitempty"`
	PricePerPage   *string            `json:"price_per_page,omitempty"`
	CostPerPage    *string            `json:"cost_per_page,omitempty"`
	RevenueFormula *string            `json:"revenue_formula,omitempty"`
	CostFormula    *string            `json:"cost_formula,omitempty"`
	Attributes     *map[string]string `json:"attributes,omitempty"`
}

type Response struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Class          string            `json:"class"`
	Endpoint       string            `json:"endpoint"`
	PricePerPage   string            `json:"price_per_page"`
	CostPerPage    string            `json:"cost_per_page"`
	RevenueFormula string            `json:"revenue_formula,omitempty"`
	CostFormula    string            `json:"cost_formula,omitempty"`
	Status         string            `json:"status"`
	LastSeenAt     *time.Time        `json:"last_seen_at,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
