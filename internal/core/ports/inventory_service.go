package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// VehicleInput carries a validated vehicle form. ID is empty on create.
type VehicleInput struct {
	ID               string
	ClassificationID string
	Make             string
	Model            string
	Year             int
	Description      string
	Image            string
	Thumbnail        string
	Price            float64
	Miles            int
	Color            string
}

type InventoryService interface {
	// Nav returns the classification list shown in the navigation of every
	// page, served from cache when possible.
	Nav(ctx context.Context) ([]*domain.Classification, error)

	AddClassification(ctx context.Context, name string) (*domain.Classification, error)
	VehiclesByClassification(ctx context.Context, classificationID string) (*domain.Classification, []*domain.Vehicle, error)
	VehicleDetail(ctx context.Context, id string) (*domain.Vehicle, error)
	AddVehicle(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
}
