package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// InventoryRepository is the persistence boundary for classifications and
// vehicles.
type InventoryRepository interface {
	Classifications(ctx context.Context) ([]*domain.Classification, error)
	InsertClassification(ctx context.Context, name string) (*domain.Classification, error)
	VehiclesByClassification(ctx context.Context, classificationID string) ([]*domain.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
	InsertVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}
