package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// NavCache abstracts the classification cache (Redis). The cache is an
// optimization only; every method degrades to the repository on error.
type NavCache interface {
	Get(ctx context.Context) ([]*domain.Classification, bool, error)
	Set(ctx context.Context, classifications []*domain.Classification) error
	Invalidate(ctx context.Context) error
}

// InventoryService implements classification and vehicle management plus the
// cached navigation list rendered on every page.
type InventoryService struct {
	repo  ports.InventoryRepository
	cache NavCache
	log   zerolog.Logger
	now   func() time.Time
}

func NewInventoryService(repo ports.InventoryRepository, cache NavCache, log zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, cache: cache, log: log, now: time.Now}
}

// Nav returns the classification list, served from cache when possible. A
// cache fault is logged and absorbed; the repository remains authoritative.
func (s *InventoryService) Nav(ctx context.Context) ([]*domain.Classification, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("nav cache read failed, falling back to store")
		} else if ok {
			return cached, nil
		}
	}

	classifications, err := s.repo.Classifications(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, classifications); err != nil {
			s.log.Warn().Err(err).Msg("nav cache write failed")
		}
	}
	return classifications, nil
}

func (s *InventoryService) AddClassification(ctx context.Context, name string) (*domain.Classification, error) {
	created, err := s.repo.InsertClassification(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("nav cache invalidation failed")
		}
	}
	return created, nil
}

func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID string) (*domain.Classification, []*domain.Vehicle, error) {
	classifications, err := s.repo.Classifications(ctx)
	if err != nil {
		return nil, nil, err
	}
	var match *domain.Classification
	for _, c := range classifications {
		if c.ID == classificationID {
			match = c
			break
		}
	}
	if match == nil {
		return nil, nil, domain.ErrClassificationNotFound
	}

	vehicles, err := s.repo.VehiclesByClassification(ctx, classificationID)
	if err != nil {
		return nil, nil, err
	}
	return match, vehicles, nil
}

func (s *InventoryService) VehicleDetail(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.FindVehicleByID(ctx, id)
}

func (s *InventoryService) AddVehicle(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	now := s.now().UTC()
	v := vehicleFromInput(in)
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.repo.InsertVehicle(ctx, v)
}

func (s *InventoryService) UpdateVehicle(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	v := vehicleFromInput(in)
	v.UpdatedAt = s.now().UTC()
	return s.repo.UpdateVehicle(ctx, v)
}

func vehicleFromInput(in ports.VehicleInput) *domain.Vehicle {
	return &domain.Vehicle{
		ID:               in.ID,
		ClassificationID: in.ClassificationID,
		Make:             strings.TrimSpace(in.Make),
		Model:            strings.TrimSpace(in.Model),
		Year:             in.Year,
		Description:      strings.TrimSpace(in.Description),
		Image:            in.Image,
		Thumbnail:        in.Thumbnail,
		Price:            in.Price,
		Miles:            in.Miles,
		Color:            in.Color,
	}
}
