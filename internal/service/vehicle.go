package service

import (
	"context"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo     repository.VehicleRepository
	typeRepo        repository.VehicleTypeRepository
	rentalRepo      repository.RentalRepository
	maintenanceRepo repository.MaintenanceRepository
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	typeRepo repository.VehicleTypeRepository,
	rentalRepo repository.RentalRepository,
	maintenanceRepo repository.MaintenanceRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo:     vehicleRepo,
		typeRepo:        typeRepo,
		rentalRepo:      rentalRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.RatePerDayCents < 0 {
		return domain.InvalidRangef("daily rate must not be negative")
	}
	if _, err := s.typeRepo.GetByID(ctx, v.TypeID); err != nil {
		return err
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.RatePerDayCents < 0 {
		return domain.InvalidRangef("daily rate must not be negative")
	}
	// Rate changes apply to future bookings only; existing rentals
	// keep their charge snapshot. Status is not written here, it is
	// owned by the lifecycle transitions.
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	active, err := s.rentalRepo.HasActiveByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return domain.Conflictf("vehicle %d has an active rental", id)
	}
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, []domain.Rental, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rentals, err := s.rentalRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return v, rentals, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, filter)
}

func (s *vehicleService) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	return s.typeRepo.List(ctx)
}

func (s *vehicleService) ListMaintenance(ctx context.Context) ([]domain.Maintenance, error) {
	return s.maintenanceRepo.List(ctx)
}
