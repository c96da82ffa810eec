package service

import (
	"context"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type reportService struct {
	vehicleRepo     repository.VehicleRepository
	rentalRepo      repository.RentalRepository
	reservationRepo repository.ReservationRepository
	reportRepo      repository.ReportRepository
	now             func() time.Time
}

func NewReportService(
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
	reservationRepo repository.ReservationRepository,
	reportRepo repository.ReportRepository,
) ReportService {
	return &reportService{
		vehicleRepo:     vehicleRepo,
		rentalRepo:      rentalRepo,
		reservationRepo: reservationRepo,
		reportRepo:      reportRepo,
		now:             time.Now,
	}
}

func (s *reportService) OverdueRentals(ctx context.Context) ([]repository.OverdueRental, error) {
	return s.reportRepo.OverdueRentals(ctx, s.now())
}

func (s *reportService) RentalHistory(ctx context.Context, status domain.RentalStatus) ([]repository.RentalHistoryEntry, error) {
	return s.reportRepo.RentalHistory(ctx, status)
}

func (s *reportService) MonthlyRevenueReport(ctx context.Context, month time.Month, year int) ([]repository.MonthlyRevenueLine, int64, error) {
	lines, err := s.reportRepo.MonthlyRevenueByType(ctx, month, year)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, l := range lines {
		total += l.RevenueCents + l.FinesCents
	}
	return lines, total, nil
}

func (s *reportService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	stats := &DashboardStats{}

	counts, err := s.vehicleRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.AvailableVehicles = counts[domain.VehicleStatusAvailable]
	stats.RentedVehicles = counts[domain.VehicleStatusRented]
	stats.MaintenanceVehicles = counts[domain.VehicleStatusMaintenance]
	stats.TotalVehicles = stats.AvailableVehicles + stats.RentedVehicles + stats.MaintenanceVehicles

	active, err := s.reportRepo.RentalHistory(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveRentals = int64(len(active))

	overdue, err := s.reportRepo.OverdueRentals(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.OverdueRentals = int64(len(overdue))

	if stats.MonthlyRevenueCents, err = s.rentalRepo.MonthlyRevenue(ctx, now.Month(), now.Year()); err != nil {
		return nil, err
	}
	if stats.DailyRevenueCents, err = s.rentalRepo.DailyRevenue(ctx, now); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *reportService) CustomerStats(ctx context.Context, customerID int64) (*CustomerStats, error) {
	stats := &CustomerStats{}

	active, err := s.rentalRepo.ListByCustomer(ctx, customerID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveRentals = int64(len(active))

	completed, err := s.rentalRepo.ListByCustomer(ctx, customerID, domain.RentalStatusCompleted)
	if err != nil {
		return nil, err
	}
	stats.CompletedRentals = int64(len(completed))

	reservations, err := s.reservationRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if r.Status == domain.ReservationStatusPending {
			stats.PendingReservations++
		}
	}

	if stats.TotalSpentCents, err = s.rentalRepo.TotalSpending(ctx, customerID); err != nil {
		return nil, err
	}
	return stats, nil
}
