package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"smartride-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func dollars(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, to, name string, rental *domain.Rental, vehicle *domain.Vehicle) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking is confirmed.\n\nRental ID: %d\nVehicle: %s %s (%s)\nPeriod: %s to %s\nTotal: $%s\n\nThe SmartRide Team",
		name, rental.ID, vehicle.Make, vehicle.Model, vehicle.PlateNo,
		rental.StartDate.Format("2006-01-02"), rental.DueDate.Format("2006-01-02"),
		dollars(rental.TotalAmountCents),
	)
	return s.send(to, fmt.Sprintf("Booking confirmed: rental %d", rental.ID), body)
}

func (s *emailService) SendReturnReceipt(ctx context.Context, to, name string, rental *domain.Rental) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nRental %d has been returned.\n\nCharge: $%s\nOverdue fine: $%s\nTotal due: $%s\n\nThe SmartRide Team",
		name, rental.ID,
		dollars(rental.TotalAmountCents), dollars(rental.FineAmountCents),
		dollars(rental.TotalAmountCents+rental.FineAmountCents),
	)
	return s.send(to, fmt.Sprintf("Return receipt: rental %d", rental.ID), body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, to, name, plateNo string, daysOverdue, accruedFineCents int64) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nThe vehicle %s is %d day(s) overdue. The fine accrued so far is $%s and keeps growing each day.\n\nPlease return the vehicle as soon as possible.\n\nThe SmartRide Team",
		name, plateNo, daysOverdue, dollars(accruedFineCents),
	)
	return s.send(to, "Your rental is overdue", body)
}
