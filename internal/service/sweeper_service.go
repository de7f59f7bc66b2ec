package service

import (
	"context"
	"log"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/internal/statemachine"
)

// SweeperService is the background worker that finalizes cancellation
// requests no doctor confirmed: any appointment sitting in pending_cancel
// longer than the TTL is moved to cancelled.
type SweeperService struct {
	appointmentRepo *repository.AppointmentRepository
	auditRepo       *repository.AuditRepository
	interval        time.Duration
	ttl             time.Duration
}

func NewSweeperService(
	appointmentRepo *repository.AppointmentRepository,
	auditRepo *repository.AuditRepository,
	interval, ttl time.Duration,
) *SweeperService {
	return &SweeperService{
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		interval:        interval,
		ttl:             ttl,
	}
}

// Start runs the sweep loop until the context is cancelled
func (w *SweeperService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Pending-cancel sweeper started - interval %s, TTL %s", w.interval, w.ttl)

	for {
		select {
		case <-ctx.Done():
			log.Println("Pending-cancel sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(time.Now())
		}
	}
}

// Sweep finalizes stale pending cancellations relative to now. Exposed for
// tests.
func (w *SweeperService) Sweep(now time.Time) {
	stale, err := w.appointmentRepo.GetStalePendingCancellations(now.Add(-w.ttl))
	if err != nil {
		log.Printf("Error fetching stale pending cancellations: %v", err)
		return
	}

	for i := range stale {
		appointment := &stale[i]
		if err := statemachine.CanTransition(appointment.Status, models.StatusCancelled, statemachine.ActorSystem); err != nil {
			continue
		}
		appointment.Status = models.StatusCancelled
		if err := w.appointmentRepo.Save(appointment); err != nil {
			log.Printf("Error finalizing appointment %d: %v", appointment.ID, err)
			continue
		}
		_ = w.auditRepo.CreateAuditLog(nil, "appointment_cancel_swept",
			"Appointment cancellation finalized after confirmation timeout")
		log.Printf("Appointment %d cancellation finalized by sweeper", appointment.ID)
	}
}
