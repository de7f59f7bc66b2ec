package statemachine

import (
	"errors"
	"testing"

	"clinic-appointment-backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.AppointmentStatus
		to    models.AppointmentStatus
		actor Actor
		ok    bool
	}{
		{"doctor completes scheduled", models.StatusScheduled, models.StatusCompleted, ActorDoctor, true},
		{"patient cancels scheduled", models.StatusScheduled, models.StatusCancelled, ActorPatient, true},
		{"admin cancels scheduled", models.StatusScheduled, models.StatusCancelled, ActorAdmin, true},
		{"patient requests cancel", models.StatusScheduled, models.StatusPendingCancel, ActorPatient, true},
		{"doctor confirms pending cancel", models.StatusPendingCancel, models.StatusCancelled, ActorDoctor, true},
		{"system sweeps pending cancel", models.StatusPendingCancel, models.StatusCancelled, ActorSystem, true},

		{"patient completes scheduled", models.StatusScheduled, models.StatusCompleted, ActorPatient, false},
		{"doctor cancels scheduled directly", models.StatusScheduled, models.StatusCancelled, ActorDoctor, false},
		{"doctor requests cancel", models.StatusScheduled, models.StatusPendingCancel, ActorDoctor, false},
		{"complete a cancelled appointment", models.StatusCancelled, models.StatusCompleted, ActorDoctor, false},
		{"cancel a completed appointment", models.StatusCompleted, models.StatusCancelled, ActorAdmin, false},
		{"re-cancel a cancelled appointment", models.StatusCancelled, models.StatusCancelled, ActorAdmin, false},
		{"complete pending cancel", models.StatusPendingCancel, models.StatusCompleted, ActorDoctor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok && err != nil {
				t.Errorf("expected transition to be allowed, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
			}
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, status := range []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled} {
		if nexts := ValidTransitionsFrom(status); len(nexts) != 0 {
			t.Errorf("%s should be terminal, got transitions to %v", status, nexts)
		}
	}
}

func TestValidTransitionsFromScheduled(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusScheduled)
	want := map[models.AppointmentStatus]bool{
		models.StatusCompleted:     true,
		models.StatusCancelled:     true,
		models.StatusPendingCancel: true,
	}
	if len(nexts) != len(want) {
		t.Fatalf("expected %d next statuses, got %v", len(want), nexts)
	}
	for _, s := range nexts {
		if !want[s] {
			t.Errorf("unexpected next status %s", s)
		}
	}
}

func TestActorForRole(t *testing.T) {
	tests := []struct {
		role models.Role
		want Actor
	}{
		{models.RolePatient, ActorPatient},
		{models.RoleDoctor, ActorDoctor},
		{models.RoleAdmin, ActorAdmin},
	}
	for _, tt := range tests {
		if got := ActorForRole(tt.role); got != tt.want {
			t.Errorf("ActorForRole(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}
