package statemachine

import (
	"errors"

	"clinic-appointment-backend/internal/models"
)

// Actor identifies who is attempting a status change.
type Actor string

const (
	ActorPatient Actor = "patient"
	ActorDoctor  Actor = "doctor"
	ActorAdmin   Actor = "admin"
	// ActorSystem is used by the background sweeper.
	ActorSystem Actor = "system"
)

// Transition defines a valid status change and who can perform it
type Transition struct {
	From  models.AppointmentStatus
	To    models.AppointmentStatus
	Actor Actor
}

// validTransitions is the authoritative lifecycle definition
var validTransitions = []Transition{
	// Doctor closes the visit with a diagnosis
	{From: models.StatusScheduled, To: models.StatusCompleted, Actor: ActorDoctor},
	// Patient or admin cancels outright
	{From: models.StatusScheduled, To: models.StatusCancelled, Actor: ActorPatient},
	{From: models.StatusScheduled, To: models.StatusCancelled, Actor: ActorAdmin},
	// Patient asks for cancellation, doctor has to confirm
	{From: models.StatusScheduled, To: models.StatusPendingCancel, Actor: ActorPatient},
	// Doctor or admin confirms a pending cancellation
	{From: models.StatusPendingCancel, To: models.StatusCancelled, Actor: ActorDoctor},
	{From: models.StatusPendingCancel, To: models.StatusCancelled, Actor: ActorAdmin},
	// Sweeper finalizes stale pending cancellations
	{From: models.StatusPendingCancel, To: models.StatusCancelled, Actor: ActorSystem},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.AppointmentStatus
	To    models.AppointmentStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ErrInvalidTransition is returned for any status change the lifecycle
// table does not allow, including changes attempted by the wrong actor.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidTransitionsFrom returns all valid next statuses from a given status
func ValidTransitionsFrom(status models.AppointmentStatus) []models.AppointmentStatus {
	var nexts []models.AppointmentStatus
	seen := map[models.AppointmentStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an appointment from one
// status to another
func CanTransition(from, to models.AppointmentStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return ErrInvalidTransition
}

// ActorForRole maps an authenticated user role to a lifecycle actor.
func ActorForRole(role models.Role) Actor {
	switch role {
	case models.RoleDoctor:
		return ActorDoctor
	case models.RoleAdmin:
		return ActorAdmin
	default:
		return ActorPatient
	}
}
