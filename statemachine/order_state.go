package statemachine

import (
	"errors"

	"quickbite/models"
)

// Transition defines a valid state change and which role may perform it.
// The table is strict: a move that skips a step (placed → delivered) is
// rejected even when the target status is in the actor's allowed set.
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant owner drives the kitchen-side lifecycle
	{From: models.StatusPlaced, To: models.StatusAccepted, Role: models.RoleOwner},
	{From: models.StatusAccepted, To: models.StatusPreparing, Role: models.RoleOwner},
	{From: models.StatusPreparing, To: models.StatusReady, Role: models.RoleOwner},
	// Delivery agent drives the road-side lifecycle
	{From: models.StatusReady, To: models.StatusPickedUp, Role: models.RoleDeliveryAgent},
	{From: models.StatusPickedUp, To: models.StatusDelivered, Role: models.RoleDeliveryAgent},
	// Either side can cancel before preparation starts
	{From: models.StatusPlaced, To: models.StatusCancelled, Role: models.RoleOwner},
	{From: models.StatusPlaced, To: models.StatusCancelled, Role: models.RoleCustomer},
	{From: models.StatusAccepted, To: models.StatusCancelled, Role: models.RoleOwner},
	{From: models.StatusAccepted, To: models.StatusCancelled, Role: models.RoleCustomer},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.UserRole
}

// Lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// NextStates returns all valid target states from a given state, any role.
func NextStates(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// RoleCanSet reports whether the role may ever set the given target status.
// Used to distinguish "not your move" (403) from "not a legal move from
// here" (400).
func RoleCanSet(role models.UserRole, to models.OrderStatus) bool {
	for _, t := range validTransitions {
		if t.Role == role && t.To == to {
			return true
		}
	}
	return false
}

// CanTransition checks whether the role may move an order between the two
// states. The returned error is safe to surface to clients.
func CanTransition(from, to models.OrderStatus, role models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Role: role}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for role '" + string(role) + "'. " +
			"Valid next states from " + string(from) + ": " + describeNext(from),
	)
}

func describeNext(status models.OrderStatus) string {
	nexts := NextStates(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}
