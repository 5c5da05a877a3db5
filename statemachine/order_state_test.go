package statemachine

import (
	"testing"

	"quickbite/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		role models.UserRole
		ok   bool
	}{
		{"owner accepts placed", models.StatusPlaced, models.StatusAccepted, models.RoleOwner, true},
		{"owner starts preparing", models.StatusAccepted, models.StatusPreparing, models.RoleOwner, true},
		{"owner marks ready", models.StatusPreparing, models.StatusReady, models.RoleOwner, true},
		{"agent picks up", models.StatusReady, models.StatusPickedUp, models.RoleDeliveryAgent, true},
		{"agent delivers", models.StatusPickedUp, models.StatusDelivered, models.RoleDeliveryAgent, true},
		{"customer cancels placed", models.StatusPlaced, models.StatusCancelled, models.RoleCustomer, true},
		{"owner cancels accepted", models.StatusAccepted, models.StatusCancelled, models.RoleOwner, true},

		{"owner cannot pick up", models.StatusReady, models.StatusPickedUp, models.RoleOwner, false},
		{"agent cannot accept", models.StatusPlaced, models.StatusAccepted, models.RoleDeliveryAgent, false},
		{"customer cannot deliver", models.StatusPickedUp, models.StatusDelivered, models.RoleCustomer, false},
		{"no skipping to ready", models.StatusPlaced, models.StatusReady, models.RoleOwner, false},
		{"no skipping to delivered", models.StatusPlaced, models.StatusDelivered, models.RoleDeliveryAgent, false},
		{"no cancel after preparing", models.StatusPreparing, models.StatusCancelled, models.RoleCustomer, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusPlaced, models.RoleAdmin, false},
		{"no backwards move", models.StatusReady, models.StatusPreparing, models.RoleOwner, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.role)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNextStates(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusAccepted, models.StatusCancelled},
		NextStates(models.StatusPlaced))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPickedUp},
		NextStates(models.StatusReady))
	assert.Empty(t, NextStates(models.StatusDelivered))
	assert.Empty(t, NextStates(models.StatusCancelled))
}

func TestRoleCanSet(t *testing.T) {
	assert.True(t, RoleCanSet(models.RoleOwner, models.StatusAccepted))
	assert.True(t, RoleCanSet(models.RoleDeliveryAgent, models.StatusDelivered))
	assert.True(t, RoleCanSet(models.RoleCustomer, models.StatusCancelled))
	assert.False(t, RoleCanSet(models.RoleOwner, models.StatusPickedUp))
	assert.False(t, RoleCanSet(models.RoleDeliveryAgent, models.StatusAccepted))
	assert.False(t, RoleCanSet(models.RoleCustomer, models.StatusAccepted))
}
