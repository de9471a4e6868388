package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"userhub/internal/model"
)

func TestCanViewAll(t *testing.T) {
	assert.True(t, CanViewAll(Actor{ID: 1, Role: model.RoleAdmin}))
	assert.False(t, CanViewAll(Actor{ID: 1, Role: model.RoleUser}))
}

func TestCanViewOne(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		target uint
		want   bool
	}{
		{"admin on another user", Actor{ID: 1, Role: model.RoleAdmin}, 2, true},
		{"admin on self", Actor{ID: 1, Role: model.RoleAdmin}, 1, true},
		{"user on self", Actor{ID: 5, Role: model.RoleUser}, 5, true},
		{"user on another user", Actor{ID: 5, Role: model.RoleUser}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewOne(tt.actor, tt.target))
		})
	}
}

func TestCanUpdate(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		target uint
		want   bool
	}{
		{"admin on another user", Actor{ID: 1, Role: model.RoleAdmin}, 2, true},
		{"admin on self", Actor{ID: 1, Role: model.RoleAdmin}, 1, true},
		{"user on self", Actor{ID: 5, Role: model.RoleUser}, 5, true},
		{"user on another user", Actor{ID: 5, Role: model.RoleUser}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpdate(tt.actor, tt.target))
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	assert.True(t, CanChangeRole(Actor{ID: 1, Role: model.RoleAdmin}))
	assert.False(t, CanChangeRole(Actor{ID: 1, Role: model.RoleUser}))
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		target uint
		want   bool
	}{
		{"admin on another user", Actor{ID: 1, Role: model.RoleAdmin}, 2, true},
		{"admin on self", Actor{ID: 1, Role: model.RoleAdmin}, 1, false},
		{"user on self", Actor{ID: 5, Role: model.RoleUser}, 5, false},
		{"user on another user", Actor{ID: 5, Role: model.RoleUser}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.actor, tt.target))
		})
	}
}

// Self-deletion stays denied for every role value.
func TestCanDelete_SelfAlwaysDenied(t *testing.T) {
	for _, role := range []model.Role{model.RoleUser, model.RoleAdmin} {
		assert.False(t, CanDelete(Actor{ID: 9, Role: role}, 9), "role %s", role)
	}
}
