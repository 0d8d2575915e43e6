package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notely/internal/model"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		callerID uint
		ownerID  uint
		want     bool
	}{
		{"owner may access own note", model.RoleUser, 1, 1, true},
		{"user may not access another's note", model.RoleUser, 1, 2, false},
		{"admin may access own note", model.RoleAdmin, 1, 1, true},
		{"admin may access another's note", model.RoleAdmin, 1, 2, true},
		{"unknown role denied on foreign note", model.Role("superuser"), 1, 2, false},
		{"unknown role still owner-scoped", model.Role("superuser"), 3, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.role, tt.callerID, tt.ownerID))
		})
	}
}

func TestSeesAllNotes(t *testing.T) {
	assert.True(t, SeesAllNotes(model.RoleAdmin))
	assert.False(t, SeesAllNotes(model.RoleUser))
	assert.False(t, SeesAllNotes(model.Role("superuser")))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, model.RoleUser.Valid())
	assert.True(t, model.RoleAdmin.Valid())
	assert.False(t, model.Role("").Valid())
	assert.False(t, model.Role("superuser").Valid())
}
