package auth

import (
	"testing"

	"github.com/maintops/maintops/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		permission Permission
		want       bool
	}{
		{"admin approves", models.RoleAdmin, PermWorkOrderApprove, true},
		{"admin assigns", models.RoleAdmin, PermWorkOrderAssign, true},
		{"supervisor runs scans", models.RoleSupervisor, PermScansRun, true},
		{"supervisor cannot approve", models.RoleSupervisor, PermWorkOrderApprove, false},
		{"tecnico submits", models.RoleTecnico, PermWorkOrderSubmit, true},
		{"tecnico cannot reject", models.RoleTecnico, PermWorkOrderReject, false},
		{"tecnico cannot run scans", models.RoleTecnico, PermScansRun, false},
		{"unknown role holds nothing", models.Role("gerente"), PermWorkOrderSubmit, false},
		{"empty role holds nothing", models.Role(""), PermReportsView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	assert.True(t, HasAnyPermission(models.RoleTecnico, PermWorkOrderApprove, PermWorkOrderExecute))
	assert.False(t, HasAnyPermission(models.RoleTecnico, PermWorkOrderApprove, PermWorkOrderReject))
	assert.False(t, HasAnyPermission(models.RoleAdmin))
}
