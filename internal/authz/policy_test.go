package authz

import (
	"testing"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestCan(t *testing.T) {
	engineer := Actor{UserID: 1, EmployeeID: 10, Role: models.RoleEngineer, HospitalID: uintPtr(5)}
	nurse := Actor{UserID: 2, EmployeeID: 11, Role: models.RoleNurse, HospitalID: uintPtr(5)}
	doctor := Actor{UserID: 3, EmployeeID: 12, Role: models.RoleDoctor, HospitalID: uintPtr(5)}
	superadmin := Actor{UserID: 4, IsSuperAdmin: true}

	tests := []struct {
		name     string
		actor    Actor
		action   Action
		resource Resource
		hospital uint
		wantErr  error
	}{
		{"superadmin can do anything", superadmin, ActionDelete, ResourceDevice, 99, nil},
		{"engineer writes devices", engineer, ActionWrite, ResourceDevice, 5, nil},
		{"nurse cannot write devices", nurse, ActionWrite, ResourceDevice, 5, apperrors.ErrForbidden},
		{"nurse reads devices", nurse, ActionRead, ResourceDevice, 5, nil},
		{"cross-hospital denied regardless of role", engineer, ActionRead, ResourceDevice, 6, apperrors.ErrForbidden},
		{"doctor writes patient records", doctor, ActionWrite, ResourcePatientRecord, 5, nil},
		{"engineer cannot write patient records", engineer, ActionWrite, ResourcePatientRecord, 5, apperrors.ErrForbidden},
		{"any employee reads patients", nurse, ActionRead, ResourcePatient, 5, nil},
		{"any employee writes unlisted resources", nurse, ActionWrite, ResourceEmployee, 5, nil},
		{"engineer deletes purchase orders", engineer, ActionDelete, ResourcePurchaseOrder, 5, nil},
		{"doctor cannot delete tickets", doctor, ActionDelete, ResourceTicket, 5, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Can(tt.actor, tt.action, tt.resource, tt.hospital)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCan_NoHospital(t *testing.T) {
	orphan := Actor{UserID: 1, EmployeeID: 10, Role: models.RoleEngineer}
	assert.ErrorIs(t, Can(orphan, ActionRead, ResourceDevice, 5), apperrors.ErrForbidden)
}

func TestCanTicketDetail(t *testing.T) {
	creator := Actor{UserID: 2, EmployeeID: 11, Role: models.RoleNurse, HospitalID: uintPtr(5)}
	other := Actor{UserID: 3, EmployeeID: 12, Role: models.RoleNurse, HospitalID: uintPtr(5)}
	engineer := Actor{UserID: 4, EmployeeID: 13, Role: models.RoleEngineer, HospitalID: uintPtr(5)}

	createdBy := uintPtr(11)

	// Creator may update their own ticket even without the engineer role.
	assert.NoError(t, CanTicketDetail(creator, ActionWrite, 5, createdBy))

	// A different non-engineer employee may not.
	assert.ErrorIs(t, CanTicketDetail(other, ActionWrite, 5, createdBy), apperrors.ErrForbidden)

	// Engineers may update any ticket.
	assert.NoError(t, CanTicketDetail(engineer, ActionWrite, 5, createdBy))

	// Creator override never crosses hospitals.
	assert.ErrorIs(t, CanTicketDetail(creator, ActionWrite, 6, createdBy), apperrors.ErrForbidden)

	// Unattributed tickets fall back to the role policy.
	assert.ErrorIs(t, CanTicketDetail(other, ActionDelete, 5, nil), apperrors.ErrForbidden)
}
