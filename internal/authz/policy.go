// Package authz holds the role-based authorization policy. Every permission
// decision flows through Can: a pure function of the caller, the action, the
// resource kind and the target hospital. Role strings live in one capability
// table instead of scattered comparisons.
package authz

import (
	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
)

// Action classifies what the caller wants to do with a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Resource identifies the kind of record being accessed.
type Resource string

const (
	ResourceHospital      Resource = "hospital"
	ResourceEmployee      Resource = "employee"
	ResourceDevice        Resource = "device"
	ResourceInventory     Resource = "inventory"
	ResourceSupplier      Resource = "supplier"
	ResourcePurchaseOrder Resource = "purchase_order"
	ResourceTicket        Resource = "ticket"
	ResourceCompliance    Resource = "compliance"
	ResourcePatient       Resource = "patient"
	ResourcePatientRecord Resource = "patient_record"
)

// Actor is the authenticated caller. Employee fields are zero for platform
// superadmins without an employee profile.
type Actor struct {
	UserID       uint
	IsSuperAdmin bool
	EmployeeID   uint
	Role         string
	HospitalID   *uint
}

// requiredRole maps (resource, action) to the employee role that grants it.
// The canonical privileged role for equipment-side registers is "engineer";
// patient medical sub-records require "doctor". Reads and plain writes not
// listed here are open to any employee of the hospital.
var requiredRole = map[Resource]map[Action]string{
	ResourceDevice: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourceInventory: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourceSupplier: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourcePurchaseOrder: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourceCompliance: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourceTicket: {
		ActionWrite:  models.RoleEngineer,
		ActionDelete: models.RoleEngineer,
	},
	ResourcePatientRecord: {
		ActionWrite:  models.RoleDoctor,
		ActionDelete: models.RoleDoctor,
	},
}

// Can evaluates the policy in order: superadmin allows everything; a caller
// whose role matches the resource requirement and whose hospital equals the
// target hospital is allowed; everything else is denied.
func Can(actor Actor, action Action, resource Resource, targetHospitalID uint) error {
	if actor.IsSuperAdmin {
		return nil
	}

	if actor.HospitalID == nil || *actor.HospitalID != targetHospitalID {
		return apperrors.ErrForbidden
	}

	actions, ok := requiredRole[resource]
	if !ok {
		return nil
	}
	role, ok := actions[action]
	if !ok {
		return nil
	}
	if actor.Role != role {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanTicketDetail applies the creator-override rule: the employee who opened
// a ticket may read and update it regardless of role.
func CanTicketDetail(actor Actor, action Action, targetHospitalID uint, createdByID *uint) error {
	if createdByID != nil && actor.EmployeeID != 0 && *createdByID == actor.EmployeeID {
		if actor.HospitalID != nil && *actor.HospitalID == targetHospitalID {
			return nil
		}
	}
	return Can(actor, action, ResourceTicket, targetHospitalID)
}
