// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a resource entry may carry on a project or subsection.
const (
	RoleSuperAdmin   = "superAdmin"
	RoleAdmin        = "admin"
	RoleCompany      = "company"
	RoleCompanyAdmin = "companyAdmin"
	RoleProjectAdmin = "projectAdmin"
	RoleConsultant   = "consultant"
)

// MembershipStatus is the lifecycle state of a resource entry.
// Entries are never deleted; removal and rejection are status transitions.
type MembershipStatus string

const (
	StatusPending        MembershipStatus = "pending"
	StatusActive         MembershipStatus = "active"
	StatusRemovedByAdmin MembershipStatus = "removedByAdmin"
	StatusRejectedByUser MembershipStatus = "rejectedByUser"
)

// CanTransition reports whether a status change is allowed by the
// membership state machine:
//
//	pending -> active (approve) | rejectedByUser (decline)
//	active  -> removedByAdmin   (admin remove)
//	removedByAdmin | rejectedByUser -> pending (re-invite)
//
// A new entry always starts at pending; nothing skips it.
func (s MembershipStatus) CanTransition(to MembershipStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusActive || to == StatusRejectedByUser
	case StatusActive:
		return to == StatusRemovedByAdmin
	case StatusRemovedByAdmin, StatusRejectedByUser:
		return to == StatusPending
	}
	return false
}

// IsValidStatus reports whether s is one of the known membership statuses.
func IsValidStatus(s MembershipStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusRemovedByAdmin, StatusRejectedByUser:
		return true
	}
	return false
}

// ResourceEntry is one user's membership record on a project or subsection.
//
// Invariant: IsApproved == true implies Status == active; an unapproved
// entry is pending, removedByAdmin, or rejectedByUser.
type ResourceEntry struct {
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	UserRole   string             `bson:"user_role" json:"userRole"`
	IsApproved bool               `bson:"is_approved" json:"isApproved"`
	Status     MembershipStatus   `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// ConsultantClass reports whether the entry counts against the plan's
// consultant quota. Admin-tier and company-admin entries are exempt.
func (r ResourceEntry) ConsultantClass() bool {
	return r.UserRole != RoleAdmin && r.UserRole != RoleCompanyAdmin
}

// AdminTier reports whether the entry's role is seeded into new subsections.
func (r ResourceEntry) AdminTier() bool {
	switch r.UserRole {
	case RoleProjectAdmin, RoleCompanyAdmin, RoleAdmin:
		return true
	}
	return false
}
