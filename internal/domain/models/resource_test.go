package models_test

import (
	"testing"

	"github.com/ktguru/project-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.MembershipStatus
		want     bool
	}{
		{models.StatusPending, models.StatusActive, true},
		{models.StatusPending, models.StatusRejectedByUser, true},
		{models.StatusPending, models.StatusRemovedByAdmin, false},
		{models.StatusActive, models.StatusRemovedByAdmin, true},
		{models.StatusActive, models.StatusRejectedByUser, false},
		{models.StatusActive, models.StatusPending, false},
		{models.StatusRemovedByAdmin, models.StatusPending, true},
		{models.StatusRemovedByAdmin, models.StatusActive, false},
		{models.StatusRejectedByUser, models.StatusPending, true},
		{models.StatusRejectedByUser, models.StatusActive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s): got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []models.MembershipStatus{
		models.StatusPending, models.StatusActive,
		models.StatusRemovedByAdmin, models.StatusRejectedByUser,
	} {
		if !models.IsValidStatus(s) {
			t.Errorf("IsValidStatus(%s): got false, want true", s)
		}
	}
	if models.IsValidStatus("deleted") {
		t.Error("IsValidStatus(deleted): got true, want false")
	}
}

func TestConsultantClass(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleConsultant, true},
		{models.RoleProjectAdmin, true},
		{models.RoleCompany, true},
		{models.RoleCompanyAdmin, false},
		{models.RoleAdmin, false},
	}
	for _, tt := range tests {
		entry := models.ResourceEntry{UserRole: tt.role}
		if got := entry.ConsultantClass(); got != tt.want {
			t.Errorf("ConsultantClass(%s): got %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestAdminTier(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleProjectAdmin, true},
		{models.RoleCompanyAdmin, true},
		{models.RoleAdmin, true},
		{models.RoleConsultant, false},
		{models.RoleCompany, false},
	}
	for _, tt := range tests {
		entry := models.ResourceEntry{UserRole: tt.role}
		if got := entry.AdminTier(); got != tt.want {
			t.Errorf("AdminTier(%s): got %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestApprovedConsultantCount(t *testing.T) {
	p := models.Project{Resources: []models.ResourceEntry{
		{UserID: primitive.NewObjectID(), UserRole: models.RoleConsultant, IsApproved: true},
		{UserID: primitive.NewObjectID(), UserRole: models.RoleConsultant, IsApproved: false},
		{UserID: primitive.NewObjectID(), UserRole: models.RoleProjectAdmin, IsApproved: true},
		{UserID: primitive.NewObjectID(), UserRole: models.RoleCompanyAdmin, IsApproved: true},
		{UserID: primitive.NewObjectID(), UserRole: models.RoleAdmin, IsApproved: true},
	}}

	// Two approved entries in the consultant class: the consultant and the
	// project admin. Pending and admin-tier exempt entries do not count.
	if got := p.ApprovedConsultantCount(); got != 2 {
		t.Errorf("ApprovedConsultantCount: got %d, want 2", got)
	}
}

func TestProjectResource(t *testing.T) {
	uid := primitive.NewObjectID()
	p := models.Project{Resources: []models.ResourceEntry{
		{UserID: primitive.NewObjectID(), UserRole: models.RoleConsultant},
		{UserID: uid, UserRole: models.RoleProjectAdmin},
	}}

	entry := p.Resource(uid)
	if entry == nil {
		t.Fatal("Resource: got nil, want entry")
	}
	if entry.UserRole != models.RoleProjectAdmin {
		t.Errorf("Resource role: got %q, want %q", entry.UserRole, models.RoleProjectAdmin)
	}

	if p.Resource(primitive.NewObjectID()) != nil {
		t.Error("Resource for unknown user: got entry, want nil")
	}
}

func TestUserCacheFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		u := models.UserCache{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q): got %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
