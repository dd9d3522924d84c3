package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/ktguru/project-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Entry builds a resource entry in the given membership state.
func Entry(userID primitive.ObjectID, role string, approved bool, status models.MembershipStatus) models.ResourceEntry {
	return models.ResourceEntry{
		UserID:     userID,
		UserRole:   role,
		IsApproved: approved,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
}

// ActiveEntry builds an approved, active resource entry.
func ActiveEntry(userID primitive.ObjectID, role string) models.ResourceEntry {
	return Entry(userID, role, true, models.StatusActive)
}

// PendingEntry builds an unapproved, pending resource entry.
func PendingEntry(userID primitive.ObjectID, role string) models.ResourceEntry {
	return Entry(userID, role, false, models.StatusPending)
}

// CreateProject inserts a test project with the given resource entries.
// Returns the created project with its generated ID.
func (f *Fixtures) CreateProject(ctx context.Context, name string, companyID primitive.ObjectID, entries ...models.ResourceEntry) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	if entries == nil {
		entries = []models.ResourceEntry{}
	}
	p := models.Project{
		ID:          primitive.NewObjectID(),
		ProjectName: name,
		ProjectDesc: "Test project description",
		Technology:  "Go",
		CompanyID:   companyID,
		CompanyName: "Test Company",
		CreatedBy:   primitive.NewObjectID(),
		IsActive:    true,
		Resources:   entries,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}

	return p
}

// CreateSubSection inserts a test subsection under the given project.
func (f *Fixtures) CreateSubSection(ctx context.Context, name string, projectID primitive.ObjectID, entries ...models.ResourceEntry) models.SubSection {
	f.t.Helper()

	now := time.Now().UTC()
	if entries == nil {
		entries = []models.ResourceEntry{}
	}
	sub := models.SubSection{
		ID:            primitive.NewObjectID(),
		ProjectName:   name,
		ProjectNameCI: text.Fold(name),
		ProjectDesc:   "Test subsection description",
		Technology:    "Go",
		ProjectID:     projectID,
		CreatedBy:     primitive.NewObjectID(),
		IsActive:      true,
		Resources:     entries,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("sub_sections").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test subsection: %v", err)
	}

	return sub
}

// CreateCachedUser inserts a user-cache record for the given user id.
func (f *Fixtures) CreateCachedUser(ctx context.Context, userID primitive.ObjectID, firstName, lastName, email string) models.UserCache {
	f.t.Helper()

	u := models.UserCache{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("user_cache").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test cached user: %v", err)
	}

	return u
}
