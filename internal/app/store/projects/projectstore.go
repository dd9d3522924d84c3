// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/ktguru/project-service/internal/app/store/resourceops"
	"github.com/ktguru/project-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var (
	errMissingName    = errors.New("project name is required")
	errMissingCompany = errors.New("company id is required")

	// ErrAlreadyMember means the user already holds an approved entry, so
	// there is nothing for an invite to reset or append.
	ErrAlreadyMember = errors.New("user is already an approved member")
)

// Create inserts a new project. Resources arrive pre-seeded by the caller
// (creator entry first, then the company roster).
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ProjectName == "" {
		return models.Project{}, errMissingName
	}
	if p.CompanyID.IsZero() {
		return models.Project{}, errMissingCompany
	}

	p.ID = primitive.NewObjectID()
	p.IsActive = true
	if p.Resources == nil {
		p.Resources = []models.ResourceEntry{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	for i := range p.Resources {
		if p.Resources[i].CreatedAt.IsZero() {
			p.Resources[i].CreatedAt = now
		}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Update changes the descriptive fields only and returns the new document.
// Membership is never touched here; that belongs to the membership engine.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, desc, technology string) (*models.Project, error) {
	after := options.After
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"project_name": name,
			"project_desc": desc,
			"technology":   technology,
			"updated_at":   time.Now().UTC(),
		}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID loads a project by ObjectID, nil when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns the projects where the user holds an approved entry.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"resources": bson.M{
			"$elemMatch": bson.M{"user_id": userID, "is_approved": true},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Role returns the user's entry on the project, or nil when the user has
// no entry at all. Callers use it for the management-capability check.
func (s *Store) Role(ctx context.Context, projectID, userID primitive.ObjectID) (*models.ResourceEntry, error) {
	var p models.Project
	err := s.c.FindOne(ctx,
		resourceops.EntryFilter(projectID, userID),
		options.FindOne().SetProjection(bson.M{
			"resources": bson.M{"$elemMatch": bson.M{"user_id": userID}},
		}),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(p.Resources) == 0 {
		return nil, nil
	}
	return &p.Resources[0], nil
}

// UpsertPending applies the invite upsert on one project: reset an existing
// unapproved entry to pending, or append a fresh pending entry. Reports
// whether a new entry was created. Both writes filter on the array state,
// so a concurrent approval cannot be overwritten. When neither write
// matches, the user already holds an approved entry and ErrAlreadyMember
// is returned; the caller has verified the project exists.
func (s *Store) UpsertPending(ctx context.Context, projectID, userID primitive.ObjectID, role string) (created bool, err error) {
	now := time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		resourceops.ReinviteFilter(projectID, userID),
		resourceops.ReinviteUpdate(now))
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return false, nil
	}

	res, err = s.c.UpdateOne(ctx,
		resourceops.AppendFilter(projectID, userID),
		resourceops.AppendUpdate(userID, role, now))
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrAlreadyMember
	}
	return true, nil
}

// CountByCompany counts a company's projects for the project quota gate.
func (s *Store) CountByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"company_id": companyID})
}

// Approve flips the user's entry to approved/active.
func (s *Store) Approve(ctx context.Context, projectID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		resourceops.EntryFilter(projectID, userID),
		resourceops.ApproveUpdate(time.Now().UTC()))
	return err
}

// Unapprove clears approval on the user's entry and records the given
// status, returning the updated project (callers want the name for mails).
func (s *Store) Unapprove(ctx context.Context, projectID, userID primitive.ObjectID, status models.MembershipStatus) (*models.Project, error) {
	after := options.After
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		resourceops.EntryFilter(projectID, userID),
		resourceops.UnapproveUpdate(status, time.Now().UTC()),
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DistinctIDsByCompany collects the ids of every project of a company.
// First leg of the company fan-out.
func (s *Store) DistinctIDsByCompany(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := s.c.Distinct(ctx, "_id", bson.M{"company_id": companyID})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// UpsertPendingMany applies the invite upsert across the given project ids
// in one unordered bulk write (company-admin fan-out).
func (s *Store) UpsertPendingMany(ctx context.Context, projectIDs []primitive.ObjectID, userID primitive.ObjectID, role string) error {
	if len(projectIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	var ms []mongo.WriteModel
	for _, id := range projectIDs {
		ms = append(ms, resourceops.UpsertPendingModels(id, userID, role, now)...)
	}
	_, err := s.c.BulkWrite(ctx, ms, options.BulkWrite().SetOrdered(false))
	return err
}

// ApproveByCompany flips the user's entry on every project of the company.
func (s *Store) ApproveByCompany(ctx context.Context, companyID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"company_id": companyID,
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.ApproveUpdate(time.Now().UTC()))
	return err
}

// UnapproveByCompany clears approval for the user across every project of
// the company and records the removal status.
func (s *Store) UnapproveByCompany(ctx context.Context, companyID, userID primitive.ObjectID, status models.MembershipStatus) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"company_id": companyID,
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.UnapproveUpdate(status, time.Now().UTC()))
	return err
}

// SetCompanyActive toggles is_active on every project of a company. Driven
// by company-lifecycle events from the broker; membership state is untouched.
func (s *Store) SetCompanyActive(ctx context.Context, companyID primitive.ObjectID, isActive bool) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"company_id": companyID},
		bson.M{"$set": bson.M{"is_active": isActive, "updated_at": time.Now().UTC()}})
	return err
}

// ApprovedResources returns the project name and only the approved entries,
// filtered server-side.
func (s *Store) ApprovedResources(ctx context.Context, projectID primitive.ObjectID) (string, []models.ResourceEntry, error) {
	var p models.Project
	err := s.c.FindOne(ctx,
		bson.M{"_id": projectID},
		options.FindOne().SetProjection(bson.M{
			"project_name": 1,
			"resources": bson.M{"$filter": bson.M{
				"input": "$resources",
				"as":    "resource",
				"cond":  bson.M{"$eq": bson.A{"$$resource.is_approved", true}},
			}},
		}),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	if p.Resources == nil {
		p.Resources = []models.ResourceEntry{}
	}
	return p.ProjectName, p.Resources, nil
}
