// internal/app/store/subsections/subsectionstore.go
package subsectionstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("sub_sections")}
}

var (
	errMissingName    = errors.New("subsection name is required")
	errMissingProject = errors.New("project id is required")

	// ErrDuplicateName is returned when a subsection with the same
	// case-insensitive name already exists under the project.
	ErrDuplicateName = errors.New("a subsection with this name already exists under the project")
)

// Create inserts a new subsection. Resources arrive pre-seeded by the
// caller from the parent project's admin-tier entries. Name uniqueness is
// case-insensitive per project, backed by a unique index so a racing
// create cannot slip through the pre-check.
func (s *Store) Create(ctx context.Context, sub models.SubSection) (models.SubSection, error) {
	if sub.ProjectName == "" {
		return models.SubSection{}, errMissingName
	}
	if sub.ProjectID.IsZero() {
		return models.SubSection{}, errMissingProject
	}

	sub.ID = primitive.NewObjectID()
	sub.ProjectNameCI = text.Fold(sub.ProjectName)
	sub.IsActive = true
	if sub.Resources == nil {
		sub.Resources = []models.ResourceEntry{}
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SubSection{}, ErrDuplicateName
		}
		return models.SubSection{}, err
	}
	return sub, nil
}

// Update changes the descriptive fields, re-checking name uniqueness when
// the name changes, and returns the new document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, desc, technology string) (*models.SubSection, error) {
	if name == "" {
		return nil, errMissingName
	}
	after := options.After
	var sub models.SubSection
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"project_name":    name,
			"project_name_ci": text.Fold(name),
			"project_desc":    desc,
			"technology":      technology,
			"updated_at":      time.Now().UTC(),
		}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &sub, nil
}

// GetByID loads a subsection by ObjectID, nil when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubSection, error) {
	var sub models.SubSection
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListForUserApproved returns the subsections of a project where the user
// holds an approved entry.
func (s *Store) ListForUserApproved(ctx context.Context, projectID, userID primitive.ObjectID) ([]models.SubSection, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"project_id": projectID,
		"resources": bson.M{
			"$elemMatch": bson.M{"user_id": userID, "is_approved": true},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SubSection
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNotMatching returns the subsections of a project where the user is
// absent or present but unapproved. The read side of the formatter.
func (s *Store) ListNotMatching(ctx context.Context, projectID, userID primitive.ObjectID) ([]models.SubSection, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"project_id": projectID,
		"$or": bson.A{
			bson.M{"resources.user_id": bson.M{"$ne": userID}},
			bson.M{"resources": bson.M{
				"$elemMatch": bson.M{"user_id": userID, "is_approved": false},
			}},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SubSection
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DistinctIDsByProjects collects subsection ids under the given projects.
// Second leg of the fan-out id collection.
func (s *Store) DistinctIDsByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	raw, err := s.c.Distinct(ctx, "_id", bson.M{"project_id": bson.M{"$in": projectIDs}})
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

// UpsertPendingAll applies the invite upsert for the user on every
// subsection of a project (projectAdmin cascade). Two updateMany passes:
// reset existing unapproved entries, then append where absent. At most one
// pass matches any given document.
func (s *Store) UpsertPendingAll(ctx context.Context, projectID, userID primitive.ObjectID, role string) error {
	now := time.Now().UTC()

	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"project_id": projectID,
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID, "is_approved": false}},
		},
		resourceops.ReinviteUpdate(now))
	if err != nil {
		return err
	}

	_, err = s.c.UpdateMany(ctx,
		bson.M{"project_id": projectID, "resources.user_id": bson.M{"$ne": userID}},
		resourceops.AppendUpdate(userID, role, now))
	return err
}

// UpsertPendingMany applies the invite upsert on an explicit id set in one
// unordered bulk write (invite with chosen subsections, company fan-out).
func (s *Store) UpsertPendingMany(ctx context.Context, ids []primitive.ObjectID, userID primitive.ObjectID, role string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	var ms []mongo.WriteModel
	for _, id := range ids {
		ms = append(ms, resourceops.UpsertPendingModels(id, userID, role, now)...)
	}
	_, err := s.c.BulkWrite(ctx, ms, options.BulkWrite().SetOrdered(false))
	return err
}

// ApproveAllForUser flips the user's entries to approved/active across
// every subsection of a project. Approval always cascades downward.
func (s *Store) ApproveAllForUser(ctx context.Context, projectID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"project_id": projectID,
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.ApproveUpdate(time.Now().UTC()))
	return err
}

// ApproveByProjects is the company-scope variant of ApproveAllForUser.
func (s *Store) ApproveByProjects(ctx context.Context, projectIDs []primitive.ObjectID, userID primitive.ObjectID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"project_id": bson.M{"$in": projectIDs},
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.ApproveUpdate(time.Now().UTC()))
	return err
}

// UnapproveAllForUser clears approval on the user's entries across every
// subsection of a project, leaving their status in place.
func (s *Store) UnapproveAllForUser(ctx context.Context, projectID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"project_id": projectID,
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.UnapproveUpdate("", time.Now().UTC()))
	return err
}

// UnapproveByProjects clears approval and records the status across every
// subsection of the given projects (company removal fan-out).
func (s *Store) UnapproveByProjects(ctx context.Context, projectIDs []primitive.ObjectID, userID primitive.ObjectID, status models.MembershipStatus) error {
	if len(projectIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{
			"project_id": bson.M{"$in": projectIDs},
			"resources":  bson.M{"$elemMatch": bson.M{"user_id": userID}},
		},
		resourceops.UnapproveUpdate(status, time.Now().UTC()))
	return err
}

// UnapproveOne clears approval on exactly one subsection entry, leaving the
// status and the parent project untouched. Returns the updated subsection
// so callers can reach the parent project id.
func (s *Store) UnapproveOne(ctx context.Context, subSectionID, userID primitive.ObjectID) (*models.SubSection, error) {
	after := options.After
	var sub models.SubSection
	err := s.c.FindOneAndUpdate(ctx,
		resourceops.EntryFilter(subSectionID, userID),
		resourceops.UnapproveUpdate("", time.Now().UTC()),
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ApproveOrAddOne approves the user's entry on one subsection, appending a
// fresh active entry when none exists. Used when an already-approved
// project member is pulled into a subsection, so there is no pending leg.
// Reports whether a new entry was created.
func (s *Store) ApproveOrAddOne(ctx context.Context, subSectionID, userID primitive.ObjectID, role string) (*models.SubSection, bool, error) {
	now := time.Now().UTC()
	after := options.After

	var sub models.SubSection
	err := s.c.FindOneAndUpdate(ctx,
		resourceops.EntryFilter(subSectionID, userID),
		resourceops.ApproveUpdate(now),
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&sub)
	if err == nil {
		return &sub, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": subSectionID},
		bson.M{
			"$push": bson.M{"resources": bson.M{
				"user_id":     userID,
				"user_role":   role,
				"is_approved": true,
				"status":      models.StatusActive,
				"created_at":  now,
			}},
			"$set": bson.M{"updated_at": now},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &sub, true, nil
}

// ApprovedResources returns the subsection name and only the approved
// entries, filtered server-side.
func (s *Store) ApprovedResources(ctx context.Context, subSectionID primitive.ObjectID) (string, []models.ResourceEntry, error) {
	var sub models.SubSection
	err := s.c.FindOne(ctx,
		bson.M{"_id": subSectionID},
		options.FindOne().SetProjection(bson.M{
			"project_name": 1,
			"resources": bson.M{"$filter": bson.M{
				"input": "$resources",
				"as":    "resource",
				"cond":  bson.M{"$eq": bson.A{"$$resource.is_approved", true}},
			}},
		}),
	).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	if sub.Resources == nil {
		sub.Resources = []models.ResourceEntry{}
	}
	return sub.ProjectName, sub.Resources, nil
}
