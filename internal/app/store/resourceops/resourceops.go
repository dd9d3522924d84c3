// internal/app/store/resourceops/resourceops.go

// Package resourceops provides the upsert-by-key primitive shared by every
// cascade path over embedded resource arrays. Keyed by (aggregateId, userId):
// update the entry in place when one exists, append a fresh pending entry
// when it does not. All project and subsection stores build their writes
// from these helpers so the duplicate-entry rules cannot diverge.
package resourceops

import (
	"time"

	"github.com/ktguru/project-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PendingEntry is the document appended when the user has no entry yet.
func PendingEntry(userID primitive.ObjectID, role string, now time.Time) bson.M {
	return bson.M{
		"user_id":     userID,
		"user_role":   role,
		"is_approved": false,
		"status":      models.StatusPending,
		"created_at":  now,
	}
}

// ReinviteFilter matches an aggregate holding an unapproved entry for the
// user. The is_approved guard makes the write a no-op against an approved
// member even when racing a concurrent approval.
func ReinviteFilter(aggregateID, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id": aggregateID,
		"resources": bson.M{
			"$elemMatch": bson.M{"user_id": userID, "is_approved": false},
		},
	}
}

// ReinviteUpdate resets the matched entry to pending and stamps the
// re-invitation time.
func ReinviteUpdate(now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"resources.$.status":     models.StatusPending,
		"resources.$.created_at": now,
		"updated_at":             now,
	}}
}

// AppendFilter matches an aggregate with no entry at all for the user.
// Combined with ReinviteFilter it forms a check-free upsert: exactly one of
// the two writes matches, so concurrent invites for different users never
// duplicate entries.
func AppendFilter(aggregateID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": aggregateID, "resources.user_id": bson.M{"$ne": userID}}
}

// AppendUpdate pushes a fresh pending entry.
func AppendUpdate(userID primitive.ObjectID, role string, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"resources": PendingEntry(userID, role, now)},
		"$set":  bson.M{"updated_at": now},
	}
}

// UpsertPendingModels returns the write-model pair implementing the upsert
// for one aggregate, for use inside a BulkWrite fan-out. At most one of the
// pair matches any given document.
func UpsertPendingModels(aggregateID, userID primitive.ObjectID, role string, now time.Time) []mongo.WriteModel {
	return []mongo.WriteModel{
		mongo.NewUpdateOneModel().
			SetFilter(ReinviteFilter(aggregateID, userID)).
			SetUpdate(ReinviteUpdate(now)),
		mongo.NewUpdateOneModel().
			SetFilter(AppendFilter(aggregateID, userID)).
			SetUpdate(AppendUpdate(userID, role, now)),
	}
}

// ApproveUpdate flips the matched entry to approved/active.
func ApproveUpdate(now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"resources.$.is_approved": true,
		"resources.$.status":      models.StatusActive,
		"updated_at":              now,
	}}
}

// UnapproveUpdate clears approval and, when status is non-empty, records
// why (removedByAdmin or rejectedByUser). An empty status leaves the
// previous status in place, which is how single-subsection removal works.
func UnapproveUpdate(status models.MembershipStatus, now time.Time) bson.M {
	set := bson.M{
		"resources.$.is_approved": false,
		"updated_at":              now,
	}
	if status != "" {
		set["resources.$.status"] = status
	}
	return bson.M{"$set": set}
}

// EntryFilter matches an aggregate holding any entry for the user.
func EntryFilter(aggregateID, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":       aggregateID,
		"resources": bson.M{"$elemMatch": bson.M{"user_id": userID}},
	}
}
