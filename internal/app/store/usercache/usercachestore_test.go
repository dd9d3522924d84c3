package usercachestore_test

import (
	"testing"

	usercachestore "github.com/ktguru/project-service/internal/app/store/usercache"
	"github.com/ktguru/project-service/internal/domain/models"
	"github.com/ktguru/project-service/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestUpsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := usercachestore.New(db)
	uid := primitive.NewObjectID()

	err := store.Upsert(ctx, models.UserCache{
		UserID:    uid,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@test.com",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.GetByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.FullName() != "Grace Hopper" || got.Email != "grace@test.com" {
		t.Errorf("cached user: got %+v", got)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := usercachestore.New(db)
	uid := primitive.NewObjectID()

	if err := store.Upsert(ctx, models.UserCache{UserID: uid, Email: "old@test.com"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, models.UserCache{UserID: uid, Email: "new@test.com", FirstName: "Ada"}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := store.GetByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Email != "new@test.com" || got.FirstName != "Ada" {
		t.Errorf("cached user after overwrite: got %+v", got)
	}

	// Only one document per user.
	n, err := db.Collection("user_cache").CountDocuments(ctx, map[string]interface{}{"user_id": uid})
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 1 {
		t.Errorf("documents: got %d, want 1", n)
	}
}

func TestGetByUserIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := usercachestore.New(db)
	_, err := store.GetByUserID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("GetByUserID for unknown user: got %v, want ErrNoDocuments", err)
	}
}
