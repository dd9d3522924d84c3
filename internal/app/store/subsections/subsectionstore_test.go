package subsectionstore_test

import (
	"testing"

	subsectionstore "github.com/ktguru/project-service/internal/app/store/subsections"
	"github.com/ktguru/project-service/internal/app/system/indexes"
	"github.com/ktguru/project-service/internal/domain/models"
	"github.com/ktguru/project-service/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := subsectionstore.New(db)
	admin := primitive.NewObjectID()

	sub, err := store.Create(ctx, models.SubSection{
		ProjectName: "Backend",
		ProjectDesc: "API work",
		Technology:  "Go",
		ProjectID:   primitive.NewObjectID(),
		CreatedBy:   admin,
		Resources:   []models.ResourceEntry{testutil.ActiveEntry(admin, models.RoleProjectAdmin)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID.IsZero() {
		t.Fatal("Create: id not assigned")
	}

	got, err := store.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ProjectName != "Backend" {
		t.Fatalf("GetByID: got %+v", got)
	}
	if len(got.Resources) != 1 {
		t.Errorf("resources: got %d, want 1", len(got.Resources))
	}
}

func TestCreateDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.SubSection{ProjectName: "Backend", ProjectID: projectID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Uniqueness is case-insensitive per project.
	_, err := store.Create(ctx, models.SubSection{ProjectName: "BACKEND", ProjectID: projectID})
	if err != subsectionstore.ErrDuplicateName {
		t.Errorf("duplicate create: got %v, want ErrDuplicateName", err)
	}

	// The same name under another project is fine.
	if _, err := store.Create(ctx, models.SubSection{ProjectName: "Backend", ProjectID: primitive.NewObjectID()}); err != nil {
		t.Errorf("create under other project: %v", err)
	}
}

func TestListForUserApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	fx.CreateSubSection(ctx, "Approved", projectID, testutil.ActiveEntry(uid, models.RoleConsultant))
	fx.CreateSubSection(ctx, "Pending", projectID, testutil.PendingEntry(uid, models.RoleConsultant))
	fx.CreateSubSection(ctx, "Absent", projectID)
	fx.CreateSubSection(ctx, "OtherProject", primitive.NewObjectID(), testutil.ActiveEntry(uid, models.RoleConsultant))

	got, err := store.ListForUserApproved(ctx, projectID, uid)
	if err != nil {
		t.Fatalf("ListForUserApproved: %v", err)
	}
	if len(got) != 1 || got[0].ProjectName != "Approved" {
		t.Errorf("ListForUserApproved: got %d subsections", len(got))
	}
}

func TestListNotMatching(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	fx.CreateSubSection(ctx, "Approved", projectID, testutil.ActiveEntry(uid, models.RoleConsultant))
	fx.CreateSubSection(ctx, "Pending", projectID, testutil.PendingEntry(uid, models.RoleConsultant))
	fx.CreateSubSection(ctx, "Absent", projectID)

	got, err := store.ListNotMatching(ctx, projectID, uid)
	if err != nil {
		t.Fatalf("ListNotMatching: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListNotMatching: got %d, want 2", len(got))
	}
	for _, sub := range got {
		if sub.ProjectName == "Approved" {
			t.Error("ListNotMatching returned an approved subsection")
		}
	}
}

func TestUpsertPendingAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	s1 := fx.CreateSubSection(ctx, "Fresh", projectID)
	s2 := fx.CreateSubSection(ctx, "Removed", projectID,
		testutil.Entry(uid, models.RoleConsultant, false, models.StatusRemovedByAdmin))
	s3 := fx.CreateSubSection(ctx, "Approved", projectID, testutil.ActiveEntry(uid, models.RoleConsultant))

	if err := store.UpsertPendingAll(ctx, projectID, uid, models.RoleProjectAdmin); err != nil {
		t.Fatalf("UpsertPendingAll: %v", err)
	}

	got, _ := store.GetByID(ctx, s1.ID)
	if entry := got.Resource(uid); entry == nil || entry.Status != models.StatusPending {
		t.Errorf("fresh subsection: entry %+v", entry)
	}

	got, _ = store.GetByID(ctx, s2.ID)
	if entry := got.Resource(uid); entry.Status != models.StatusPending || entry.IsApproved {
		t.Errorf("removed entry not reset: %+v", entry)
	}

	// An approved entry is left alone.
	got, _ = store.GetByID(ctx, s3.ID)
	if entry := got.Resource(uid); !entry.IsApproved || entry.Status != models.StatusActive {
		t.Errorf("approved entry touched: %+v", entry)
	}
	if len(got.Resources) != 1 {
		t.Errorf("approved subsection gained entries: %d", len(got.Resources))
	}
}

func TestApproveAndUnapproveAllForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	s1 := fx.CreateSubSection(ctx, "One", projectID, testutil.PendingEntry(uid, models.RoleConsultant))
	s2 := fx.CreateSubSection(ctx, "Two", projectID, testutil.PendingEntry(uid, models.RoleConsultant))

	if err := store.ApproveAllForUser(ctx, projectID, uid); err != nil {
		t.Fatalf("ApproveAllForUser: %v", err)
	}
	for _, id := range []primitive.ObjectID{s1.ID, s2.ID} {
		got, _ := store.GetByID(ctx, id)
		if entry := got.Resource(uid); !entry.IsApproved || entry.Status != models.StatusActive {
			t.Errorf("subsection %s: entry %+v", got.ProjectName, entry)
		}
	}

	if err := store.UnapproveAllForUser(ctx, projectID, uid); err != nil {
		t.Fatalf("UnapproveAllForUser: %v", err)
	}
	got, _ := store.GetByID(ctx, s1.ID)
	if entry := got.Resource(uid); entry.IsApproved {
		t.Errorf("entry still approved: %+v", entry)
	}
}

func TestUnapproveOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	target := fx.CreateSubSection(ctx, "Target", projectID, testutil.ActiveEntry(uid, models.RoleConsultant))
	sibling := fx.CreateSubSection(ctx, "Sibling", projectID, testutil.ActiveEntry(uid, models.RoleConsultant))

	got, err := store.UnapproveOne(ctx, target.ID, uid)
	if err != nil {
		t.Fatalf("UnapproveOne: %v", err)
	}
	if got == nil {
		t.Fatal("UnapproveOne: got nil")
	}
	if got.ProjectID != projectID {
		t.Errorf("parent project id: got %s", got.ProjectID.Hex())
	}
	if entry := got.Resource(uid); entry.IsApproved {
		t.Errorf("entry still approved: %+v", entry)
	}

	// The sibling subsection is untouched.
	sib, _ := store.GetByID(ctx, sibling.ID)
	if entry := sib.Resource(uid); !entry.IsApproved {
		t.Error("sibling entry lost approval")
	}

	missing, err := store.UnapproveOne(ctx, primitive.NewObjectID(), uid)
	if err != nil {
		t.Fatalf("UnapproveOne missing: %v", err)
	}
	if missing != nil {
		t.Error("UnapproveOne for unknown subsection: got doc, want nil")
	}
}

func TestApproveOrAddOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	projectID := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	sub := fx.CreateSubSection(ctx, "Target", projectID)

	got, created, err := store.ApproveOrAddOne(ctx, sub.ID, uid, models.RoleConsultant)
	if err != nil {
		t.Fatalf("ApproveOrAddOne: %v", err)
	}
	if !created {
		t.Error("expected a new entry")
	}
	entry := got.Resource(uid)
	if entry == nil || !entry.IsApproved || entry.Status != models.StatusActive {
		t.Errorf("new entry: %+v", entry)
	}

	// Second call approves in place instead of appending.
	got, created, err = store.ApproveOrAddOne(ctx, sub.ID, uid, models.RoleConsultant)
	if err != nil {
		t.Fatalf("ApproveOrAddOne second: %v", err)
	}
	if created {
		t.Error("second call appended a duplicate entry")
	}
	if len(got.Resources) != 1 {
		t.Errorf("resources: got %d, want 1", len(got.Resources))
	}

	missing, _, err := store.ApproveOrAddOne(ctx, primitive.NewObjectID(), uid, models.RoleConsultant)
	if err != nil {
		t.Fatalf("ApproveOrAddOne missing: %v", err)
	}
	if missing != nil {
		t.Error("ApproveOrAddOne for unknown subsection: got doc, want nil")
	}
}

func TestDistinctIDsByProjects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()

	fx.CreateSubSection(ctx, "One", p1)
	fx.CreateSubSection(ctx, "Two", p1)
	fx.CreateSubSection(ctx, "Three", p2)
	fx.CreateSubSection(ctx, "Other", primitive.NewObjectID())

	ids, err := store.DistinctIDsByProjects(ctx, []primitive.ObjectID{p1, p2})
	if err != nil {
		t.Fatalf("DistinctIDsByProjects: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("ids: got %d, want 3", len(ids))
	}

	none, err := store.DistinctIDsByProjects(ctx, nil)
	if err != nil {
		t.Fatalf("DistinctIDsByProjects empty: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty input: got %d ids", len(none))
	}
}

func TestApprovedResources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := subsectionstore.New(db)
	approved := primitive.NewObjectID()
	sub := fx.CreateSubSection(ctx, "Backend", primitive.NewObjectID(),
		testutil.ActiveEntry(approved, models.RoleConsultant),
		testutil.PendingEntry(primitive.NewObjectID(), models.RoleConsultant))

	name, entries, err := store.ApprovedResources(ctx, sub.ID)
	if err != nil {
		t.Fatalf("ApprovedResources: %v", err)
	}
	if name != "Backend" {
		t.Errorf("name: got %q", name)
	}
	if len(entries) != 1 || entries[0].UserID != approved {
		t.Errorf("entries: got %+v", entries)
	}
}
