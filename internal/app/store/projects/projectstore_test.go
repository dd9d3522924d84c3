package projectstore_test

import (
	"testing"

	projectstore "github.com/ktguru/project-service/internal/app/store/projects"
	"github.com/ktguru/project-service/internal/domain/models"
	"github.com/ktguru/project-service/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	creator := primitive.NewObjectID()

	p, err := store.Create(ctx, models.Project{
		ProjectName: "Apollo",
		ProjectDesc: "Lunar program",
		Technology:  "Go",
		CompanyID:   primitive.NewObjectID(),
		CreatedBy:   creator,
		Resources:   []models.ResourceEntry{testutil.ActiveEntry(creator, models.RoleCompany)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID.IsZero() {
		t.Fatal("Create: id not assigned")
	}
	if !p.IsActive {
		t.Error("Create: project not active")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID: got nil")
	}
	if got.ProjectName != "Apollo" {
		t.Errorf("name: got %q", got.ProjectName)
	}
	if len(got.Resources) != 1 || !got.Resources[0].IsApproved {
		t.Errorf("resources: got %+v", got.Resources)
	}
	if got.Resources[0].CreatedAt.IsZero() {
		t.Error("resource created_at not stamped")
	}
}

func TestCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)

	if _, err := store.Create(ctx, models.Project{CompanyID: primitive.NewObjectID()}); err == nil {
		t.Error("Create without name: expected error")
	}
	if _, err := store.Create(ctx, models.Project{ProjectName: "X"}); err == nil {
		t.Error("Create without company: expected error")
	}
}

func TestGetByIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	got, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Error("GetByID for unknown id: got project, want nil")
	}
}

func TestUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(), testutil.ActiveEntry(uid, models.RoleCompany))

	got, err := store.Update(ctx, p.ID, "Artemis", "New program", "Rust")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got == nil {
		t.Fatal("Update: got nil")
	}
	if got.ProjectName != "Artemis" || got.Technology != "Rust" {
		t.Errorf("updated doc: got %q/%q", got.ProjectName, got.Technology)
	}
	// Membership must survive a descriptive update.
	if len(got.Resources) != 1 || got.Resources[0].UserID != uid {
		t.Errorf("resources after update: got %+v", got.Resources)
	}

	missing, err := store.Update(ctx, primitive.NewObjectID(), "X", "", "")
	if err != nil {
		t.Fatalf("Update missing: %v", err)
	}
	if missing != nil {
		t.Error("Update for unknown id: got project, want nil")
	}
}

func TestListForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	company := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	fx.CreateProject(ctx, "Approved", company, testutil.ActiveEntry(uid, models.RoleConsultant))
	fx.CreateProject(ctx, "Pending", company, testutil.PendingEntry(uid, models.RoleConsultant))
	fx.CreateProject(ctx, "Unrelated", company)

	got, err := store.ListForUser(ctx, uid)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(got) != 1 || got[0].ProjectName != "Approved" {
		t.Errorf("ListForUser: got %d projects", len(got))
	}
}

func TestRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(), testutil.ActiveEntry(uid, models.RoleProjectAdmin))

	entry, err := store.Role(ctx, p.ID, uid)
	if err != nil {
		t.Fatalf("Role: %v", err)
	}
	if entry == nil || entry.UserRole != models.RoleProjectAdmin {
		t.Errorf("Role: got %+v", entry)
	}

	none, err := store.Role(ctx, p.ID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Role unknown user: %v", err)
	}
	if none != nil {
		t.Error("Role for non-member: got entry, want nil")
	}
}

func TestUpsertPendingAppends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID())
	uid := primitive.NewObjectID()

	created, err := store.UpsertPending(ctx, p.ID, uid, models.RoleConsultant)
	if err != nil {
		t.Fatalf("UpsertPending: %v", err)
	}
	if !created {
		t.Error("UpsertPending: expected a new entry")
	}

	got, _ := store.GetByID(ctx, p.ID)
	entry := got.Resource(uid)
	if entry == nil {
		t.Fatal("entry not appended")
	}
	if entry.IsApproved || entry.Status != models.StatusPending {
		t.Errorf("entry state: got %+v", entry)
	}
}

func TestUpsertPendingReinvites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(),
		testutil.Entry(uid, models.RoleConsultant, false, models.StatusRemovedByAdmin))

	created, err := store.UpsertPending(ctx, p.ID, uid, models.RoleConsultant)
	if err != nil {
		t.Fatalf("UpsertPending: %v", err)
	}
	if created {
		t.Error("UpsertPending: re-invite should reset, not append")
	}

	got, _ := store.GetByID(ctx, p.ID)
	if len(got.Resources) != 1 {
		t.Fatalf("resources: got %d, want 1", len(got.Resources))
	}
	if got.Resources[0].Status != models.StatusPending {
		t.Errorf("status after re-invite: got %q, want pending", got.Resources[0].Status)
	}
}

func TestUpsertPendingAlreadyApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(), testutil.ActiveEntry(uid, models.RoleConsultant))

	_, err := store.UpsertPending(ctx, p.ID, uid, models.RoleConsultant)
	if err != projectstore.ErrAlreadyMember {
		t.Errorf("UpsertPending on approved member: got %v, want ErrAlreadyMember", err)
	}

	// The approved entry must be untouched.
	got, _ := store.GetByID(ctx, p.ID)
	if !got.Resources[0].IsApproved || got.Resources[0].Status != models.StatusActive {
		t.Errorf("approved entry modified: %+v", got.Resources[0])
	}
}

func TestApproveAndUnapprove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(), testutil.PendingEntry(uid, models.RoleConsultant))

	if err := store.Approve(ctx, p.ID, uid); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if !got.Resources[0].IsApproved || got.Resources[0].Status != models.StatusActive {
		t.Errorf("after approve: got %+v", got.Resources[0])
	}

	updated, err := store.Unapprove(ctx, p.ID, uid, models.StatusRemovedByAdmin)
	if err != nil {
		t.Fatalf("Unapprove: %v", err)
	}
	if updated == nil {
		t.Fatal("Unapprove: got nil project")
	}
	entry := updated.Resource(uid)
	if entry.IsApproved || entry.Status != models.StatusRemovedByAdmin {
		t.Errorf("after unapprove: got %+v", entry)
	}
}

func TestUnapproveMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	got, err := store.Unapprove(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.StatusRemovedByAdmin)
	if err != nil {
		t.Fatalf("Unapprove: %v", err)
	}
	if got != nil {
		t.Error("Unapprove for unknown entry: got project, want nil")
	}
}

func TestCompanyFanOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	company := primitive.NewObjectID()
	other := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	p1 := fx.CreateProject(ctx, "One", company)
	p2 := fx.CreateProject(ctx, "Two", company, testutil.Entry(uid, models.RoleCompanyAdmin, false, models.StatusRejectedByUser))
	fx.CreateProject(ctx, "Other", other)

	ids, err := store.DistinctIDsByCompany(ctx, company)
	if err != nil {
		t.Fatalf("DistinctIDsByCompany: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("company ids: got %d, want 2", len(ids))
	}

	if err := store.UpsertPendingMany(ctx, ids, uid, models.RoleCompanyAdmin); err != nil {
		t.Fatalf("UpsertPendingMany: %v", err)
	}
	for _, id := range []interface{}{p1.ID, p2.ID} {
		got, _ := store.GetByID(ctx, id.(primitive.ObjectID))
		entry := got.Resource(uid)
		if entry == nil || entry.Status != models.StatusPending {
			t.Errorf("project %s: entry %+v", got.ProjectName, entry)
		}
	}

	if err := store.ApproveByCompany(ctx, company, uid); err != nil {
		t.Fatalf("ApproveByCompany: %v", err)
	}
	got, _ := store.GetByID(ctx, p1.ID)
	if !got.Resource(uid).IsApproved {
		t.Error("ApproveByCompany: entry not approved")
	}

	if err := store.UnapproveByCompany(ctx, company, uid, models.StatusRemovedByAdmin); err != nil {
		t.Fatalf("UnapproveByCompany: %v", err)
	}
	got, _ = store.GetByID(ctx, p2.ID)
	entry := got.Resource(uid)
	if entry.IsApproved || entry.Status != models.StatusRemovedByAdmin {
		t.Errorf("UnapproveByCompany: entry %+v", entry)
	}
}

func TestCountByCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	company := primitive.NewObjectID()

	fx.CreateProject(ctx, "One", company)
	fx.CreateProject(ctx, "Two", company)
	fx.CreateProject(ctx, "Other", primitive.NewObjectID())

	n, err := store.CountByCompany(ctx, company)
	if err != nil {
		t.Fatalf("CountByCompany: %v", err)
	}
	if n != 2 {
		t.Errorf("CountByCompany: got %d, want 2", n)
	}
}

func TestSetCompanyActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	company := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", company, testutil.ActiveEntry(uid, models.RoleConsultant))

	if err := store.SetCompanyActive(ctx, company, false); err != nil {
		t.Fatalf("SetCompanyActive: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if got.IsActive {
		t.Error("project still active after company deactivation")
	}
	// Membership state is independent of the active flag.
	if !got.Resource(uid).IsApproved {
		t.Error("membership touched by company deactivation")
	}

	if err := store.SetCompanyActive(ctx, company, true); err != nil {
		t.Fatalf("SetCompanyActive reactivate: %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if !got.IsActive {
		t.Error("project not reactivated")
	}
}

func TestApprovedResources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := projectstore.New(db)
	approved := primitive.NewObjectID()
	p := fx.CreateProject(ctx, "Apollo", primitive.NewObjectID(),
		testutil.ActiveEntry(approved, models.RoleConsultant),
		testutil.PendingEntry(primitive.NewObjectID(), models.RoleConsultant))

	name, entries, err := store.ApprovedResources(ctx, p.ID)
	if err != nil {
		t.Fatalf("ApprovedResources: %v", err)
	}
	if name != "Apollo" {
		t.Errorf("name: got %q", name)
	}
	if len(entries) != 1 || entries[0].UserID != approved {
		t.Errorf("entries: got %+v", entries)
	}

	name, entries, err = store.ApprovedResources(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ApprovedResources missing: %v", err)
	}
	if name != "" || entries != nil {
		t.Errorf("missing project: got %q/%v, want empty", name, entries)
	}
}
