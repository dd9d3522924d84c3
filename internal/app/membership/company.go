// internal/app/membership/company.go

package membership

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/clients/identity"
	"github.com/ktguru/project-service/internal/app/events"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// AddCompanyAdminInput is a validated company-admin invite intent.
type AddCompanyAdminInput struct {
	CompanyID primitive.ObjectID
	Email     string
	Message   string
	AddedBy   primitive.ObjectID
}

// AddCompanyAdmin invites an email as companyAdmin across every project of
// the company and every subsection under those projects. Enterprise plans
// only. The fan-out is plan-then-apply: collect the id sets first, then
// bulk-upsert pending entries keyed by (aggregate, user).
func (e *Engine) AddCompanyAdmin(ctx context.Context, in AddCompanyAdminInput) error {
	sub, err := e.subscriptions.ActiveSubscription(ctx, in.CompanyID.Hex())
	if err != nil {
		return err
	}
	if err := CheckPlanActive(sub, "You cannot add a company admin because your plan has expired."); err != nil {
		return err
	}
	if sub.PlanID.PlanName != models.PlanEnterprise {
		return apierror.New(apierror.KindPlanRestriction, fmt.Sprintf(
			"Your current plan is %s, you are not allowed to add company admin. Kindly upgrade your subscription to %s Plan if you wish to add more Company Admins. Please drop a note to info@ktguru.com",
			sub.PlanID.PlanName, models.PlanEnterprise))
	}

	user, err := e.identity.AddUser(ctx, identity.AddUserInput{
		Email:     in.Email,
		Role:      models.RoleCompanyAdmin,
		CompanyID: in.CompanyID.Hex(),
		AddedBy:   in.AddedBy.Hex(),
	})
	if err != nil {
		return err
	}
	userID, err := primitive.ObjectIDFromHex(user.UserID)
	if err != nil {
		return apierror.Wrap(apierror.KindDependencyUnavailable, "identity service returned a malformed user id", err)
	}

	projectIDs, subSectionIDs, err := e.companyScope(ctx, in.CompanyID)
	if err != nil {
		return err
	}
	if err := e.projects.UpsertPendingMany(ctx, projectIDs, userID, models.RoleCompanyAdmin); err != nil {
		return err
	}
	if err := e.subsections.UpsertPendingMany(ctx, subSectionIDs, userID, models.RoleCompanyAdmin); err != nil {
		e.log.Error("company admin subsection fan-out failed",
			zap.String("company_id", in.CompanyID.Hex()), zap.Error(err))
	}

	e.emit.UserInvited(ctx, user.UserID, user.UserID, false,
		append(hexIDs(projectIDs), hexIDs(subSectionIDs)...))
	e.emit.CompanyAdminInvited(ctx, events.Invitation{
		To:          in.Email,
		InvitedID:   user.UserID,
		AddedBy:     in.AddedBy,
		URL:         user.URL,
		DeclineURL:  user.DeclineURL,
		Role:        models.RoleCompanyAdmin,
		Message:     in.Message,
		CompanyName: user.CompanyName,
	})
	return nil
}

// RemoveFromCompany ends a user's membership everywhere in a company: the
// directory is told first, then approval is cleared across every project
// and subsection, then the chat service is told to drop the user.
func (e *Engine) RemoveFromCompany(ctx context.Context, companyID, userID primitive.ObjectID) error {
	if _, err := e.identity.RemoveFromCompany(ctx,
		companyID.Hex(), userID.Hex(), models.StatusRemovedByAdmin); err != nil {
		return err
	}

	if err := e.projects.UnapproveByCompany(ctx, companyID, userID, models.StatusRemovedByAdmin); err != nil {
		return err
	}

	projectIDs, subSectionIDs, err := e.companyScope(ctx, companyID)
	if err != nil {
		return err
	}
	if err := e.subsections.UnapproveByProjects(ctx, projectIDs, userID, models.StatusRemovedByAdmin); err != nil {
		e.log.Error("company removal subsection fan-out failed",
			zap.String("company_id", companyID.Hex()), zap.Error(err))
	}

	e.emit.ApprovalChanged(ctx, userID.Hex(), false,
		append(hexIDs(projectIDs), hexIDs(subSectionIDs)...))
	return nil
}

// companyScope resolves the company's project ids and the transitive
// subsection ids, in that order.
func (e *Engine) companyScope(ctx context.Context, companyID primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	projectIDs, err := e.projects.DistinctIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	subSectionIDs, err := e.subsections.DistinctIDsByProjects(ctx, projectIDs)
	if err != nil {
		return nil, nil, err
	}
	return projectIDs, subSectionIDs, nil
}
