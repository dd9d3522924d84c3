// internal/app/membership/tokens.go

package membership

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/clients/identity"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// tokenScope is a verification token with its ids parsed. Exactly one of
// projectID/companyID is set for project and company invites respectively;
// a company-admin token may carry both empty projectID and a companyID.
type tokenScope struct {
	token     *models.VerificationToken
	userID    primitive.ObjectID
	addedBy   primitive.ObjectID
	projectID primitive.ObjectID
	companyID primitive.ObjectID
}

func (e *Engine) resolveToken(ctx context.Context, token string) (*tokenScope, error) {
	td, err := e.identity.GetToken(ctx, token)
	if err != nil {
		return nil, err
	}

	sc := &tokenScope{token: td}
	if sc.userID, err = primitive.ObjectIDFromHex(td.UserID); err != nil {
		return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "token carries a malformed user id", err)
	}
	if td.AddedBy != "" {
		if sc.addedBy, err = primitive.ObjectIDFromHex(td.AddedBy); err != nil {
			return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "token carries a malformed inviter id", err)
		}
	}
	if td.ProjectID != "" {
		if sc.projectID, err = primitive.ObjectIDFromHex(td.ProjectID); err != nil {
			return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "token carries a malformed project id", err)
		}
	}
	if td.CompanyID != "" {
		if sc.companyID, err = primitive.ObjectIDFromHex(td.CompanyID); err != nil {
			return nil, apierror.Wrap(apierror.KindDependencyUnavailable, "token carries a malformed company id", err)
		}
	}
	return sc, nil
}

// SignupInput is the profile a fresh invitee completes during signup.
type SignupInput struct {
	FirstName string
	LastName  string
	Password  string
}

// SignupViaToken finishes onboarding for a user who did not have an
// account when invited: re-check the quota, create the account in the
// directory, then approve everywhere the token grants. The token is
// deleted last, after all transitions succeed.
func (e *Engine) SignupViaToken(ctx context.Context, token string, in SignupInput) error {
	sc, err := e.resolveToken(ctx, token)
	if err != nil {
		return err
	}

	if !sc.projectID.IsZero() {
		if err := e.recheckQuota(ctx, sc, true); err != nil {
			return err
		}
	}

	if err := e.identity.Signup(ctx, identity.SignupInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  in.Password,
		UserID:    sc.token.UserID,
		CompanyID: sc.token.CompanyID,
		Role:      sc.token.Role,
	}); err != nil {
		return err
	}

	return e.approveScope(ctx, sc)
}

// VerifyViaToken accepts an invitation for an existing account: re-check
// the quota, then approve everywhere the token grants. Token deleted last.
func (e *Engine) VerifyViaToken(ctx context.Context, token string) error {
	sc, err := e.resolveToken(ctx, token)
	if err != nil {
		return err
	}

	if !sc.projectID.IsZero() {
		if err := e.recheckQuota(ctx, sc, false); err != nil {
			return err
		}
	}

	return e.approveScope(ctx, sc)
}

// approveScope flips approval across the token's scope, announces the
// change, and consumes the token.
func (e *Engine) approveScope(ctx context.Context, sc *tokenScope) error {
	var chatIDs []string

	switch {
	case sc.token.Role == models.RoleCompanyAdmin:
		if err := e.projects.ApproveByCompany(ctx, sc.companyID, sc.userID); err != nil {
			return err
		}
		projectIDs, subSectionIDs, err := e.companyScope(ctx, sc.companyID)
		if err != nil {
			return err
		}
		if err := e.subsections.ApproveByProjects(ctx, projectIDs, sc.userID); err != nil {
			e.log.Error("company approval subsection fan-out failed",
				zap.String("company_id", sc.companyID.Hex()), zap.Error(err))
		}
		chatIDs = append(hexIDs(projectIDs), hexIDs(subSectionIDs)...)

	default:
		if err := e.projects.Approve(ctx, sc.projectID, sc.userID); err != nil {
			return err
		}
		if err := e.subsections.ApproveAllForUser(ctx, sc.projectID, sc.userID); err != nil {
			e.log.Error("approval subsection cascade failed",
				zap.String("project_id", sc.projectID.Hex()), zap.Error(err))
		}
		subSectionIDs, err := e.subsections.DistinctIDsByProjects(ctx, []primitive.ObjectID{sc.projectID})
		if err != nil {
			return err
		}
		chatIDs = append(hexIDs(subSectionIDs), sc.projectID.Hex())
	}

	e.emit.ApprovalChanged(ctx, sc.token.UserID, true, chatIDs)
	return e.identity.DeleteToken(ctx, sc.token.ID)
}

// recheckQuota re-runs the consultant gate at acceptance time. The plan or
// quota can change between invite and acceptance, so a stale invitation
// fails here rather than over-admitting. withInviter picks the message
// style shown to a fresh signup, which names the inviter's address.
func (e *Engine) recheckQuota(ctx context.Context, sc *tokenScope, withInviter bool) error {
	project, err := e.projects.GetByID(ctx, sc.projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apierror.New(apierror.KindNotFound, "Project not found")
	}

	sub, err := e.subscriptions.ActiveSubscription(ctx, project.CompanyID.Hex())
	if err != nil {
		return err
	}

	inviterEmail := "admin"
	if withInviter && !sc.addedBy.IsZero() {
		if u, err := e.users.GetByUserID(ctx, sc.addedBy); err == nil && u != nil && u.Email != "" {
			inviterEmail = u.Email
		}
	}

	if sub == nil || !sub.IsActive {
		return apierror.New(apierror.KindInvitationExpired, fmt.Sprintf(
			"Oops, plan has expired, please reach out to %s", inviterEmail))
	}
	if project.ApprovedConsultantCount() >= sub.PlanID.TotalConsultant {
		if withInviter {
			return apierror.New(apierror.KindInvitationExpired, fmt.Sprintf(
				"Oops, the invitation timed out, please reach out to %s from %s",
				inviterEmail, project.ProjectName))
		}
		return apierror.New(apierror.KindInvitationExpired, fmt.Sprintf(
			"We apologize, but it's not possible for you to accept the invitation due to the project's restriction of %d consultants. Please reach out to the project administrator.",
			sub.PlanID.TotalConsultant))
	}
	return nil
}

// DeclineViaToken turns an invitation down. A project invite marks only
// the project entry rejectedByUser; subsection entries keep their prior
// status. A company-admin invite mirrors RemoveFromCompany across the
// whole company. The inviter is notified by mail and the token consumed.
func (e *Engine) DeclineViaToken(ctx context.Context, token string) error {
	sc, err := e.resolveToken(ctx, token)
	if err != nil {
		return err
	}

	var entityName string

	if !sc.projectID.IsZero() {
		project, err := e.projects.Unapprove(ctx, sc.projectID, sc.userID, models.StatusRejectedByUser)
		if err != nil {
			return err
		}
		if project != nil {
			entityName = project.ProjectName
		}
	}

	if sc.token.Role == models.RoleCompanyAdmin {
		member, err := e.identity.RemoveFromCompany(ctx,
			sc.token.CompanyID, sc.token.UserID, models.StatusRejectedByUser)
		if err != nil {
			return err
		}
		entityName = member.CompanyName

		if err := e.projects.UnapproveByCompany(ctx, sc.companyID, sc.userID, models.StatusRejectedByUser); err != nil {
			return err
		}
		projectIDs, err := e.projects.DistinctIDsByCompany(ctx, sc.companyID)
		if err != nil {
			return err
		}
		if err := e.subsections.UnapproveByProjects(ctx, projectIDs, sc.userID, models.StatusRejectedByUser); err != nil {
			e.log.Error("decline subsection fan-out failed",
				zap.String("company_id", sc.companyID.Hex()), zap.Error(err))
		}
	}

	if !sc.addedBy.IsZero() {
		e.emit.InvitationDeclined(ctx, sc.addedBy, sc.userID, entityName)
	}
	return e.identity.DeleteToken(ctx, sc.token.ID)
}
