// internal/app/membership/quota.go

package membership

import (
	"fmt"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// The quota gate is a pure check over the company's subscription and the
// current counts. It runs at invite time and again at acceptance time:
// two pending invites can both pass a stale count, and the window between
// invite and acceptance can outlive the plan. That race is accepted; the
// re-check at acceptance is the backstop, not a lock.

// CheckPlanActive fails when the company has no active subscription.
func CheckPlanActive(sub *models.Subscription, message string) error {
	if sub == nil || !sub.IsActive {
		return apierror.New(apierror.KindPlanExpired, message)
	}
	return nil
}

// CheckProjectQuota gates project creation on the plan's project limit.
func CheckProjectQuota(sub *models.Subscription, projectCount int64) error {
	if err := CheckPlanActive(sub, "You cannot create a project because your plan has expired."); err != nil {
		return err
	}
	plan := sub.PlanID
	if plan.FreeTrial && projectCount >= 1 {
		return apierror.New(apierror.KindTrialLimit, fmt.Sprintf(
			"Your %s plan is a free trial and is limited to 1 project. Please upgrade to create more projects.",
			plan.PlanName))
	}
	if projectCount >= int64(plan.TotalProject) {
		return apierror.New(apierror.KindQuotaExceeded, fmt.Sprintf(
			"Your current plan is %s, and you are limited to %d projects.",
			plan.PlanName, plan.TotalProject))
	}
	return nil
}

// CheckConsultantQuota gates invites on the plan's consultant limit.
// Approved admin-tier entries are exempt from the count.
func CheckConsultantQuota(sub *models.Subscription, approvedConsultants int) error {
	if approvedConsultants >= sub.PlanID.TotalConsultant {
		return apierror.New(apierror.KindQuotaExceeded, fmt.Sprintf(
			"Your current plan is %s, and you are limited to %d consultants.",
			sub.PlanID.PlanName, sub.PlanID.TotalConsultant))
	}
	return nil
}
