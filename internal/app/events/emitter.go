// internal/app/events/emitter.go

// Package events turns membership transitions into domain events on the
// chat and mail topics. Publishing is best effort: a broker outage must
// never fail the request that triggered the event, so every method logs
// failures and returns nothing.
package events

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/broker"
	"github.com/ktguru/project-service/internal/app/store/usercache"
)

// Outbound event types.
const (
	EventAddUserProjectChat = "ADD_USER_PROJECT_CHAT"
	EventIsApproved         = "IS_APPROVED"
	EventSendMail           = "SEND_MAIL"
)

// Mail template names, resolved by the mail service.
const (
	TemplateConsultantInvitation = "consultant-invitation"
	TemplateCompanyInvitation    = "company-invitation"
	TemplateDeclineInvitation    = "decline-invitation"
)

type envelope struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

// chatPayload tells the chat service which rooms a user joins or leaves.
// getProjectIds carries both project and subsection ids; the chat service
// keys its rooms by either.
type chatPayload struct {
	UserID     string   `json:"userId"`
	IsApproved bool     `json:"isApproved"`
	ChatIDs    []string `json:"getProjectIds"`
}

type mailPayload struct {
	To       string      `json:"to"`
	Subject  string      `json:"subject"`
	Context  interface{} `json:"context"`
	Template string      `json:"template"`
}

type invitationContext struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	DeclineURL  string `json:"declineURL"`
	ProjectName string `json:"projectName,omitempty"`
	Role        string `json:"role"`
	Message     string `json:"message"`
	CompanyName string `json:"companyName"`
}

type declineContext struct {
	Name        string `json:"name"`
	InvitedUser string `json:"invitedUser"`
	EntityName  string `json:"entityName"`
}

// Emitter publishes membership events. User display names for mail contexts
// come from the local user cache, not a synchronous identity call.
type Emitter struct {
	pub   broker.Publisher
	users *usercachestore.Store
	log   *zap.Logger
}

func New(pub broker.Publisher, users *usercachestore.Store, log *zap.Logger) *Emitter {
	return &Emitter{pub: pub, users: users, log: log}
}

// UserInvited announces a user to the chat service so rooms exist for the
// listed ids. approved is false for pending invites and true when an
// already-approved member is added directly. key partitions the topic;
// pass the aggregate id the invite belongs to.
func (e *Emitter) UserInvited(ctx context.Context, key, userID string, approved bool, chatIDs []string) {
	e.publish(ctx, broker.TopicChat, key, envelope{
		EventType: EventAddUserProjectChat,
		Data:      chatPayload{UserID: userID, IsApproved: approved, ChatIDs: chatIDs},
	})
}

// ApprovalChanged flips a user's approved flag in the listed chat rooms.
// Fired on verification, admin removal, and company removal.
func (e *Emitter) ApprovalChanged(ctx context.Context, userID string, approved bool, chatIDs []string) {
	e.publish(ctx, broker.TopicChat, userID, envelope{
		EventType: EventIsApproved,
		Data:      chatPayload{UserID: userID, IsApproved: approved, ChatIDs: chatIDs},
	})
}

// Invitation is everything a consultant or company-admin invite mail needs.
type Invitation struct {
	To          string
	InvitedID   string
	AddedBy     primitive.ObjectID
	URL         string
	DeclineURL  string
	ProjectName string
	Role        string
	Message     string
	CompanyName string
}

// ConsultantInvited mails a project invitation to the recipient. The inviter's
// display name is looked up in the user cache; a miss sends the mail with an
// empty name rather than dropping it.
func (e *Emitter) ConsultantInvited(ctx context.Context, inv Invitation) {
	e.invitationMail(ctx, inv, TemplateConsultantInvitation, "KT-Guru Consultant Invitation")
}

// CompanyAdminInvited mails a company-manager invitation.
func (e *Emitter) CompanyAdminInvited(ctx context.Context, inv Invitation) {
	inv.ProjectName = ""
	e.invitationMail(ctx, inv, TemplateCompanyInvitation, "KT-Guru Invitation for company manager")
}

func (e *Emitter) invitationMail(ctx context.Context, inv Invitation, template, subject string) {
	e.publish(ctx, broker.TopicMail, inv.InvitedID, envelope{
		EventType: EventSendMail,
		Data: mailPayload{
			To:      inv.To,
			Subject: subject,
			Context: invitationContext{
				Name:        e.displayName(ctx, inv.AddedBy),
				URL:         inv.URL,
				DeclineURL:  inv.DeclineURL,
				ProjectName: inv.ProjectName,
				Role:        inv.Role,
				Message:     inv.Message,
				CompanyName: inv.CompanyName,
			},
			Template: template,
		},
	})
}

// InvitationDeclined notifies the inviter that their invite was turned down.
// Both addresses come from the user cache; without the inviter's address
// there is nowhere to send, so the event is skipped with a warning.
func (e *Emitter) InvitationDeclined(ctx context.Context, addedBy, invitedID primitive.ObjectID, entityName string) {
	inviter, err := e.users.GetByUserID(ctx, addedBy)
	if err != nil || inviter == nil || inviter.Email == "" {
		e.log.Warn("decline mail skipped, inviter not in user cache",
			zap.String("added_by", addedBy.Hex()), zap.Error(err))
		return
	}

	var invitedEmail string
	if invited, err := e.users.GetByUserID(ctx, invitedID); err == nil && invited != nil {
		invitedEmail = invited.Email
	}

	e.publish(ctx, broker.TopicMail, addedBy.Hex(), envelope{
		EventType: EventSendMail,
		Data: mailPayload{
			To:      inviter.Email,
			Subject: "Invitation Declined",
			Context: declineContext{
				Name:        inviter.FullName(),
				InvitedUser: invitedEmail,
				EntityName:  entityName,
			},
			Template: TemplateDeclineInvitation,
		},
	})
}

func (e *Emitter) publish(ctx context.Context, topic, key string, env envelope) {
	if err := e.pub.Publish(ctx, topic, key, env); err != nil {
		e.log.Error("event publish failed",
			zap.String("topic", topic),
			zap.String("event", env.EventType),
			zap.Error(err))
	}
}

func (e *Emitter) displayName(ctx context.Context, userID primitive.ObjectID) string {
	u, err := e.users.GetByUserID(ctx, userID)
	if err != nil || u == nil {
		e.log.Warn("user cache miss for mail context", zap.String("user_id", userID.Hex()), zap.Error(err))
		return ""
	}
	return u.FullName()
}
