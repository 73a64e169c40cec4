package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationCompleted InvitationStatus = "COMPLETED"
	InvitationExpired   InvitationStatus = "EXPIRED"
)

// Invitation rows are never deleted by the application; history is kept and
// only the status moves (PENDING → COMPLETED or PENDING → EXPIRED).
// The partial unique index keeps at most one PENDING row per email.
type Invitation struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string           `gorm:"not null;size:255;index:idx_invitations_pending_email,unique,where:status = 'PENDING'" json:"email"`
	Role        UserRole         `gorm:"not null;size:20" json:"role"`
	Token       string           `gorm:"uniqueIndex;not null;size:64" json:"token"`
	Status      InvitationStatus `gorm:"not null;default:PENDING;size:20" json:"status"`
	ExpiresAt   time.Time        `gorm:"not null" json:"expires_at"`
	InvitedBy   uuid.UUID        `gorm:"type:uuid" json:"invited_by"`
	EmailSent   bool             `json:"email_sent"`
	EmailError  string           `gorm:"size:512" json:"email_error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the invitation can still be redeemed at the
// given instant.
func (i *Invitation) IsActive(now time.Time) bool {
	return i.Status == InvitationPending && i.ExpiresAt.After(now)
}

// EvaluateStatus computes the status the invitation should hold at the given
// instant. It returns the (possibly reclassified) status and whether a
// PENDING → EXPIRED transition is due. Pure: the caller owns the write.
func EvaluateStatus(i *Invitation, now time.Time) (InvitationStatus, bool) {
	if i.Status == InvitationPending && !i.ExpiresAt.After(now) {
		return InvitationExpired, true
	}
	return i.Status, false
}
