package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateToken surfaces a token unique-index violation. Retryable:
	// the caller regenerates the token and inserts again.
	ErrDuplicateToken = errors.New("invitation token already exists")
	// ErrPendingExists surfaces the partial unique index on
	// (email WHERE status = 'PENDING').
	ErrPendingExists = errors.New("pending invitation already exists for email")
)

type InvitationStore struct {
	db *gorm.DB
}

func NewInvitationStore(db *gorm.DB) *InvitationStore {
	return &InvitationStore{db: db}
}

// WithTx rebinds the store to a transaction handle.
func (s *InvitationStore) WithTx(tx *gorm.DB) *InvitationStore {
	return &InvitationStore{db: tx}
}

func (s *InvitationStore) FindByToken(token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.Where("token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation by token: %w", err)
	}
	return &inv, nil
}

func (s *InvitationStore) FindByID(id uuid.UUID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation by id: %w", err)
	}
	return &inv, nil
}

// FindPendingActiveByEmail is the duplicate-invite guard: one read matching
// status = PENDING and expires_at beyond the given instant.
func (s *InvitationStore) FindPendingActiveByEmail(email string, now time.Time) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.
		Where("email = ? AND status = ? AND expires_at > ?",
			strings.ToLower(email), models.InvitationPending, now).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pending invitation: %w", err)
	}
	return &inv, nil
}

func (s *InvitationStore) Create(inv *models.Invitation) error {
	inv.Email = strings.ToLower(inv.Email)
	if err := s.db.Create(inv).Error; err != nil {
		return classifyDuplicate(err)
	}
	return nil
}

// ExpireStale reclassifies PENDING rows for the email whose deadline has
// passed. Run before inserting so the partial unique index only ever blocks
// a genuinely active duplicate.
func (s *InvitationStore) ExpireStale(email string, now time.Time) error {
	err := s.db.Model(&models.Invitation{}).
		Where("email = ? AND status = ? AND expires_at <= ?",
			strings.ToLower(email), models.InvitationPending, now).
		Update("status", models.InvitationExpired).Error
	if err != nil {
		return fmt.Errorf("expire stale invitations: %w", err)
	}
	return nil
}

// UpdateStatus moves the invitation identified by token out of PENDING.
// COMPLETED and EXPIRED are terminal, so the write only matches a PENDING
// row; a settled or unknown token is a no-op, not an error.
func (s *InvitationStore) UpdateStatus(token string, status models.InvitationStatus, completedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	result := s.db.Model(&models.Invitation{}).
		Where("token = ? AND status = ?", token, models.InvitationPending).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("update invitation status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateEmailStatus records the delivery outcome of the invitation email.
func (s *InvitationStore) UpdateEmailStatus(id uuid.UUID, sent bool, emailError string) error {
	err := s.db.Model(&models.Invitation{}).Where("id = ?", id).
		Updates(map[string]interface{}{"email_sent": sent, "email_error": emailError}).Error
	if err != nil {
		return fmt.Errorf("update invitation email status: %w", err)
	}
	return nil
}

// ListByStatus pages invitations newest-first. An empty status means all.
func (s *InvitationStore) ListByStatus(status models.InvitationStatus, page, limit int) ([]models.Invitation, int64, error) {
	query := s.db.Model(&models.Invitation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count invitations: %w", err)
	}

	invitations := []models.Invitation{}
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&invitations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, total, nil
}

// classifyDuplicate maps unique-index violations onto store sentinels. The
// index name appears in postgres errors, the column path in sqlite ones.
func classifyDuplicate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "idx_invitations_pending_email"),
		strings.Contains(msg, "invitations.email"):
		return ErrPendingExists
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "UNIQUE constraint"):
		return ErrDuplicateToken
	default:
		return fmt.Errorf("create invitation: %w", err)
	}
}
