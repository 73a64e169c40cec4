package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"recipebook-backend/models"
	"recipebook-backend/store"
	"recipebook-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordHashCost is the bcrypt cost for every stored password.
const PasswordHashCost = 12

const (
	invitationTTL       = 7 * 24 * time.Hour
	tokenCreateAttempts = 3
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Business errors; messages are returned to clients verbatim.
var (
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrInvalidRole      = errors.New("Invalid role")
	ErrAlreadyInvited   = errors.New("An active invitation already exists for this email")
	ErrInvalidToken     = errors.New("Invalid invitation token")
	ErrNotFound         = errors.New("Invitation not found")
	ErrExpired          = errors.New("Invitation has expired")
	ErrAlreadyCompleted = errors.New("Invitation has already been used")
	ErrEmailInUse       = errors.New("Email is already registered")
)

var invitationErrors = []error{
	ErrInvalidEmail, ErrInvalidRole, ErrAlreadyInvited, ErrInvalidToken,
	ErrNotFound, ErrExpired, ErrAlreadyCompleted, ErrEmailInUse,
}

// IsInvitationError reports whether err belongs to the business taxonomy
// (mapped to 400) as opposed to an infrastructure failure (500).
func IsInvitationError(err error) bool {
	for _, e := range invitationErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

type CreateInvitationDTO struct {
	Email     string
	Role      models.UserRole
	InvitedBy uuid.UUID
}

type CompleteInvitationDTO struct {
	Token     string
	FirstName string
	LastName  string
	Password  string
}

// InvitationService owns the invitation state machine: PENDING on creation,
// PENDING → COMPLETED on registration, PENDING → EXPIRED lazily on read.
type InvitationService struct {
	db          *gorm.DB
	invitations *store.InvitationStore
	users       *store.UserStore
	dispatcher  EmailDispatcher
	baseURL     string
	siteName    string
}

func NewInvitationService(db *gorm.DB, invitations *store.InvitationStore, users *store.UserStore, dispatcher EmailDispatcher, baseURL, siteName string) *InvitationService {
	return &InvitationService{
		db:          db,
		invitations: invitations,
		users:       users,
		dispatcher:  dispatcher,
		baseURL:     baseURL,
		siteName:    siteName,
	}
}

// Create issues a new PENDING invitation and best-effort dispatches the
// invitation email. Email delivery failure never fails the create; the
// outcome is recorded on the row. Returns the invitation and its magic link.
func (s *InvitationService) Create(dto CreateInvitationDTO) (*models.Invitation, string, error) {
	if !emailRe.MatchString(dto.Email) {
		return nil, "", ErrInvalidEmail
	}
	if !models.ValidRole(dto.Role) {
		return nil, "", ErrInvalidRole
	}

	var created *models.Invitation
	for attempt := 0; attempt < tokenCreateAttempts; attempt++ {
		candidate := &models.Invitation{
			Email:     dto.Email,
			Role:      dto.Role,
			Token:     utils.GenerateInviteToken(),
			Status:    models.InvitationPending,
			ExpiresAt: time.Now().Add(invitationTTL),
			InvitedBy: dto.InvitedBy,
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			invStore := s.invitations.WithTx(tx)
			now := time.Now()

			// Reclassify any stale PENDING row first so the partial unique
			// index only blocks genuinely active duplicates.
			if err := invStore.ExpireStale(dto.Email, now); err != nil {
				return err
			}
			existing, err := invStore.FindPendingActiveByEmail(dto.Email, now)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrAlreadyInvited
			}
			return invStore.Create(candidate)
		})

		switch {
		case err == nil:
			created = candidate
		case errors.Is(err, store.ErrDuplicateToken):
			// Token collision: retry with a fresh token.
			continue
		case errors.Is(err, store.ErrPendingExists):
			return nil, "", ErrAlreadyInvited
		default:
			return nil, "", err
		}
		break
	}
	if created == nil {
		return nil, "", fmt.Errorf("allocate invitation token: %w", store.ErrDuplicateToken)
	}

	link := utils.MagicLink(s.baseURL, created.Token)
	s.sendInvitationEmail(created, link)
	return created, link, nil
}

func (s *InvitationService) sendInvitationEmail(inv *models.Invitation, link string) bool {
	subject, html := BuildInvitationEmail(inv.Role, link, inv.ExpiresAt, s.siteName)
	result := s.dispatcher.SendEmail(EmailOptions{
		To:      inv.Email,
		Subject: subject,
		HTML:    html,
	})

	emailError := ""
	if !result.Success && result.Err != nil {
		emailError = result.Err.Error()
		log.Printf("⚠️  Invitation email to %s failed: %v", inv.Email, result.Err)
	}
	if err := s.invitations.UpdateEmailStatus(inv.ID, result.Success, emailError); err != nil {
		log.Printf("⚠️  Failed to record email status for %s: %v", inv.ID, err)
	}
	inv.EmailSent = result.Success
	inv.EmailError = emailError
	return result.Success
}

// Verify checks a token. Read path with one side effect: a PENDING row past
// its deadline is transitioned to EXPIRED before the error is returned. The
// write is idempotent; verifying an already-EXPIRED row reads only.
func (s *InvitationService) Verify(token string) (*models.Invitation, error) {
	return s.verifyWith(s.invitations, token, time.Now())
}

func (s *InvitationService) verifyWith(invStore *store.InvitationStore, token string, now time.Time) (*models.Invitation, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	inv, err := invStore.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	if inv.Status == models.InvitationCompleted {
		return nil, ErrAlreadyCompleted
	}

	if status, transition := models.EvaluateStatus(inv, now); status != models.InvitationPending {
		if transition {
			// Safe to lose: the next read re-detects expiry.
			if _, err := invStore.UpdateStatus(token, models.InvitationExpired, nil); err != nil {
				log.Printf("⚠️  Failed to mark invitation expired: %v", err)
			} else {
				inv.Status = models.InvitationExpired
			}
		}
		return nil, ErrExpired
	}
	return inv, nil
}

// Complete redeems a token and creates the account, atomically: token
// re-verification, email-uniqueness check, account insert and status
// transition either all persist or none do.
func (s *InvitationService) Complete(dto CompleteInvitationDTO) (*models.UserResponse, error) {
	var resp models.UserResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invStore := s.invitations.WithTx(tx)
		userStore := s.users.WithTx(tx)
		now := time.Now()

		inv, err := s.verifyWith(invStore, dto.Token, now)
		if err != nil {
			return err
		}

		existing, err := userStore.FindByEmail(inv.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailInUse
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), PasswordHashCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := models.User{
			FirstName: dto.FirstName,
			LastName:  dto.LastName,
			Email:     inv.Email,
			Password:  string(hashed),
			Role:      inv.Role,
		}
		if err := userStore.Create(&user); err != nil {
			return err
		}

		completedAt := now
		matched, err := invStore.UpdateStatus(dto.Token, models.InvitationCompleted, &completedAt)
		if err != nil {
			return err
		}
		if !matched {
			return ErrNotFound
		}

		resp = user.ToResponse()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resend re-dispatches the invitation email for a still-pending invitation.
func (s *InvitationService) Resend(id uuid.UUID) (bool, error) {
	inv, err := s.invitations.FindByID(id)
	if err != nil {
		return false, err
	}
	if inv == nil {
		return false, ErrNotFound
	}
	if inv.Status != models.InvitationPending {
		return false, ErrAlreadyCompleted
	}

	link := utils.MagicLink(s.baseURL, inv.Token)
	return s.sendInvitationEmail(inv, link), nil
}

// List pages invitations newest-first; empty status means all statuses.
func (s *InvitationService) List(status models.InvitationStatus, page, limit int) ([]models.Invitation, int64, error) {
	return s.invitations.ListByStatus(status, page, limit)
}

// MagicLink exposes link construction for callers that only hold a token.
func (s *InvitationService) MagicLink(token string) string {
	return utils.MagicLink(s.baseURL, token)
}
