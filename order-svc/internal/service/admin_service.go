package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tableside/order-svc/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const MinPINLength = 4

type SettingsInput struct {
	Name     string          `json:"restaurant_name"`
	Currency domain.Currency `json:"currency"`
	EURToDJF float64         `json:"eur_to_djf"`
	EURToUSD float64         `json:"eur_to_usd"`
}

type PINChange struct {
	Kind    domain.PINKind `json:"kind"`
	Current string         `json:"current_pin"`
	New     string         `json:"new_pin"`
	Confirm string         `json:"confirm_pin"`
}

// AdminService checks PINs against bcrypt hashes and hands out expiring
// sessions. Failed attempts are counted per client.
type AdminService struct {
	repo        SettingsRepository
	sessions    *SessionManager
	limiter     AttemptLimiter
	invalidator Invalidator
	now         func() time.Time
}

func NewAdminService(repo SettingsRepository, sessions *SessionManager, limiter AttemptLimiter, invalidator Invalidator) *AdminService {
	return &AdminService{
		repo:        repo,
		sessions:    sessions,
		limiter:     limiter,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash PIN: %w", err)
	}
	return string(hashed), nil
}

// Seed writes the settings row with hashed default PINs if it does not
// exist yet.
func (s *AdminService) Seed(name, adminPIN, securityPIN string) error {
	adminHash, err := HashPIN(adminPIN)
	if err != nil {
		return err
	}
	securityHash, err := HashPIN(securityPIN)
	if err != nil {
		return err
	}
	return s.repo.SeedSettings(&domain.RestaurantSettings{
		Name:            name,
		Currency:        domain.CurrencyEUR,
		EURToDJF:        200,
		EURToUSD:        1.10,
		AdminPINHash:    adminHash,
		SecurityPINHash: securityHash,
	})
}

func (s *AdminService) Login(ctx context.Context, pin, clientKey string) (Session, error) {
	if err := s.checkPIN(ctx, "admin:"+clientKey, pin, func(rs *domain.RestaurantSettings) string {
		return rs.AdminPINHash
	}); err != nil {
		return Session{}, err
	}
	log.Printf("[order-svc] admin session opened for %s", clientKey)
	return s.sessions.Issue(ScopeAdmin)
}

// UnlockSecurity upgrades an admin session to the security scope needed to
// change PINs.
func (s *AdminService) UnlockSecurity(ctx context.Context, session Session, pin, clientKey string) (Session, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return Session{}, err
	}
	if err := s.checkPIN(ctx, "security:"+clientKey, pin, func(rs *domain.RestaurantSettings) string {
		return rs.SecurityPINHash
	}); err != nil {
		return Session{}, err
	}
	return s.sessions.Issue(ScopeSecurity)
}

func (s *AdminService) ParseSession(token string) (Session, error) {
	return s.sessions.Parse(token)
}

// checkPIN counts the attempt before comparing, so a client gets at most
// the limiter's maximum number of comparisons per window.
func (s *AdminService) checkPIN(ctx context.Context, key, pin string, hashOf func(*domain.RestaurantSettings) string) error {
	if s.limiter != nil {
		allowed, err := s.limiter.Attempt(ctx, key)
		if err != nil {
			log.Printf("[order-svc] attempt limiter unavailable: %v", err)
		} else if !allowed {
			return domain.ErrTooManyAttempts
		}
	}

	settings, err := s.repo.GetSettings()
	if err != nil {
		return storeError("load settings", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashOf(settings)), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrInvalidPIN
		}
		return fmt.Errorf("compare PIN: %w", err)
	}
	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			log.Printf("[order-svc] failed to reset PIN attempts for %s: %v", key, err)
		}
	}
	return nil
}

func (s *AdminService) Settings(ctx context.Context) (*domain.RestaurantSettings, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, storeError("load settings", err)
	}
	return settings, nil
}

func (s *AdminService) UpdateSettings(ctx context.Context, session Session, input SettingsInput) (*domain.RestaurantSettings, error) {
	if err := session.Require(ScopeAdmin, s.now()); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	switch {
	case input.Name == "":
		return nil, domain.NewValidationError("restaurant_name", "restaurant name is required")
	case !input.Currency.Valid():
		return nil, domain.NewValidationError("currency", "currency must be EUR, DJF or USD")
	case input.EURToDJF <= 0:
		return nil, domain.NewValidationError("eur_to_djf", "rate must be positive")
	case input.EURToUSD <= 0:
		return nil, domain.NewValidationError("eur_to_usd", "rate must be positive")
	}

	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, storeError("load settings", err)
	}
	settings.Name = input.Name
	settings.Currency = input.Currency
	settings.EURToDJF = input.EURToDJF
	settings.EURToUSD = input.EURToUSD
	if err := s.repo.UpdateSettings(settings); err != nil {
		return nil, storeError("update settings", err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, domain.ResyncEvent())
	}
	return settings, nil
}

// ChangePIN replaces one of the two PINs after checking the current one.
// Wrong current PINs count against the same per-client limit as logins.
func (s *AdminService) ChangePIN(ctx context.Context, session Session, input PINChange, clientKey string) error {
	if err := session.Require(ScopeSecurity, s.now()); err != nil {
		return err
	}
	if input.Kind != domain.PINAdmin && input.Kind != domain.PINSecurity {
		return domain.NewValidationError("kind", "kind must be admin or security")
	}
	if len(input.New) < MinPINLength {
		return domain.NewValidationError("new_pin", fmt.Sprintf("PIN must be at least %d characters", MinPINLength))
	}
	if input.New != input.Confirm {
		return domain.NewValidationError("confirm_pin", "PINs do not match")
	}

	key := fmt.Sprintf("pin-change:%s:%s", input.Kind, clientKey)
	if err := s.checkPIN(ctx, key, input.Current, func(rs *domain.RestaurantSettings) string {
		if input.Kind == domain.PINSecurity {
			return rs.SecurityPINHash
		}
		return rs.AdminPINHash
	}); err != nil {
		return err
	}

	hashed, err := HashPIN(input.New)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePINHash(input.Kind, hashed); err != nil {
		return storeError("update PIN", err)
	}
	log.Printf("[order-svc] %s PIN changed", input.Kind)
	return nil
}
