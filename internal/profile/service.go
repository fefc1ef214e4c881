package profile

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

const statusActive = "active"

// Service manages user profiles and lazy provisioning of their wallets.
type Service struct {
	repo    Repository
	wallets wallet.Store
}

// NewService creates a new profile service.
func NewService(repo Repository, wallets wallet.Store) *Service {
	return &Service{repo: repo, wallets: wallets}
}

// Info returns the user for chatID, registering them on first contact and
// refreshing display fields on subsequent calls.
func (s *Service) Info(ctx context.Context, chatID, username, avatar string) (User, error) {
	user, err := s.repo.FindByChatID(ctx, chatID)
	if err == nil {
		if username != "" || avatar != "" {
			if err := s.repo.UpdateProfile(ctx, chatID, username, avatar); err != nil {
				return User{}, err
			}
			return s.repo.FindByChatID(ctx, chatID)
		}
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return s.Register(ctx, chatID, username, avatar, "")
}

// Register creates a user with a fresh referral code and provisions their
// wallet. A concurrent registration for the same chat id wins gracefully:
// the loser re-reads the stored user.
func (s *Service) Register(ctx context.Context, chatID, username, avatar, referredBy string) (User, error) {
	user := User{
		ChatID:       chatID,
		Username:     username,
		Avatar:       avatar,
		Status:       statusActive,
		ReferralCode: newReferralCode(),
		ReferredBy:   referredBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrExists) {
			return s.repo.FindByChatID(ctx, chatID)
		}
		return User{}, err
	}

	if _, err := s.wallets.Ensure(ctx, chatID); err != nil {
		return User{}, err
	}

	return user, nil
}

// FindByReferralCode resolves a referral code to its owner.
func (s *Service) FindByReferralCode(ctx context.Context, code string) (User, error) {
	return s.repo.FindByReferralCode(ctx, code)
}

// FindByChatID resolves a chat id to its user.
func (s *Service) FindByChatID(ctx context.Context, chatID string) (User, error) {
	return s.repo.FindByChatID(ctx, chatID)
}

// newReferralCode returns a 6-digit numeric invite code.
func newReferralCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}
