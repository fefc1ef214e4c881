package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rupee-pay/rupee_pay/internal/money"
	"github.com/rupee-pay/rupee_pay/internal/notification"
	"github.com/rupee-pay/rupee_pay/internal/profile"
	"github.com/rupee-pay/rupee_pay/internal/txlog"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

const rewardDescription = "Referral Reward"

// Service links referred users to inviters and pays the invite reward.
type Service struct {
	profiles *profile.Service
	ledger   Ledger
	wallets  wallet.Store
	log      txlog.Log
	sink     notification.Sink
	reward   int64
	linkBase string
}

// NewService constructs a referral service. reward is the per-referral
// credit in paise; linkBase prefixes referral codes to build invite links.
func NewService(profiles *profile.Service, ledger Ledger, wallets wallet.Store, log txlog.Log, sink notification.Sink, reward int64, linkBase string) *Service {
	return &Service{
		profiles: profiles,
		ledger:   ledger,
		wallets:  wallets,
		log:      log,
		sink:     sink,
		reward:   reward,
		linkBase: linkBase,
	}
}

// JoinInput captures a join event, optionally carrying an inviter's code.
type JoinInput struct {
	ChatID   string
	Username string
	Avatar   string
	Code     string
}

// JoinResult reports the joining user's own referral state.
type JoinResult struct {
	ReferralCode string
	ReferredBy   string
}

// Join registers the user if needed and, when a valid code is supplied,
// idempotently credits the inviter. An unknown code and a self-referral both
// degrade to a plain registration; a repeated (inviter, referred user) pair
// never credits twice.
func (s *Service) Join(ctx context.Context, input JoinInput) (JoinResult, error) {
	if input.ChatID == "" {
		return JoinResult{}, fmt.Errorf("chat id is required")
	}

	user, err := s.profiles.FindByChatID(ctx, input.ChatID)
	if errors.Is(err, profile.ErrNotFound) {
		user, err = s.profiles.Register(ctx, input.ChatID, input.Username, input.Avatar, input.Code)
	}
	if err != nil {
		return JoinResult{}, err
	}

	if input.Code != "" {
		if err := s.rewardInviter(ctx, input); err != nil {
			return JoinResult{}, err
		}
	}

	return JoinResult{ReferralCode: user.ReferralCode, ReferredBy: user.ReferredBy}, nil
}

func (s *Service) rewardInviter(ctx context.Context, input JoinInput) error {
	inviter, err := s.profiles.FindByReferralCode(ctx, input.Code)
	if errors.Is(err, profile.ErrNotFound) {
		return nil // invalid code is silently ignored
	}
	if err != nil {
		return err
	}
	if inviter.ChatID == input.ChatID {
		return nil
	}

	if err := s.ledger.Ensure(ctx, inviter.ChatID, inviter.ReferralCode); err != nil {
		return err
	}

	inserted, err := s.ledger.AddReferred(ctx, inviter.ChatID, ReferredUser{
		UserID:       input.ChatID,
		Username:     input.Username,
		JoinedAt:     time.Now().UTC(),
		EarnedAmount: s.reward,
		IsActive:     true,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil // pair already credited
	}

	if err := s.wallets.Credit(ctx, inviter.ChatID, s.reward); err != nil {
		return err
	}

	if _, err := s.log.Append(ctx, txlog.Transaction{
		ChatID:      inviter.ChatID,
		Type:        txlog.TypeCredit,
		Amount:      s.reward,
		Description: rewardDescription,
		Status:      txlog.StatusSuccess,
		Metadata:    map[string]string{txlog.MetaReferredUser: input.ChatID},
	}); err != nil {
		return err
	}

	s.sink.Notify(inviter.ChatID, fmt.Sprintf(
		"🎉You earned %s as invite bonus! The user %s registered using your link.",
		money.Format(s.reward), input.ChatID))

	return nil
}

// SummaryView is the rendered referral summary for one inviter.
type SummaryView struct {
	Code                string
	Link                string
	TotalReferrals      int
	SuccessfulReferrals int
	TotalEarned         int64
	PendingEarned       int64
	CommissionPerUser   int64
}

// Summary builds the inviter's referral summary, registering the user first
// if they have never been seen.
func (s *Service) Summary(ctx context.Context, chatID string) (SummaryView, error) {
	user, err := s.profiles.Info(ctx, chatID, "", "")
	if err != nil {
		return SummaryView{}, err
	}

	stats, err := s.ledger.Summary(ctx, chatID)
	if err != nil {
		return SummaryView{}, err
	}

	return SummaryView{
		Code:                user.ReferralCode,
		Link:                s.linkBase + user.ReferralCode,
		TotalReferrals:      stats.TotalReferrals,
		SuccessfulReferrals: stats.SuccessfulReferrals,
		TotalEarned:         stats.TotalEarned,
		PendingEarned:       stats.PendingEarned,
		CommissionPerUser:   s.reward,
	}, nil
}

// List pages through the inviter's referred users.
func (s *Service) List(ctx context.Context, chatID string, limit, offset int) ([]ReferredUser, int, error) {
	return s.ledger.List(ctx, chatID, limit, offset)
}
