package service

import (
	"context"
	"fmt"
	"log"

	"stockfolio/internal/domain"
)

// AuditService recomputes every user's cash balance from their ledger
// and compares it with the stored balance. The invariant:
//
//	cash = initial_cash − Σ(shares × price)
//
// holds for any sequence of committed trades; drift means the atomic
// apply boundary was violated somewhere and is worth an alarm.
type AuditService struct {
	userRepo   domain.UserRepository
	ledgerRepo domain.LedgerRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository) *AuditService {
	return &AuditService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

// AuditUser recomputes one user's balance. Returns an error describing
// the drift if the stored balance does not match the ledger.
func (s *AuditService) AuditUser(ctx context.Context, user *domain.User) error {
	txns, err := s.ledgerRepo.GetTransactions(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load ledger for %s: %w", user.Username, err)
	}

	expected := user.InitialCash
	for _, txn := range txns {
		expected = expected.Add(txn.CashDelta())
	}

	if !expected.Equal(user.Cash) {
		return fmt.Errorf("balance drift for %s: stored=%s recomputed=%s",
			user.Username, user.Cash.StringFixed(2), expected.StringFixed(2))
	}
	return nil
}

// AuditAll audits every user and logs any drift. Returns the number
// of users whose balances failed the audit.
func (s *AuditService) AuditAll(ctx context.Context) (int, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	failed := 0
	for _, user := range users {
		if err := s.AuditUser(ctx, user); err != nil {
			log.Printf("ERROR: Ledger audit failed: %v", err)
			failed++
		}
	}

	if failed == 0 {
		log.Printf("[OK] Ledger audit passed for %d user(s)", len(users))
	}
	return failed, nil
}
