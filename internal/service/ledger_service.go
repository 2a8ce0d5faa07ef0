package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
)

func (s *DefaultService) GetBalance(ctx context.Context, userID string) (*models.BalanceResponse, error) {
	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.BalanceResponse{Balance: balance}, nil
}

func (s *DefaultService) PurchaseTokens(
	ctx context.Context,
	userID string,
	req models.PurchaseRequest,
) (*models.PurchaseResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("purchase amount must be positive: %w", ErrInvalidArgument)
	}

	txn := &models.PaymentTransaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Amount:        float64(req.Amount) * s.costs.PricePerToken,
		TokenAmount:   req.Amount,
		PaymentStatus: models.PaymentStatusCompleted,
	}

	if err := s.repo.CreditTokens(ctx, txn); err != nil {
		return nil, fmt.Errorf("error crediting tokens: %w", err)
	}

	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading balance: %w", err)
	}

	return &models.PurchaseResponse{
		Balance:       balance,
		TransactionID: txn.ID,
	}, nil
}

func (s *DefaultService) ListTransactions(ctx context.Context, userID string) ([]models.PaymentTransaction, error) {
	return s.repo.ListTransactionsByUser(ctx, userID)
}

func (s *DefaultService) ListUsage(ctx context.Context, userID string) ([]models.TokenUsageLog, error) {
	return s.repo.ListUsageByUser(ctx, userID)
}

// debitFeature charges a metered feature against the user's balance.
// The repository applies the balance check, the decrement and the usage
// log insert as one atomic unit.
func (s *DefaultService) debitFeature(
	ctx context.Context,
	userID, operationType string,
	tokensUsed int,
	chapterID *string,
) (*models.TokenUsageLog, error) {
	usage := &models.TokenUsageLog{
		ID:            uuid.New().String(),
		UserID:        userID,
		ChapterID:     chapterID,
		TokensUsed:    tokensUsed,
		OperationType: operationType,
	}

	if err := s.repo.DebitTokens(ctx, usage); err != nil {
		return nil, err
	}

	return usage, nil
}
