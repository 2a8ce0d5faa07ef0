package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mharfe/storyforge-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password, token_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password, user.TokenBalance,
		user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}

	return err
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Token ledger repository methods

// CreditTokens increments the user's balance and inserts the payment
// transaction row in one database transaction.
func (r *PostgresRepository) CreditTokens(ctx context.Context, txn *models.PaymentTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET token_balance = token_balance + $1, updated_at = $2 WHERE id = $3`,
		txn.TokenAmount, now, txn.UserID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		err = ErrNotFound
		return err
	}

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payment_transactions (id, user_id, amount, token_amount, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		txn.ID, txn.UserID, txn.Amount, txn.TokenAmount, txn.PaymentStatus, txn.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DebitTokens decrements the user's balance and inserts the usage log in
// one database transaction. The balance check and decrement are a single
// conditional UPDATE, so two concurrent debits against the same user are
// serialized by the row lock and can never both pass the check.
func (r *PostgresRepository) DebitTokens(ctx context.Context, usage *models.TokenUsageLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET token_balance = token_balance - $1, updated_at = $2
		WHERE id = $3 AND token_balance >= $1`,
		usage.TokensUsed, now, usage.UserID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing user from an uncovered debit
		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, usage.UserID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			err = ErrNotFound
		} else {
			err = ErrInsufficientBalance
		}
		return err
	}

	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	usage.CreatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO token_usage_logs (id, user_id, chapter_id, tokens_used, operation_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		usage.ID, usage.UserID, usage.ChapterID, usage.TokensUsed, usage.OperationType, usage.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetTokenBalance(ctx context.Context, userID string) (int, error) {
	query := `SELECT token_balance FROM users WHERE id = $1`

	var balance int
	err := r.db.GetContext(ctx, &balance, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return balance, nil
}

func (r *PostgresRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]models.PaymentTransaction, error) {
	query := `SELECT * FROM payment_transactions WHERE user_id = $1 ORDER BY created_at DESC`

	var txns []models.PaymentTransaction
	err := r.db.SelectContext(ctx, &txns, query, userID)
	if err != nil {
		return nil, err
	}

	return txns, nil
}

func (r *PostgresRepository) ListUsageByUser(ctx context.Context, userID string) ([]models.TokenUsageLog, error) {
	query := `SELECT * FROM token_usage_logs WHERE user_id = $1 ORDER BY created_at DESC`

	var logs []models.TokenUsageLog
	err := r.db.SelectContext(ctx, &logs, query, userID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
