package repository

import (
	"context"

	"github.com/mharfe/storyforge-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Token ledger operations. CreditTokens and DebitTokens apply the
	// balance change and insert the audit row as a single atomic unit;
	// DebitTokens returns ErrInsufficientBalance without mutating
	// anything when the balance cannot cover the debit.
	CreditTokens(ctx context.Context, txn *models.PaymentTransaction) error
	DebitTokens(ctx context.Context, usage *models.TokenUsageLog) error
	GetTokenBalance(ctx context.Context, userID string) (int, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]models.PaymentTransaction, error)
	ListUsageByUser(ctx context.Context, userID string) ([]models.TokenUsageLog, error)

	// Book operations
	CreateBook(ctx context.Context, book *models.Book) error
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ListBooksByUser(ctx context.Context, userID string) ([]models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id string) error
	SearchBooksByTitle(ctx context.Context, userID, title string) ([]models.Book, error)

	// Chapter operations
	CreateChapter(ctx context.Context, chapter *models.Chapter) error
	GetChapter(ctx context.Context, id string) (*models.Chapter, error)
	ListChaptersByBook(ctx context.Context, bookID string) ([]models.Chapter, error)
	UpdateChapter(ctx context.Context, chapter *models.Chapter) error
	DeleteChapter(ctx context.Context, id string) error

	// Page operations
	CreatePage(ctx context.Context, page *models.Page) error
	GetPage(ctx context.Context, id string) (*models.Page, error)
	ListPagesByChapter(ctx context.Context, chapterID string) ([]models.Page, error)
	UpdatePage(ctx context.Context, page *models.Page) error
	DeletePage(ctx context.Context, id string) error

	// Generated content operations
	CreateImagePrompt(ctx context.Context, prompt *models.ImagePrompt) error
	ListImagePromptsByChapter(ctx context.Context, chapterID string) ([]models.ImagePrompt, error)
	SaveBookSummary(ctx context.Context, summary *models.BookSummary) error
	GetBookSummaryByBook(ctx context.Context, bookID string) (*models.BookSummary, error)
	SaveChapterSummary(ctx context.Context, summary *models.ChapterSummary) error
	GetChapterSummaryByChapter(ctx context.Context, chapterID string) (*models.ChapterSummary, error)
	CreateChapterAudio(ctx context.Context, audio *models.ChapterAudio) error
	ListChapterAudioByChapter(ctx context.Context, chapterID string) ([]models.ChapterAudio, error)

	// Favorite voice operations
	CreateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error
	GetFavoriteVoice(ctx context.Context, id string) (*models.FavoriteVoice, error)
	ListFavoriteVoicesByUser(ctx context.Context, userID string) ([]models.FavoriteVoice, error)
	UpdateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error
	DeleteFavoriteVoice(ctx context.Context, id string) error
}
