package service

import (
	"context"
	"errors"

	"github.com/mharfe/storyforge-server/internal/config"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/queue"
	"github.com/mharfe/storyforge-server/internal/repository"
	"github.com/mharfe/storyforge-server/internal/utils"
	"github.com/sirupsen/logrus"
)

// ErrInvalidArgument is returned for requests that fail domain
// validation, such as a non-positive purchase amount.
var ErrInvalidArgument = errors.New("invalid argument")

// ResourceKind names a resource type for ownership authorization
type ResourceKind string

const (
	KindBook    ResourceKind = "book"
	KindChapter ResourceKind = "chapter"
	KindPage    ResourceKind = "page"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	// Token ledger
	GetBalance(ctx context.Context, userID string) (*models.BalanceResponse, error)
	PurchaseTokens(ctx context.Context, userID string, req models.PurchaseRequest) (*models.PurchaseResponse, error)
	ListTransactions(ctx context.Context, userID string) ([]models.PaymentTransaction, error)
	ListUsage(ctx context.Context, userID string) ([]models.TokenUsageLog, error)

	// Ownership guard: resolves the resource's owning user through the
	// parent chain and compares it to the caller.
	Authorize(ctx context.Context, kind ResourceKind, resourceID, callerID string) error

	// Books
	CreateBook(ctx context.Context, userID string, req models.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, userID, id string) (*models.Book, error)
	ListBooks(ctx context.Context, userID string) ([]models.Book, error)
	UpdateBook(ctx context.Context, userID, id string, req models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, userID, id string) error
	SearchBooks(ctx context.Context, userID, title string) ([]models.Book, error)
	GetBookSummary(ctx context.Context, userID, bookID string) (*models.BookSummary, error)

	// Chapters
	CreateChapter(ctx context.Context, userID string, req models.CreateChapterRequest) (*models.Chapter, error)
	GetChapter(ctx context.Context, userID, id string) (*models.Chapter, error)
	ListChapters(ctx context.Context, userID, bookID string) ([]models.Chapter, error)
	UpdateChapter(ctx context.Context, userID, id string, req models.UpdateChapterRequest) (*models.Chapter, error)
	DeleteChapter(ctx context.Context, userID, id string) error
	GetChapterSummary(ctx context.Context, userID, chapterID string) (*models.ChapterSummary, error)
	ListImagePrompts(ctx context.Context, userID, chapterID string) ([]models.ImagePrompt, error)
	ListChapterAudio(ctx context.Context, userID, chapterID string) ([]models.ChapterAudio, error)

	// Pages
	CreatePage(ctx context.Context, userID string, req models.CreatePageRequest) (*models.Page, error)
	GetPage(ctx context.Context, userID, id string) (*models.Page, error)
	ListPages(ctx context.Context, userID, chapterID string) ([]models.Page, error)
	UpdatePage(ctx context.Context, userID, id string, req models.UpdatePageRequest) (*models.Page, error)
	DeletePage(ctx context.Context, userID, id string) error

	// Metered AI features
	GenerateImage(ctx context.Context, userID, chapterID string, req models.GenerateImageRequest) (*models.GenerateImageResponse, error)
	GenerateChapterAudio(ctx context.Context, userID, chapterID string, req models.GenerateAudioRequest) (*models.GenerateAudioResponse, error)
	GenerateChapterSummary(ctx context.Context, userID, chapterID string) (*models.GenerateSummaryResponse, error)
	GenerateBookSummary(ctx context.Context, userID, bookID string) (*models.GenerateSummaryResponse, error)

	// Favorite voices
	CreateFavoriteVoice(ctx context.Context, userID string, req models.FavoriteVoiceRequest) (*models.FavoriteVoice, error)
	GetFavoriteVoice(ctx context.Context, userID, id string) (*models.FavoriteVoice, error)
	ListFavoriteVoices(ctx context.Context, userID string) ([]models.FavoriteVoice, error)
	UpdateFavoriteVoice(ctx context.Context, userID, id string, req models.FavoriteVoiceRequest) (*models.FavoriteVoice, error)
	DeleteFavoriteVoice(ctx context.Context, userID, id string) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo      repository.Repository
	tokens    *utils.JWTManager
	publisher queue.Publisher
	costs     config.TokenConfig
	logger    *logrus.Logger
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(
	repo repository.Repository,
	tokens *utils.JWTManager,
	publisher queue.Publisher,
	costs config.TokenConfig,
	logger *logrus.Logger,
) Service {
	return &DefaultService{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		costs:     costs,
		logger:    logger,
	}
}
