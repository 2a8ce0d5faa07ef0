package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/config"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/queue"
	"github.com/mharfe/storyforge-server/internal/repository"
	"github.com/mharfe/storyforge-server/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) (*DefaultService, *repository.MemoryRepository, string) {
	repo := repository.NewMemoryRepository()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := NewDefaultService(
		repo,
		utils.NewJWTManager("test-secret", time.Hour),
		queue.NoopPublisher{},
		config.TokenConfig{StartingBalance: 20, PricePerToken: 0.01, ImageCost: 30, AudioCost: 20, SummaryCost: 10},
		logger,
	).(*DefaultService)

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "owner",
		Email:        "owner@example.com",
		Password:     "irrelevant",
		TokenBalance: 20,
	}
	err := repo.CreateUser(context.Background(), user)
	assert.NoError(t, err)

	return svc, repo, user.ID
}

func TestAuthorizeOwnershipChain(t *testing.T) {
	svc, _, ownerID := newTestService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, ownerID, models.CreateBookRequest{Title: "Chain Test"})
	assert.NoError(t, err)

	chapter, err := svc.CreateChapter(ctx, ownerID, models.CreateChapterRequest{
		BookID: book.ID, Title: "One", Order: 1,
	})
	assert.NoError(t, err)

	page, err := svc.CreatePage(ctx, ownerID, models.CreatePageRequest{
		ChapterID: chapter.ID, PageNumber: 1, TextContent: "text",
	})
	assert.NoError(t, err)

	// The owner passes at every level
	assert.NoError(t, svc.Authorize(ctx, KindBook, book.ID, ownerID))
	assert.NoError(t, svc.Authorize(ctx, KindChapter, chapter.ID, ownerID))
	assert.NoError(t, svc.Authorize(ctx, KindPage, page.ID, ownerID))

	// Anyone else is rejected at every level
	stranger := uuid.New().String()
	assert.ErrorIs(t, svc.Authorize(ctx, KindBook, book.ID, stranger), repository.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, KindChapter, chapter.ID, stranger), repository.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, KindPage, page.ID, stranger), repository.ErrForbidden)

	// A missing resource is NotFound, not Forbidden
	assert.ErrorIs(t, svc.Authorize(ctx, KindBook, uuid.New().String(), ownerID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Authorize(ctx, KindChapter, uuid.New().String(), ownerID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Authorize(ctx, KindPage, uuid.New().String(), ownerID), repository.ErrNotFound)
}

func TestAuthorizeBrokenChain(t *testing.T) {
	svc, repo, ownerID := newTestService(t)
	ctx := context.Background()

	// A chapter pointing at a book that does not exist has no
	// resolvable owner, so access is denied even for its creator
	orphan := &models.Chapter{
		ID:     uuid.New().String(),
		BookID: uuid.New().String(),
		Title:  "Orphan",
	}
	err := repo.CreateChapter(ctx, orphan)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Authorize(ctx, KindChapter, orphan.ID, ownerID), repository.ErrForbidden)

	// Same through a page hanging off the orphaned chapter
	page := &models.Page{
		ID:         uuid.New().String(),
		ChapterID:  orphan.ID,
		PageNumber: 1,
	}
	err = repo.CreatePage(ctx, page)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Authorize(ctx, KindPage, page.ID, ownerID), repository.ErrForbidden)
}

func TestAuthorizeUnknownKind(t *testing.T) {
	svc, _, ownerID := newTestService(t)

	err := svc.Authorize(context.Background(), ResourceKind("ledger"), uuid.New().String(), ownerID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
