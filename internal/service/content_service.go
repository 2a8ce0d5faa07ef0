package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/repository"
)

// Authorize resolves the resource's owning user through the parent
// chain and compares it to the caller. A missing resource is NotFound;
// a mismatch, or a chain whose parent link is broken, is Forbidden.
func (s *DefaultService) Authorize(ctx context.Context, kind ResourceKind, resourceID, callerID string) error {
	var err error
	switch kind {
	case KindBook:
		_, err = s.ownedBook(ctx, resourceID, callerID)
	case KindChapter:
		_, err = s.ownedChapter(ctx, resourceID, callerID)
	case KindPage:
		_, err = s.ownedPage(ctx, resourceID, callerID)
	default:
		err = fmt.Errorf("unknown resource kind %q: %w", kind, ErrInvalidArgument)
	}
	return err
}

func (s *DefaultService) ownedBook(ctx context.Context, bookID, callerID string) (*models.Book, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.UserID != callerID {
		return nil, repository.ErrForbidden
	}
	return book, nil
}

func (s *DefaultService) ownedChapter(ctx context.Context, chapterID, callerID string) (*models.Chapter, error) {
	chapter, err := s.repo.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	book, err := s.repo.GetBook(ctx, chapter.BookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Broken parent chain resolves to no owner, so nobody is allowed
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	if book.UserID != callerID {
		return nil, repository.ErrForbidden
	}
	return chapter, nil
}

func (s *DefaultService) ownedPage(ctx context.Context, pageID, callerID string) (*models.Page, error) {
	page, err := s.repo.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedChapter(ctx, page.ChapterID, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	return page, nil
}

// Book operations
func (s *DefaultService) CreateBook(ctx context.Context, userID string, req models.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return book, nil
}

func (s *DefaultService) GetBook(ctx context.Context, userID, id string) (*models.Book, error) {
	return s.ownedBook(ctx, id, userID)
}

func (s *DefaultService) ListBooks(ctx context.Context, userID string) ([]models.Book, error) {
	return s.repo.ListBooksByUser(ctx, userID)
}

func (s *DefaultService) UpdateBook(ctx context.Context, userID, id string, req models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.ownedBook(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Description = req.Description

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return book, nil
}

func (s *DefaultService) DeleteBook(ctx context.Context, userID, id string) error {
	if _, err := s.ownedBook(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.DeleteBook(ctx, id)
}

func (s *DefaultService) SearchBooks(ctx context.Context, userID, title string) ([]models.Book, error) {
	return s.repo.SearchBooksByTitle(ctx, userID, title)
}

func (s *DefaultService) GetBookSummary(ctx context.Context, userID, bookID string) (*models.BookSummary, error) {
	if _, err := s.ownedBook(ctx, bookID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetBookSummaryByBook(ctx, bookID)
}

// Chapter operations
func (s *DefaultService) CreateChapter(ctx context.Context, userID string, req models.CreateChapterRequest) (*models.Chapter, error) {
	if _, err := s.ownedBook(ctx, req.BookID, userID); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		ID:           uuid.New().String(),
		BookID:       req.BookID,
		Title:        req.Title,
		ChapterOrder: req.Order,
	}

	if err := s.repo.CreateChapter(ctx, chapter); err != nil {
		return nil, fmt.Errorf("error creating chapter: %w", err)
	}

	return chapter, nil
}

func (s *DefaultService) GetChapter(ctx context.Context, userID, id string) (*models.Chapter, error) {
	return s.ownedChapter(ctx, id, userID)
}

func (s *DefaultService) ListChapters(ctx context.Context, userID, bookID string) ([]models.Chapter, error) {
	if _, err := s.ownedBook(ctx, bookID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListChaptersByBook(ctx, bookID)
}

func (s *DefaultService) UpdateChapter(ctx context.Context, userID, id string, req models.UpdateChapterRequest) (*models.Chapter, error) {
	chapter, err := s.ownedChapter(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	chapter.Title = req.Title
	chapter.ChapterOrder = req.Order

	if err := s.repo.UpdateChapter(ctx, chapter); err != nil {
		return nil, fmt.Errorf("error updating chapter: %w", err)
	}

	return chapter, nil
}

func (s *DefaultService) DeleteChapter(ctx context.Context, userID, id string) error {
	if _, err := s.ownedChapter(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.DeleteChapter(ctx, id)
}

func (s *DefaultService) GetChapterSummary(ctx context.Context, userID, chapterID string) (*models.ChapterSummary, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetChapterSummaryByChapter(ctx, chapterID)
}

func (s *DefaultService) ListImagePrompts(ctx context.Context, userID, chapterID string) ([]models.ImagePrompt, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListImagePromptsByChapter(ctx, chapterID)
}

func (s *DefaultService) ListChapterAudio(ctx context.Context, userID, chapterID string) ([]models.ChapterAudio, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListChapterAudioByChapter(ctx, chapterID)
}

// Page operations
func (s *DefaultService) CreatePage(ctx context.Context, userID string, req models.CreatePageRequest) (*models.Page, error) {
	if _, err := s.ownedChapter(ctx, req.ChapterID, userID); err != nil {
		return nil, err
	}

	page := &models.Page{
		ID:          uuid.New().String(),
		ChapterID:   req.ChapterID,
		PageNumber:  req.PageNumber,
		TextContent: req.TextContent,
	}

	if err := s.repo.CreatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("error creating page: %w", err)
	}

	return page, nil
}

func (s *DefaultService) GetPage(ctx context.Context, userID, id string) (*models.Page, error) {
	return s.ownedPage(ctx, id, userID)
}

func (s *DefaultService) ListPages(ctx context.Context, userID, chapterID string) ([]models.Page, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListPagesByChapter(ctx, chapterID)
}

func (s *DefaultService) UpdatePage(ctx context.Context, userID, id string, req models.UpdatePageRequest) (*models.Page, error) {
	page, err := s.ownedPage(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	page.PageNumber = req.PageNumber
	page.TextContent = req.TextContent

	if err := s.repo.UpdatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("error updating page: %w", err)
	}

	return page, nil
}

func (s *DefaultService) DeletePage(ctx context.Context, userID, id string) error {
	if _, err := s.ownedPage(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.DeletePage(ctx, id)
}
