package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/queue"
)

const summaryMaxLen = 500

func (s *DefaultService) GenerateImage(
	ctx context.Context,
	userID, chapterID string,
	req models.GenerateImageRequest,
) (*models.GenerateImageResponse, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	if req.PageID != "" {
		if _, err := s.ownedPage(ctx, req.PageID, userID); err != nil {
			return nil, err
		}
	}

	usage, err := s.debitFeature(ctx, userID, models.OperationImageGeneration, s.costs.ImageCost, &chapterID)
	if err != nil {
		return nil, err
	}

	prompt := &models.ImagePrompt{
		ID:           uuid.New().String(),
		ChapterID:    chapterID,
		SelectedText: req.Prompt,
		ImagePath:    fmt.Sprintf("/generated/images/%s.png", uuid.New().String()),
	}
	if req.PageID != "" {
		prompt.PageID = &req.PageID
	}

	if err := s.repo.CreateImagePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("error saving image prompt: %w", err)
	}

	s.publishGeneration(ctx, usage.UserID, chapterID, usage.OperationType, usage.TokensUsed, prompt.ImagePath)

	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading balance: %w", err)
	}

	return &models.GenerateImageResponse{
		ImageURL: prompt.ImagePath,
		Balance:  balance,
	}, nil
}

func (s *DefaultService) GenerateChapterAudio(
	ctx context.Context,
	userID, chapterID string,
	req models.GenerateAudioRequest,
) (*models.GenerateAudioResponse, error) {
	if _, err := s.ownedChapter(ctx, chapterID, userID); err != nil {
		return nil, err
	}

	usage, err := s.debitFeature(ctx, userID, models.OperationAudioGeneration, s.costs.AudioCost, &chapterID)
	if err != nil {
		return nil, err
	}

	audio := &models.ChapterAudio{
		ID:            uuid.New().String(),
		ChapterID:     chapterID,
		VoiceID:       req.Voice,
		AudioFilePath: fmt.Sprintf("/generated/audio/%s.mp3", uuid.New().String()),
	}

	if err := s.repo.CreateChapterAudio(ctx, audio); err != nil {
		return nil, fmt.Errorf("error saving chapter audio: %w", err)
	}

	s.publishGeneration(ctx, usage.UserID, chapterID, usage.OperationType, usage.TokensUsed, audio.AudioFilePath)

	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading balance: %w", err)
	}

	return &models.GenerateAudioResponse{
		AudioURL: audio.AudioFilePath,
		Balance:  balance,
	}, nil
}

func (s *DefaultService) GenerateChapterSummary(
	ctx context.Context,
	userID, chapterID string,
) (*models.GenerateSummaryResponse, error) {
	chapter, err := s.ownedChapter(ctx, chapterID, userID)
	if err != nil {
		return nil, err
	}

	pages, err := s.repo.ListPagesByChapter(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("error loading pages: %w", err)
	}

	usage, err := s.debitFeature(ctx, userID, models.OperationSummaryGeneration, s.costs.SummaryCost, &chapterID)
	if err != nil {
		return nil, err
	}

	text := summarizePages(chapter.Title, pages)
	summary := &models.ChapterSummary{
		ID:        uuid.New().String(),
		ChapterID: chapterID,
		Text:      text,
	}

	if err := s.repo.SaveChapterSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("error saving chapter summary: %w", err)
	}

	s.publishGeneration(ctx, usage.UserID, chapterID, usage.OperationType, usage.TokensUsed, "")

	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading balance: %w", err)
	}

	return &models.GenerateSummaryResponse{
		Summary: text,
		Balance: balance,
	}, nil
}

func (s *DefaultService) GenerateBookSummary(
	ctx context.Context,
	userID, bookID string,
) (*models.GenerateSummaryResponse, error) {
	book, err := s.ownedBook(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}

	chapters, err := s.repo.ListChaptersByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("error loading chapters: %w", err)
	}

	var pages []models.Page
	for _, chapter := range chapters {
		chapterPages, err := s.repo.ListPagesByChapter(ctx, chapter.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading pages: %w", err)
		}
		pages = append(pages, chapterPages...)
	}

	usage, err := s.debitFeature(ctx, userID, models.OperationSummaryGeneration, s.costs.SummaryCost, nil)
	if err != nil {
		return nil, err
	}

	text := summarizePages(book.Title, pages)
	summary := &models.BookSummary{
		ID:     uuid.New().String(),
		BookID: bookID,
		Text:   text,
	}

	if err := s.repo.SaveBookSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("error saving book summary: %w", err)
	}

	event := queue.GenerationCompletedEvent{
		UserID:        usage.UserID,
		BookID:        bookID,
		OperationType: usage.OperationType,
		TokensUsed:    usage.TokensUsed,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishGenerationCompleted(ctx, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish generation event")
	}

	balance, err := s.repo.GetTokenBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading balance: %w", err)
	}

	return &models.GenerateSummaryResponse{
		Summary: text,
		Balance: balance,
	}, nil
}

// publishGeneration emits a completion event for chapter-scoped
// features. Publishing is best effort and never fails the request.
func (s *DefaultService) publishGeneration(
	ctx context.Context,
	userID, chapterID, operationType string,
	tokensUsed int,
	artifactPath string,
) {
	event := queue.GenerationCompletedEvent{
		UserID:        userID,
		ChapterID:     chapterID,
		OperationType: operationType,
		TokensUsed:    tokensUsed,
		ArtifactPath:  artifactPath,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishGenerationCompleted(ctx, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish generation event")
	}
}

// summarizePages builds an extractive summary from the leading page
// text, clipped at a word boundary.
func summarizePages(title string, pages []models.Page) string {
	var b strings.Builder
	for _, page := range pages {
		content := strings.TrimSpace(page.TextContent)
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(content)
		if b.Len() >= summaryMaxLen {
			break
		}
	}

	text := b.String()
	if text == "" {
		return fmt.Sprintf("%s has no written content yet.", title)
	}

	if len(text) > summaryMaxLen {
		cut := strings.LastIndex(text[:summaryMaxLen], " ")
		if cut <= 0 {
			cut = summaryMaxLen
		}
		text = text[:cut] + "..."
	}

	return fmt.Sprintf("%s: %s", title, text)
}
