package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/repository"
)

func (s *DefaultService) CreateFavoriteVoice(
	ctx context.Context,
	userID string,
	req models.FavoriteVoiceRequest,
) (*models.FavoriteVoice, error) {
	voice := &models.FavoriteVoice{
		ID:           uuid.New().String(),
		UserID:       userID,
		VoiceName:    req.VoiceName,
		VoiceID1:     req.VoiceID1,
		VoiceWeight1: req.VoiceWeight1,
		VoiceID2:     req.VoiceID2,
		VoiceWeight2: req.VoiceWeight2,
	}

	if err := s.repo.CreateFavoriteVoice(ctx, voice); err != nil {
		return nil, fmt.Errorf("error creating favorite voice: %w", err)
	}

	return voice, nil
}

func (s *DefaultService) GetFavoriteVoice(ctx context.Context, userID, id string) (*models.FavoriteVoice, error) {
	return s.ownedVoice(ctx, id, userID)
}

func (s *DefaultService) ListFavoriteVoices(ctx context.Context, userID string) ([]models.FavoriteVoice, error) {
	return s.repo.ListFavoriteVoicesByUser(ctx, userID)
}

func (s *DefaultService) UpdateFavoriteVoice(
	ctx context.Context,
	userID, id string,
	req models.FavoriteVoiceRequest,
) (*models.FavoriteVoice, error) {
	voice, err := s.ownedVoice(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	voice.VoiceName = req.VoiceName
	voice.VoiceID1 = req.VoiceID1
	voice.VoiceWeight1 = req.VoiceWeight1
	voice.VoiceID2 = req.VoiceID2
	voice.VoiceWeight2 = req.VoiceWeight2

	if err := s.repo.UpdateFavoriteVoice(ctx, voice); err != nil {
		return nil, fmt.Errorf("error updating favorite voice: %w", err)
	}

	return voice, nil
}

func (s *DefaultService) DeleteFavoriteVoice(ctx context.Context, userID, id string) error {
	if _, err := s.ownedVoice(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.DeleteFavoriteVoice(ctx, id)
}

func (s *DefaultService) ownedVoice(ctx context.Context, voiceID, callerID string) (*models.FavoriteVoice, error) {
	voice, err := s.repo.GetFavoriteVoice(ctx, voiceID)
	if err != nil {
		return nil, err
	}
	if voice.UserID != callerID {
		return nil, repository.ErrForbidden
	}
	return voice, nil
}
