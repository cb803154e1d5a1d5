package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/repositories"

	"go.uber.org/zap"
)

type FeedbackServiceError string

func (e FeedbackServiceError) Error() string { return string(e) }

const (
	ErrFeedbackEmpty         FeedbackServiceError = "feedback message is required"
	ErrFeedbackTooLong       FeedbackServiceError = "feedback message is too long"
	ErrFeedbackOwnerRequired FeedbackServiceError = "owner email is required"
)

const maxFeedbackRunes = 2000

type IFeedbackService interface {
	Submit(ctx context.Context, ownerEmail, message string) (*models.Feedback, error)
}

type FeedbackService struct {
	repo repositories.IFeedbackRepository
}

func NewFeedbackService(repo repositories.IFeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit geri bildirimi kaydeder.
func (s *FeedbackService) Submit(ctx context.Context, ownerEmail, message string) (*models.Feedback, error) {
	ownerEmail = models.NormalizeEmail(ownerEmail)
	message = strings.TrimSpace(message)
	switch {
	case ownerEmail == "":
		return nil, ErrFeedbackOwnerRequired
	case message == "":
		return nil, ErrFeedbackEmpty
	case utf8.RuneCountInString(message) > maxFeedbackRunes:
		return nil, ErrFeedbackTooLong
	}

	fb := &models.Feedback{OwnerEmail: ownerEmail, Message: message}
	if err := s.repo.Create(ctx, fb); err != nil {
		configslog.Log.Error("Geri bildirim kaydedilemedi", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Geri bildirim alındı: Owner %s", ownerEmail)
	return fb, nil
}

var _ IFeedbackService = (*FeedbackService)(nil)
