package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// ContactService stores public contact form submissions for later
// review in the admin console. No mail is sent.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	msg.CreatedAt = time.Now().UTC()
	if err := s.repo.Insert(ctx, &msg); err != nil {
		return err
	}
	s.log.Info().Str("email", msg.Email).Msg("contact message received")
	return nil
}
