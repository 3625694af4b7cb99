package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

// FormSubmissionStore is the persistence surface for enquiry submissions.
type FormSubmissionStore interface {
	Create(ctx context.Context, submission *model.FormSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error)
	List(ctx context.Context) ([]model.FormSubmission, error)
	Update(ctx context.Context, submission *model.FormSubmission) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnquiryMailer notifies the sales inbox about a new submission.
type EnquiryMailer interface {
	SendEnquiry(submission model.FormSubmission) error
}

type FormService struct {
	submissions FormSubmissionStore
	mailer      EnquiryMailer
	log         zerolog.Logger

	// notify dispatches the mail side effect; overridable in tests to run
	// synchronously.
	notify func(model.FormSubmission)
}

func NewFormService(submissions FormSubmissionStore, mailer EnquiryMailer, log zerolog.Logger) *FormService {
	s := &FormService{
		submissions: submissions,
		mailer:      mailer,
		log:         log,
	}
	s.notify = func(submission model.FormSubmission) {
		go s.sendEnquiry(submission)
	}
	return s
}

type FormSubmissionInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Vehicle *string `json:"vehicle"`
	Budget  *string `json:"budget"`
	Message *string `json:"message"`
}

// Create stores a public enquiry and fires the notification email without
// blocking the request. A failed email never fails the submission.
func (s *FormService) Create(ctx context.Context, input FormSubmissionInput) (*model.FormSubmission, error) {
	if input.Name == nil || input.Email == nil || input.Message == nil {
		return nil, ErrInvalidInput
	}

	submission := &model.FormSubmission{
		Name:    *input.Name,
		Email:   *input.Email,
		Phone:   input.Phone,
		Vehicle: input.Vehicle,
		Budget:  input.Budget,
		Message: *input.Message,
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		s.notify(*submission)
	}

	return submission, nil
}

func (s *FormService) sendEnquiry(submission model.FormSubmission) {
	if err := s.mailer.SendEnquiry(submission); err != nil {
		s.log.Error().Err(err).Str("submission_id", submission.ID.String()).Msg("enquiry notification failed")
	}
}

func (s *FormService) List(ctx context.Context) ([]model.FormSubmission, error) {
	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []model.FormSubmission{}
	}
	return submissions, nil
}

// MarkRead flips the triage flag on a submission.
func (s *FormService) MarkRead(ctx context.Context, id uuid.UUID, read bool) (*model.FormSubmission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	submission.Read = read
	if err := s.submissions.Update(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *FormService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.submissions.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
