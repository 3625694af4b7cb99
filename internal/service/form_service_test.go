package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

type fakeFormStore struct {
	submissions map[uuid.UUID]*model.FormSubmission
	err         error
}

func newFakeFormStore() *fakeFormStore {
	return &fakeFormStore{submissions: map[uuid.UUID]*model.FormSubmission{}}
}

func (f *fakeFormStore) Create(ctx context.Context, submission *model.FormSubmission) error {
	if f.err != nil {
		return f.err
	}
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	copied := *submission
	f.submissions[submission.ID] = &copied
	return nil
}

func (f *fakeFormStore) GetByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (f *fakeFormStore) List(ctx context.Context) ([]model.FormSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.FormSubmission
	for _, s := range f.submissions {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeFormStore) Update(ctx context.Context, submission *model.FormSubmission) error {
	copied := *submission
	f.submissions[submission.ID] = &copied
	return nil
}

func (f *fakeFormStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.submissions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.submissions, id)
	return nil
}

type fakeMailer struct {
	sent []model.FormSubmission
	err  error
}

func (f *fakeMailer) SendEnquiry(submission model.FormSubmission) error {
	f.sent = append(f.sent, submission)
	return f.err
}

// newFormFixture wires the service with a synchronous notify so tests can
// observe the mail side effect deterministically.
func newFormFixture(store *fakeFormStore, mailer *fakeMailer) *FormService {
	svc := NewFormService(store, mailer, zerolog.Nop())
	if mailer != nil {
		svc.notify = func(submission model.FormSubmission) {
			svc.sendEnquiry(submission)
		}
	}
	return svc
}

func validFormInput() FormSubmissionInput {
	return FormSubmissionInput{
		Name:    strPtr("Alex Chen"),
		Email:   strPtr("alex@example.com"),
		Message: strPtr("Interested in the Skyline."),
	}
}

func TestFormService_CreateNotifies(t *testing.T) {
	store := newFakeFormStore()
	mailer := &fakeMailer{}
	svc := newFormFixture(store, mailer)

	submission, err := svc.Create(context.Background(), validFormInput())
	require.NoError(t, err)

	assert.False(t, submission.Read)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Alex Chen", mailer.sent[0].Name)
}

func TestFormService_CreateRequiredFields(t *testing.T) {
	svc := newFormFixture(newFakeFormStore(), nil)

	tests := []struct {
		name   string
		mutate func(*FormSubmissionInput)
	}{
		{"missing_name", func(in *FormSubmissionInput) { in.Name = nil }},
		{"missing_email", func(in *FormSubmissionInput) { in.Email = nil }},
		{"missing_message", func(in *FormSubmissionInput) { in.Message = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validFormInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFormService_MailFailureDoesNotFailCreate(t *testing.T) {
	store := newFakeFormStore()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newFormFixture(store, mailer)

	submission, err := svc.Create(context.Background(), validFormInput())
	require.NoError(t, err)
	assert.Len(t, store.submissions, 1)
	assert.NotEqual(t, uuid.Nil, submission.ID)
}

func TestFormService_CreateWithoutMailer(t *testing.T) {
	store := newFakeFormStore()
	svc := newFormFixture(store, nil)

	_, err := svc.Create(context.Background(), validFormInput())
	require.NoError(t, err)
}

func TestFormService_MarkRead(t *testing.T) {
	store := newFakeFormStore()
	svc := newFormFixture(store, nil)

	submission, err := svc.Create(context.Background(), validFormInput())
	require.NoError(t, err)

	updated, err := svc.MarkRead(context.Background(), submission.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Read)

	updated, err = svc.MarkRead(context.Background(), submission.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Read)
}

func TestFormService_MarkReadNotFound(t *testing.T) {
	svc := newFormFixture(newFakeFormStore(), nil)

	_, err := svc.MarkRead(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormService_ListEmpty(t *testing.T) {
	svc := newFormFixture(newFakeFormStore(), nil)

	submissions, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, submissions)
	assert.Len(t, submissions, 0)
}
