package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autohaus-service/internal/auth"
	"autohaus-service/internal/client"
	"autohaus-service/internal/config"
	"autohaus-service/internal/http/middleware"
	"autohaus-service/internal/model"
	"autohaus-service/internal/repository"
	"autohaus-service/internal/service"
)

type stubVehicleStore struct {
	vehicles   map[uuid.UUID]*model.Vehicle
	lastFilter repository.VehicleListFilter
}

func newStubVehicleStore() *stubVehicleStore {
	return &stubVehicleStore{vehicles: map[uuid.UUID]*model.Vehicle{}}
}

func (s *stubVehicleStore) Create(ctx context.Context, vehicle *model.Vehicle) error {
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	s.vehicles[vehicle.ID] = vehicle
	return nil
}

func (s *stubVehicleStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (s *stubVehicleStore) Update(ctx context.Context, vehicle *model.Vehicle) error {
	s.vehicles[vehicle.ID] = vehicle
	return nil
}

func (s *stubVehicleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.vehicles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.vehicles, id)
	return nil
}

func (s *stubVehicleStore) List(ctx context.Context, filter repository.VehicleListFilter) ([]model.Vehicle, int64, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

func (s *stubVehicleStore) Facets(ctx context.Context) (repository.VehicleFacets, error) {
	return repository.VehicleFacets{}, nil
}

type stubAdminStore struct {
	admin *model.Admin
}

func (s *stubAdminStore) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if s.admin == nil || s.admin.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

type stubFormStore struct {
	submissions []*model.FormSubmission
}

func (s *stubFormStore) Create(ctx context.Context, submission *model.FormSubmission) error {
	submission.ID = uuid.New()
	s.submissions = append(s.submissions, submission)
	return nil
}

func (s *stubFormStore) GetByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubFormStore) List(ctx context.Context) ([]model.FormSubmission, error) {
	return nil, nil
}

func (s *stubFormStore) Update(ctx context.Context, submission *model.FormSubmission) error {
	return nil
}

func (s *stubFormStore) Delete(ctx context.Context, id uuid.UUID) error {
	return gorm.ErrRecordNotFound
}

type stubBlogStore struct{}

func (stubBlogStore) Create(ctx context.Context, blog *model.Blog) error { return nil }
func (stubBlogStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubBlogStore) List(ctx context.Context) ([]model.Blog, error)     { return nil, nil }
func (stubBlogStore) Update(ctx context.Context, blog *model.Blog) error { return nil }
func (stubBlogStore) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type stubCarListingStore struct{}

func (stubCarListingStore) Create(ctx context.Context, listing *model.CarListing) error { return nil }
func (stubCarListingStore) GetByID(ctx context.Context, id uuid.UUID) (*model.CarListing, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubCarListingStore) List(ctx context.Context, status *model.CarListingStatus) ([]model.CarListing, error) {
	return nil, nil
}
func (stubCarListingStore) Update(ctx context.Context, listing *model.CarListing) error { return nil }
func (stubCarListingStore) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

type apiFixture struct {
	router       *gin.Engine
	vehicleStore *stubVehicleStore
	formStore    *stubFormStore
	token        string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := auth.HashPassword("secret-pass")
	require.NoError(t, err)
	adminStore := &stubAdminStore{admin: &model.Admin{
		ID:           uuid.New(),
		Username:     "operator",
		PasswordHash: hash,
	}}

	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("test-secret")

	token, err := issuer.Issue(adminStore.admin.ID, adminStore.admin.Username)
	require.NoError(t, err)

	vehicleStore := newStubVehicleStore()
	formStore := &stubFormStore{}
	log := zerolog.Nop()

	handler := NewHandler(
		service.NewAuthService(adminStore, issuer),
		service.NewVehicleService(vehicleStore, nil),
		service.NewBlogService(stubBlogStore{}),
		service.NewFormService(formStore, nil, log),
		service.NewCarListingService(stubCarListingStore{}),
		client.NewImageStoreClient(&config.Config{}),
		log,
	)

	router := NewRouter(handler, middleware.Auth(parser), middleware.OptionalAuth(parser), "test")

	return &apiFixture{
		router:       router,
		vehicleStore: vehicleStore,
		formStore:    formStore,
		token:        token,
	}
}

func (f *apiFixture) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/login", gin.H{
		"username": "operator",
		"password": "secret-pass",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	rec = f.do(http.MethodPost, "/api/auth/login", gin.H{
		"username": "operator",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListVehiclesIsPublic(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/vehicles?includeAll=true", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Anonymous callers never see unpublished inventory, even when asked.
	assert.False(t, f.vehicleStore.lastFilter.IncludeAll)
}

func TestListVehiclesIncludeAllWithToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/vehicles?includeAll=true", nil, f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.vehicleStore.lastFilter.IncludeAll)
}

func TestListVehiclesRejectsBadToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/vehicles", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetVehicleInvalidID(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/vehicles/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetVehicleNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/vehicles/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateVehicleRequiresAuth(t *testing.T) {
	f := newAPIFixture(t)

	body := gin.H{
		"title":       "2018 Nissan Skyline",
		"brand":       "Nissan",
		"model":       "Skyline",
		"year":        2018,
		"listingType": "Buy It",
	}

	rec := f.do(http.MethodPost, "/api/vehicles", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/vehicles", body, f.token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Japan", created.ImportSource)
	assert.True(t, created.Published)
}

func TestCreateVehicleInvalidInput(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/vehicles", gin.H{"title": "no brand"}, f.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFormSubmissionIsPublic(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/form-submissions", gin.H{
		"name":    "Alex Chen",
		"email":   "alex@example.com",
		"message": "Interested in the Skyline.",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, f.formStore.submissions, 1)
}

func TestUploadRequiresAuthAndConfig(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/upload", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated, but the image store is unconfigured in this fixture.
	rec = f.do(http.MethodPost, "/api/upload", nil, f.token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
