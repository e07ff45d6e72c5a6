package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Olprog59/go-realty/internal/app"
	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/metrics"
	"github.com/Olprog59/go-realty/internal/mocks"
	"github.com/Olprog59/go-realty/internal/repository"
	"github.com/Olprog59/go-realty/internal/service"
	"github.com/Olprog59/go-realty/internal/service/auth"
)

// webFixture assembles the full router on top of in-memory stores / Assemble le routeur complet sur des stores en mémoire
type webFixture struct {
	mux        http.Handler
	container  *app.Container
	properties *mocks.PropertyRepositoryMock
	owners     *mocks.OwnerRepositoryMock
	images     *mocks.ImageRepositoryMock
	traces     *mocks.TraceRepositoryMock
	users      *mocks.UserRepositoryMock
	cache      *mocks.CacheMock
}

func webTestConfig() *config.Config {
	cfg := &config.Config{Environment: "test"}
	cfg.Security.BcryptCost = bcrypt.MinCost
	cfg.Auth = config.AuthConfig{
		JWTSecret:            "unit-test-secret-key-0123456789abcdef",
		Issuer:               "go-realty",
		Audience:             "go-realty-api",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	}
	return cfg
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	cfg := webTestConfig()

	f := &webFixture{
		properties: mocks.NewPropertyRepositoryMock(),
		owners:     mocks.NewOwnerRepositoryMock(),
		images:     mocks.NewImageRepositoryMock(),
		traces:     mocks.NewTraceRepositoryMock(),
		users:      mocks.NewUserRepositoryMock(),
		cache:      mocks.NewCacheMock(),
	}

	c := &app.Container{
		Config:  cfg,
		Metrics: metrics.NewMetrics(prometheus.NewRegistry()),
		Cache:   f.cache,
		Tokens:  auth.NewTokenManager(cfg.Auth),

		PropertyRepo: f.properties,
		OwnerRepo:    f.owners,
		ImageRepo:    f.images,
		TraceRepo:    f.traces,
		UserRepo:     f.users,
	}
	c.PropertySvc = service.NewPropertyService(f.properties, f.owners, f.images, f.traces, f.cache)
	c.OwnerSvc = service.NewOwnerService(f.owners, f.cache)
	c.ImageSvc = service.NewImageService(f.images, f.properties, f.cache)
	c.TraceSvc = service.NewTraceService(f.traces, f.properties, f.cache)
	c.UserSvc = service.NewUserService(f.users, f.cache, cfg)
	c.AuthSvc = service.NewAuthService(f.users, c.Tokens, c.Metrics, cfg)

	f.container = c
	f.mux = NewMux(NewHandler(c), cfg, c)
	return f
}

func (f *webFixture) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "192.0.2.1:54321"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

// responseEnvelope mirrors the wire envelope for decoding in assertions / Reflète l'enveloppe réseau pour les assertions
type responseEnvelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (f *webFixture) seedUser(t *testing.T, email, password string, role domain.UserRole) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Name: "Test User", Email: email, Password: string(hashed), Role: role}
	_, err = f.users.Insert(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (f *webFixture) tokenFor(t *testing.T, u *domain.User) string {
	t.Helper()
	pair, err := f.container.Tokens.GeneratePair(u)
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *webFixture) seedProperty(t *testing.T, name string) *domain.Property {
	t.Helper()
	p := &domain.Property{Name: name, Address: "1 Main St", Price: 100_000, CodeInternal: 1, Year: 2005}
	_, err := f.properties.Insert(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestHealthEndpoint(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestListProperties_Envelope(t *testing.T) {
	f := newWebFixture(t)
	f.seedProperty(t, "Villa")
	f.seedProperty(t, "Loft")

	rec := f.do(t, http.MethodGet, "/api/property", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.StatusCode)

	var page dto.Page[*dto.PropertyResponse]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, int64(1), page.Meta.LastPage)
}

func TestListProperties_BadPageParam(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodGet, "/api/property?page=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "page must be a number", env.Message)
}

func TestListProperties_BadPriceFilter(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodGet, "/api/property?minPrice=cheap", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProperty_NotFound(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodGet, "/api/property/"+primitive.NewObjectID().Hex(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
}

func TestCreateProperty_RequiresToken(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/property", "", dto.PropertyRequest{Name: "Villa"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "missing bearer token", env.Message)
}

func TestCreateProperty_RejectsGarbageToken(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/property", "not.a.token", dto.PropertyRequest{Name: "Villa"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "invalid token", env.Message)
}

func TestCreateProperty_Succeeds(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "agent@example.com", "password1", domain.RoleUser)
	owner := &domain.Owner{Name: "Jane", Address: "Addr", Photo: "a.jpg", Birthday: "1980-04-02"}
	_, err := f.owners.Insert(context.Background(), owner)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/property", f.tokenFor(t, u), dto.PropertyRequest{
		Name:         "Seaside Villa",
		Address:      "1 Shore Rd",
		Price:        350_000,
		CodeInternal: 42,
		Year:         2010,
		IDOwner:      owner.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp dto.PropertyResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Seaside Villa", resp.Name)
}

func TestCreateProperty_ValidationErrorsListed(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "agent@example.com", "password1", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/property", f.tokenFor(t, u), dto.PropertyRequest{Name: ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "validation failed", env.Message)
	assert.NotEmpty(t, env.Errors)
}

func TestCreateProperty_InvalidJSONBody(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "agent@example.com", "password1", domain.RoleUser)

	req := httptest.NewRequest(http.MethodPost, "/api/property", bytes.NewReader([]byte("{nope")))
	req.RemoteAddr = "192.0.2.1:54321"
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, u))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "invalid JSON body", env.Message)
}

func TestDeleteProperty_AdminOnlyAndCascades(t *testing.T) {
	f := newWebFixture(t)
	regular := f.seedUser(t, "agent@example.com", "password1", domain.RoleUser)
	admin := f.seedUser(t, "admin@example.com", "password1", domain.RoleAdmin)
	p := f.seedProperty(t, "Doomed")

	_, err := f.images.Insert(context.Background(), &domain.PropertyImage{PropertyID: p.ID, File: "a.jpg", Enabled: true})
	require.NoError(t, err)

	rec := f.do(t, http.MethodDelete, "/api/property/"+p.ID.Hex(), f.tokenFor(t, regular), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/property/"+p.ID.Hex(), f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, f.images.Images)
	assert.Empty(t, f.properties.Properties)
}

func TestRegister_PublicRoleIsAlwaysUser(t *testing.T) {
	f := newWebFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/register", "", dto.UserRequest{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "password1",
		Role:     "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, string(domain.RoleUser), resp.Role)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	f := newWebFixture(t)
	f.seedUser(t, "taken@example.com", "password1", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/auth/register", "", dto.UserRequest{
		Name:     "Second",
		Email:    "taken@example.com",
		Password: "password1",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginAndRefresh_FullFlow(t *testing.T) {
	f := newWebFixture(t)
	f.seedUser(t, "ada@example.com", "correct-horse", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var loginData struct {
		Tokens auth.TokenPair    `json:"tokens"`
		User   *dto.UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	require.NotEmpty(t, loginData.Tokens.RefreshToken)
	assert.Equal(t, "ada@example.com", loginData.User.Email)

	rec = f.do(t, http.MethodPost, "/api/token/refresh", "", dto.TokenRequest{Token: loginData.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	env = decodeEnvelope(t, rec)
	var rotated auth.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &rotated))
	assert.NotEqual(t, loginData.Tokens.RefreshToken, rotated.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newWebFixture(t)
	f.seedUser(t, "ada@example.com", "correct-horse", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "battery-staple",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "ada@example.com", "correct-horse", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/token/refresh", "", dto.TokenRequest{Token: f.tokenFor(t, u)})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateToken_EchoesClaims(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "ada@example.com", "correct-horse", domain.RoleUser)

	rec := f.do(t, http.MethodPost, "/api/token/validate", "", dto.TokenRequest{Token: f.tokenFor(t, u)})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, u.ID.Hex(), data["id"])
}

func TestUserList_AdminOnly(t *testing.T) {
	f := newWebFixture(t)
	regular := f.seedUser(t, "user@example.com", "password1", domain.RoleUser)
	admin := f.seedUser(t, "admin@example.com", "password1", domain.RoleAdmin)

	rec := f.do(t, http.MethodGet, "/api/user", f.tokenFor(t, regular), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/user", f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPatchUser_SelfOrAdmin(t *testing.T) {
	f := newWebFixture(t)
	first := f.seedUser(t, "first@example.com", "password1", domain.RoleUser)
	second := f.seedUser(t, "second@example.com", "password1", domain.RoleUser)
	admin := f.seedUser(t, "admin@example.com", "password1", domain.RoleAdmin)

	// A user may rename their own account
	rec := f.do(t, http.MethodPatch, "/api/user/"+first.ID.Hex(), f.tokenFor(t, first), map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)

	// but not someone else's
	rec = f.do(t, http.MethodPatch, "/api/user/"+second.ID.Hex(), f.tokenFor(t, first), map[string]any{"name": "Hijack"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// while an admin may touch anyone
	rec = f.do(t, http.MethodPatch, "/api/user/"+second.ID.Hex(), f.tokenFor(t, admin), map[string]any{"name": "ByAdmin"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPatchUser_RoleEscalationForbidden(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "user@example.com", "password1", domain.RoleUser)

	rec := f.do(t, http.MethodPatch, "/api/user/"+u.ID.Hex(), f.tokenFor(t, u), map[string]any{"role": "admin"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	stored, err := f.users.GetByID(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestPatchUser_EmptyPatchIsBadRequest(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "user@example.com", "password1", domain.RoleUser)

	rec := f.do(t, http.MethodPatch, "/api/user/"+u.ID.Hex(), f.tokenFor(t, u), map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePassword_Flow(t *testing.T) {
	f := newWebFixture(t)
	u := f.seedUser(t, "ada@example.com", "correct-horse", domain.RoleUser)

	rec := f.do(t, http.MethodPatch, "/api/password/update", f.tokenFor(t, u), dto.PasswordUpdateRequest{
		CurrentPassword: "wrong-current",
		NewPassword:     "brand-new-pass",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/password/update", f.tokenFor(t, u), dto.PasswordUpdateRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint_AdminOnly(t *testing.T) {
	f := newWebFixture(t)
	regular := f.seedUser(t, "user@example.com", "password1", domain.RoleUser)
	admin := f.seedUser(t, "admin@example.com", "password1", domain.RoleAdmin)

	rec := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", f.tokenFor(t, regular), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStoreErrorMapsToServiceUnavailable(t *testing.T) {
	f := newWebFixture(t)
	f.properties.Err = repository.ErrUnavailable

	rec := f.do(t, http.MethodGet, "/api/property", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "store unavailable", env.Message)
}
