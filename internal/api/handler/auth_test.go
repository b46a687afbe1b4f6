package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitstop-labs/pitstop/internal/api/handler"
	"github.com/pitstop-labs/pitstop/internal/identity"
	"github.com/pitstop-labs/pitstop/internal/token"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

// fakeProvider is an identity.Provider with scripted outcomes.
type fakeProvider struct {
	signupResult *identity.SignupResult
	signupErr    error
	signInResult *identity.Principal
	signInErr    error
	profile      *identity.Profile
	profileErr   error
}

func (f *fakeProvider) SignUp(_ context.Context, _, _, _ string) (*identity.SignupResult, error) {
	return f.signupResult, f.signupErr
}

func (f *fakeProvider) SignIn(_ context.Context, _, _ string) (*identity.Principal, error) {
	return f.signInResult, f.signInErr
}

func (f *fakeProvider) GetProfile(_ context.Context, _ string) (*identity.Profile, error) {
	return f.profile, f.profileErr
}

func authRouter(p identity.Provider, tokens *token.Service) *chi.Mux {
	h := handler.NewAuthHandler(p, tokens)
	r := chi.NewRouter()
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	return r
}

func TestSignup_SessionGranted(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{
		signupResult: &identity.SignupResult{SubjectID: "subject-1", Email: "new@b.com"},
	}
	router := authRouter(provider, tokens)

	body := `{"email":"new@b.com","password":"secret-pass","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)

	signed := data["token"].(string)
	principal, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "subject-1", principal.SubjectID)
	assert.Equal(t, identity.RoleUser, principal.Role)

	user := data["user"].(map[string]any)
	assert.Equal(t, "new@b.com", user["email"])
}

func TestSignup_PendingVerification_NoToken(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{
		signupResult: &identity.SignupResult{SubjectID: "subject-1", Email: "new@b.com", Pending: true},
	}
	router := authRouter(provider, tokens)

	body := `{"email":"new@b.com","password":"secret-pass","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)

	assert.Equal(t, true, data["pendingVerification"])
	assert.NotContains(t, data, "token", "a session must not be fabricated before verification")
	user := data["user"].(map[string]any)
	assert.Equal(t, "subject-1", user["id"])
}

func TestSignup_ValidationFailsBeforeProvider(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{signupErr: identity.ErrSignupFailed}
	router := authRouter(provider, tokens)

	body := `{"email":"not-an-email","password":"secret-pass","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", apiErr["code"])
	assert.Equal(t, "email", apiErr["details"].(map[string]any)["field"])
}

func TestSignup_ProviderRejection(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{signupErr: identity.ErrSignupFailed}
	router := authRouter(provider, tokens)

	body := `{"email":"new@b.com","password":"secret-pass","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "SIGNUP_FAILED", apiErr["code"])
}

func TestLogin_Success(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{
		signInResult: &identity.Principal{SubjectID: "subject-1", Email: "a@b.com", Role: identity.RoleAdmin},
	}
	router := authRouter(provider, tokens)

	body := `{"email":"a@b.com","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)

	principal, err := tokens.Verify(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "subject-1", principal.SubjectID)
	assert.Equal(t, identity.RoleAdmin, principal.Role)

	user := data["user"].(map[string]any)
	assert.Equal(t, "ADMIN", user["role"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{signInErr: identity.ErrInvalidCredentials}
	router := authRouter(provider, tokens)

	body := `{"email":"a@b.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["success"])
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr["code"])
}

func TestLogin_EmailNotConfirmed(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	provider := &fakeProvider{signInErr: identity.ErrEmailNotConfirmed}
	router := authRouter(provider, tokens)

	body := `{"email":"a@b.com","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "EMAIL_NOT_CONFIRMED", apiErr["code"])
}

func TestLogin_MissingPassword(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	router := authRouter(&fakeProvider{}, tokens)

	body := `{"email":"a@b.com"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", apiErr["code"])
	assert.Equal(t, "password", apiErr["details"].(map[string]any)["field"])
}
