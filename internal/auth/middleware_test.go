package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

type stubResolver struct {
	accounts map[string]*types.Account
}

func (s *stubResolver) ResolveSubject(subject string) (*types.Account, error) {
	if account, ok := s.accounts[subject]; ok {
		return account, nil
	}
	return nil, types.NewNotFoundError(types.ErrCodeNotFound, "account not found")
}

func setupGuard(t *testing.T) (*Guard, *TokenService) {
	tokens, err := NewTokenService(testSecret, 3600000)
	require.NoError(t, err)

	resolver := &stubResolver{accounts: map[string]*types.Account{
		"alice": {ID: "id-1", Username: "alice", Role: types.RolePatient},
		"admin": {ID: "id-2", Username: "admin", Role: types.RoleAdmin},
		"12345678901": {
			ID: "id-3", Username: "drbob", NationalID: "12345678901", Role: types.RoleDoctor,
		},
	}}

	return NewGuard(tokens, resolver, logger.New("debug")), tokens
}

func protectedEndpoint(guard *Guard, roles ...types.Role) http.Handler {
	return guard.RequireRoles(roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, _ := AccountFromContext(r.Context())
		w.Header().Set("X-Account", account.Username)
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestGuard_MissingToken(t *testing.T) {
	guard, _ := setupGuard(t)
	handler := protectedEndpoint(guard, types.RoleAdmin)

	recorder := doRequest(handler, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGuard_InvalidToken(t *testing.T) {
	guard, _ := setupGuard(t)
	handler := protectedEndpoint(guard, types.RoleAdmin)

	recorder := doRequest(handler, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGuard_UnknownSubject(t *testing.T) {
	guard, tokens := setupGuard(t)
	handler := protectedEndpoint(guard, types.RoleAdmin)

	token, err := tokens.Issue("ghost")
	require.NoError(t, err)

	recorder := doRequest(handler, token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGuard_RoleMatrix(t *testing.T) {
	guard, tokens := setupGuard(t)

	cases := []struct {
		name     string
		subject  string
		allowed  []types.Role
		expected int
	}{
		{"patient on admin route", "alice", []types.Role{types.RoleAdmin}, http.StatusForbidden},
		{"admin on admin route", "admin", []types.Role{types.RoleAdmin}, http.StatusOK},
		{"doctor by national id subject", "12345678901", []types.Role{types.RoleAdmin, types.RoleDoctor}, http.StatusOK},
		{"patient on patient route", "alice", []types.Role{types.RolePatient}, http.StatusOK},
		{"doctor on patient-only route", "12345678901", []types.Role{types.RolePatient}, http.StatusForbidden},
		{"any authenticated account", "alice", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := tokens.Issue(tc.subject)
			require.NoError(t, err)

			recorder := doRequest(protectedEndpoint(guard, tc.allowed...), token)
			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

func TestGuard_ContextCarriesAccount(t *testing.T) {
	guard, tokens := setupGuard(t)
	handler := protectedEndpoint(guard, types.RoleDoctor)

	token, err := tokens.Issue("12345678901")
	require.NoError(t, err)

	recorder := doRequest(handler, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "drbob", recorder.Header().Get("X-Account"))
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		expected string
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"missing scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic abc", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.expected, extractBearerToken(req))
		})
	}
}
