//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"roomdesk/internal/domain/user"
	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/usecase/queries"
	"roomdesk/tests/common/authtest"
	"roomdesk/tests/common/dbtest"
	"roomdesk/tests/common/httptest"
	"roomdesk/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) seedUsers() {
	t := s.T()
	dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleClient))
	dbtest.CreateTestUser(t, s.DB, "inactive@example.com", string(user.RoleClient))

	ctx := t.Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(t, err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials log in",
			email:          "guest@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user is rejected",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password is rejected",
			email:          "guest@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive account is refused",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty email fails validation",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password fails validation",
			email:          "guest@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			s.seedUsers()

			reqBody := reqdto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var body resdto.LoginResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.NotEmpty(t, body.AccessToken)
				require.Equal(t, "client", body.Role)

				cookies := httptest.ExtractCookies(w)
				require.NotEmpty(t, cookies, "token cookies should be set")
			}
		})
	}
}

func (s *authSuite) TestRegister() {
	s.Run("Normal case: register, then log in and fetch the account", func() {
		t := s.T()

		reqBody := reqdto.RegisterRequest{
			Name:     "Ada Guest",
			Email:    "ada@example.com",
			Password: "password123",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.NotEmpty(t, created.AccessToken)
		require.Equal(t, "client", created.Role)

		token := authtest.LoginUser(t, s.Router, "ada@example.com", "password123")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var account queries.AuthorizedUserView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
		require.Equal(t, created.UserID, account.ID)
	})

	s.Run("Error case: duplicate email conflicts", func() {
		t := s.T()
		s.seedUsers()

		reqBody := reqdto.RegisterRequest{
			Name:     "Copy Cat",
			Email:    "guest@example.com",
			Password: "password123",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: short password fails validation", func() {
		t := s.T()

		reqBody := reqdto.RegisterRequest{
			Name:     "Short",
			Email:    "short@example.com",
			Password: "short",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestRefreshAndLogout() {
	s.Run("Normal case: refresh rotates the cookies", func() {
		t := s.T()
		s.seedUsers()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "guest@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		cookies := httptest.ExtractCookies(w)
		require.NotEmpty(t, cookies)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, cookies, "")
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.NotEmpty(t, httptest.ExtractCookies(w), "refresh should reissue cookies")
	})

	s.Run("Error case: refresh without a cookie is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("Normal case: logout clears the cookies", func() {
		t := s.T()
		s.seedUsers()

		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})
}
