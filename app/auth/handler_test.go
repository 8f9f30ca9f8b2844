package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/frechnel/shop-api/models"
)

// --- Mock Repository ---

type MockAdminRepo struct {
	Admin *models.Admin
	Err   error
}

func (m *MockAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Admin != nil && strings.EqualFold(m.Admin.Email, strings.TrimSpace(email)) {
		return m.Admin, nil
	}
	return nil, models.ErrAdminNotFound
}

func seededAdmin(t *testing.T, email, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.Admin{ID: "admin-1", Email: email, PasswordHash: string(hash)}
}

// --- Tests: POST /auth/login ---

func TestHandleLogin(t *testing.T) {
	tokens := NewTokens("test-secret")

	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func(t *testing.T) *MockAdminRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:        "Success returns a verifiable token",
			requestBody: `{"email":"admin@frechnel.com","password":"freshnel2024"}`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{Admin: seededAdmin(t, "admin@frechnel.com", "freshnel2024")}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Success bool   `json:"success"`
					Token   string `json:"token"`
					Admin   struct {
						Email string `json:"email"`
					} `json:"admin"`
				}
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "admin@frechnel.com", resp.Admin.Email)

				claims, err := tokens.Parse(resp.Token)
				assert.NoError(t, err)
				assert.Equal(t, "admin-1", claims.AdminID)
			},
		},
		{
			name:        "Email matched case-insensitively",
			requestBody: `{"email":"ADMIN@Frechnel.COM","password":"freshnel2024"}`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{Admin: seededAdmin(t, "admin@frechnel.com", "freshnel2024")}
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:        "Wrong password",
			requestBody: `{"email":"admin@frechnel.com","password":"wrong"}`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{Admin: seededAdmin(t, "admin@frechnel.com", "freshnel2024")}
			},
			expectedStatusCode: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "invalid email or password", errResp["error"])
			},
		},
		{
			name:        "Unknown email yields the same error as a wrong password",
			requestBody: `{"email":"nobody@frechnel.com","password":"freshnel2024"}`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{Admin: seededAdmin(t, "admin@frechnel.com", "freshnel2024")}
			},
			expectedStatusCode: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "invalid email or password", errResp["error"])
			},
		},
		{
			name:        "Missing fields",
			requestBody: `{"email":"admin@frechnel.com"}`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid`,
			mockRepoSetup: func(t *testing.T) *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup(t)
			handler := NewAuthHandler(mockRepo, tokens)
			req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleLogin(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
