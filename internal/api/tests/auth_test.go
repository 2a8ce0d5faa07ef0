package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mharfe/storyforge-server/internal/api/testutils"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful registration
	registerReq := models.RegisterRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "Password123",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/register",
		registerReq,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse models.RegisterResponse
	err := json.Unmarshal(w.Body.Bytes(), &registerResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, registerResponse.UserID)

	// New users start with the free token grant
	loginAndCheckBalance(t, testCtx, "newuser", testCtx.Costs.StartingBalance)

	// Test case 2: Duplicate username
	duplicateUsernameReq := models.RegisterRequest{
		Username: "newuser",
		Email:    "other@example.com",
		Password: "Password123",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/register",
		duplicateUsernameReq,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse models.ErrorResponse
	err = json.Unmarshal(w.Body.Bytes(), &errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "DUPLICATE", errResponse.Code)

	// Test case 3: Duplicate email
	duplicateEmailReq := models.RegisterRequest{
		Username: "otheruser",
		Email:    "newuser@example.com",
		Password: "Password123",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/register",
		duplicateEmailReq,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Invalid request (password too short)
	invalidReq := models.RegisterRequest{
		Username: "shortpw",
		Email:    "shortpw@example.com",
		Password: "short",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/register",
		invalidReq,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login
	loginReq := models.LoginRequest{
		Username: "testuser",
		Password: "testpassword",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse models.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)
	assert.Equal(t, testCtx.TestUserID, loginResponse.UserID)
	assert.Greater(t, loginResponse.ExpiresIn, 0)

	// The issued token works against a protected route
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		testutils.AuthHeaders(loginResponse.Token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 2: Invalid credentials
	invalidLoginReq := models.LoginRequest{
		Username: "testuser",
		Password: "wrongpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		invalidLoginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: User not found
	nonExistentUserReq := models.LoginRequest{
		Username: "nonexistent",
		Password: "testpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		nonExistentUserReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// No Authorization header
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed Authorization header
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		map[string]string{"Authorization": "Token abc"},
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		testutils.AuthHeaders("not-a-real-token"),
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// loginAndCheckBalance logs a user in with the default test password
// and asserts the balance the API reports
func loginAndCheckBalance(t *testing.T, testCtx *testutils.TestContext, username string, expected int) {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: username, Password: "Password123"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse models.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		testutils.AuthHeaders(loginResponse.Token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var balanceResponse models.BalanceResponse
	err = json.Unmarshal(w.Body.Bytes(), &balanceResponse)
	assert.NoError(t, err)
	assert.Equal(t, expected, balanceResponse.Balance)
}
