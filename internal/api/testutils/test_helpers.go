package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/api"
	"github.com/mharfe/storyforge-server/internal/config"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/queue"
	"github.com/mharfe/storyforge-server/internal/repository"
	"github.com/mharfe/storyforge-server/internal/service"
	"github.com/mharfe/storyforge-server/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Repository  repository.Repository
	Service     service.Service
	Tokens      *utils.JWTManager
	Costs       config.TokenConfig
	TestUserID  string
	TestUserJWT string
}

// TestTokenConfig returns the token economy used across the API tests
func TestTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		StartingBalance: 20,
		PricePerToken:   0.01,
		ImageCost:       30,
		AudioCost:       20,
		SummaryCost:     10,
	}
}

// SetupTestContext creates a new test context backed by in-memory
// storage, with one registered test user
func SetupTestContext(t *testing.T) *TestContext {
	return setupTestContext(t, false)
}

// SetupTestContextWithHeaderIdentity is SetupTestContext with the
// User-Id header identity switched on
func SetupTestContextWithHeaderIdentity(t *testing.T) *TestContext {
	return setupTestContext(t, true)
}

func setupTestContext(t *testing.T, allowUserIDHeader bool) *TestContext {
	costs := TestTokenConfig()

	repo := repository.NewMemoryRepository()
	tokens := utils.NewJWTManager("test-secret-key", 24*time.Hour)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := service.NewDefaultService(repo, tokens, queue.NoopPublisher{}, costs, logger)

	// No login rate limiter in tests
	handler := api.NewHandler(svc, repo, tokens, nil, allowUserIDHeader, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.SetupRoutes(router)

	testUserID, token := createTestUser(t, repo, tokens, costs.StartingBalance)

	return &TestContext{
		Router:      router,
		Repository:  repo,
		Service:     svc,
		Tokens:      tokens,
		Costs:       costs,
		TestUserID:  testUserID,
		TestUserJWT: token,
	}
}

// CreateUser registers an additional user and returns its ID and a
// valid bearer token
func (tc *TestContext) CreateUser(t *testing.T, username, email string) (string, string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Password:     string(hashedPassword),
		TokenBalance: tc.Costs.StartingBalance,
	}

	err := tc.Repository.CreateUser(context.Background(), user)
	assert.NoError(t, err, "Failed to create user")

	token, err := tc.Tokens.Issue(user.ID, user.Username)
	assert.NoError(t, err, "Failed to generate JWT token")

	return user.ID, token
}

func createTestUser(t *testing.T, repo repository.Repository, tokens *utils.JWTManager, startingBalance int) (string, string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "testuser",
		Email:        "testuser@example.com",
		Password:     string(hashedPassword),
		TokenBalance: startingBalance,
	}

	err := repo.CreateUser(context.Background(), user)
	assert.NoError(t, err, "Failed to create test user")

	token, err := tokens.Issue(user.ID, user.Username)
	assert.NoError(t, err, "Failed to generate JWT token")

	return user.ID, token
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
