package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/mharfe/storyforge-server/internal/api/testutils"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/stretchr/testify/assert"
)

// createBookAndChapter sets up a book with one chapter for the given
// caller and returns their IDs
func createBookAndChapter(t *testing.T, testCtx *testutils.TestContext, token string) (string, string) {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/books",
		models.CreateBookRequest{Title: "Ledger Test Book"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var book models.Book
	err := json.Unmarshal(w.Body.Bytes(), &book)
	assert.NoError(t, err)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/chapters",
		models.CreateChapterRequest{BookID: book.ID, Title: "Chapter One", Order: 1},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var chapter models.Chapter
	err = json.Unmarshal(w.Body.Bytes(), &chapter)
	assert.NoError(t, err)

	return book.ID, chapter.ID
}

func getBalance(t *testing.T, testCtx *testutils.TestContext, token string) int {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/balance",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.BalanceResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp.Balance
}

func TestTokenLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	_, chapterID := createBookAndChapter(t, testCtx, token)

	// Fresh account carries the starting grant
	assert.Equal(t, testCtx.Costs.StartingBalance, getBalance(t, testCtx, token))

	// Purchase 50 tokens: 20 -> 70
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/tokens/purchase",
		models.PurchaseRequest{Amount: 50},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var purchaseResponse models.PurchaseResponse
	err := json.Unmarshal(w.Body.Bytes(), &purchaseResponse)
	assert.NoError(t, err)
	assert.Equal(t, 70, purchaseResponse.Balance)
	assert.NotEmpty(t, purchaseResponse.TransactionID)

	// Generate an image: 70 -> 40
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/chapters/%s/generate-image", chapterID),
		models.GenerateImageRequest{Prompt: "a dragon over the sea"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var imageResponse models.GenerateImageResponse
	err = json.Unmarshal(w.Body.Bytes(), &imageResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, imageResponse.ImageURL)
	assert.Equal(t, 40, imageResponse.Balance)

	// Second image: 40 -> 10
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/chapters/%s/generate-image", chapterID),
		models.GenerateImageRequest{Prompt: "a castle at dawn"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, getBalance(t, testCtx, token))

	// Audio costs 20, balance is 10: rejected, balance unchanged
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/chapters/%s/generate-audio", chapterID),
		models.GenerateAudioRequest{Voice: "narrator-1"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse models.ErrorResponse
	err = json.Unmarshal(w.Body.Bytes(), &errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "INSUFFICIENT_BALANCE", errResponse.Code)
	assert.Equal(t, 10, getBalance(t, testCtx, token))

	// Payment history holds exactly the one purchase
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/transactions",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var transactions []models.PaymentTransaction
	err = json.Unmarshal(w.Body.Bytes(), &transactions)
	assert.NoError(t, err)
	assert.Len(t, transactions, 1)
	assert.Equal(t, 50, transactions[0].TokenAmount)
	assert.Equal(t, models.PaymentStatusCompleted, transactions[0].PaymentStatus)
	assert.InDelta(t, 0.5, transactions[0].Amount, 0.0001)

	// Usage history holds the two successful debits, nothing for the
	// rejected one
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/tokens/usage",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var usage []models.TokenUsageLog
	err = json.Unmarshal(w.Body.Bytes(), &usage)
	assert.NoError(t, err)
	assert.Len(t, usage, 2)
	for _, entry := range usage {
		assert.Equal(t, models.OperationImageGeneration, entry.OperationType)
		assert.Equal(t, testCtx.Costs.ImageCost, entry.TokensUsed)
	}
}

func TestPurchaseValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	// Zero amount fails binding
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/tokens/purchase",
		models.PurchaseRequest{Amount: 0},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Negative amount fails domain validation
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/tokens/purchase",
		models.PurchaseRequest{Amount: -5},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse models.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "INVALID_ARGUMENT", errResponse.Code)

	// Balance untouched
	assert.Equal(t, testCtx.Costs.StartingBalance, getBalance(t, testCtx, token))
}
