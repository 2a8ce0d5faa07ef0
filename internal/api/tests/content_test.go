package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/api/testutils"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBookCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	// Create
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/books",
		models.CreateBookRequest{Title: "The Hollow Crown", Description: "A tale of two kingdoms"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var book models.Book
	err := json.Unmarshal(w.Body.Bytes(), &book)
	assert.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, testCtx.TestUserID, book.UserID)

	// Read
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/"+book.ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Update
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/books/"+book.ID,
		models.UpdateBookRequest{Title: "The Hollow Crown, Revised", Description: "Second draft"},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Book
	err = json.Unmarshal(w.Body.Bytes(), &updated)
	assert.NoError(t, err)
	assert.Equal(t, "The Hollow Crown, Revised", updated.Title)

	// List
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var books []models.Book
	err = json.Unmarshal(w.Body.Bytes(), &books)
	assert.NoError(t, err)
	assert.Len(t, books, 1)

	// Search
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/search?title=hollow",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var matches []models.Book
	err = json.Unmarshal(w.Body.Bytes(), &matches)
	assert.NoError(t, err)
	assert.Len(t, matches, 1)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/search?title=nomatch",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &matches)
	assert.NoError(t, err)
	assert.Empty(t, matches)

	// Delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/books/"+book.ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/"+book.ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChapterAndPageCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	bookID, chapterID := createBookAndChapter(t, testCtx, token)

	// Pages, created out of order
	for _, n := range []int{2, 1} {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			"/api/pages",
			models.CreatePageRequest{
				ChapterID:   chapterID,
				PageNumber:  n,
				TextContent: fmt.Sprintf("Text of page %d.", n),
			},
			testutils.AuthHeaders(token),
		)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// Listed in page number order
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/chapters/%s/pages", chapterID),
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var pages []models.Page
	err := json.Unmarshal(w.Body.Bytes(), &pages)
	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, 2, pages[1].PageNumber)

	// Update a page
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/pages/"+pages[0].ID,
		models.UpdatePageRequest{PageNumber: 1, TextContent: "Rewritten opening."},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Chapters listed under the book
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/books/%s/chapters", bookID),
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var chapters []models.Chapter
	err = json.Unmarshal(w.Body.Bytes(), &chapters)
	assert.NoError(t, err)
	assert.Len(t, chapters, 1)

	// Deleting the chapter removes its pages too
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/chapters/"+chapterID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/pages/"+pages[0].ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnershipIsolation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	ownerToken := testCtx.TestUserJWT

	_, intruderToken := testCtx.CreateUser(t, "intruder", "intruder@example.com")

	bookID, chapterID := createBookAndChapter(t, testCtx, ownerToken)

	// The intruder owns a book and chapter of their own, and those
	// stay fully accessible to them throughout
	intruderBookID, intruderChapterID := createBookAndChapter(t, testCtx, intruderToken)

	w0 := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/chapters/"+intruderChapterID,
		nil,
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusOK, w0.Code)

	// Owning sibling resources grants nothing on someone else's:
	// they cannot read, modify or delete them
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/"+bookID,
		nil,
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var errResponse models.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "FORBIDDEN", errResponse.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/chapters/"+chapterID,
		models.UpdateChapterRequest{Title: "Hijacked", Order: 1},
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/books/"+bookID,
		nil,
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nor attach chapters to someone else's book
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/chapters",
		models.CreateChapterRequest{BookID: bookID, Title: "Sneaky Chapter", Order: 9},
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Their own listing holds only their own book
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books",
		nil,
		testutils.AuthHeaders(intruderToken),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var books []models.Book
	err = json.Unmarshal(w.Body.Bytes(), &books)
	assert.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, intruderBookID, books[0].ID)

	// And the original owner cannot reach the intruder's book either
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/books/"+intruderBookID,
		nil,
		testutils.AuthHeaders(ownerToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContentNotFound(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	missing := uuid.New().String()

	for _, path := range []string{
		"/api/books/" + missing,
		"/api/chapters/" + missing,
		"/api/pages/" + missing,
	} {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodGet,
			path,
			nil,
			testutils.AuthHeaders(token),
		)
		assert.Equal(t, http.StatusNotFound, w.Code, "expected 404 for %s", path)
	}

	// Creating a chapter under a missing book is also NotFound
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/chapters",
		models.CreateChapterRequest{BookID: missing, Title: "Orphan", Order: 1},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
