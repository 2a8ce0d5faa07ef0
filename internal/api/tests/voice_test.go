package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mharfe/storyforge-server/internal/api/testutils"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFavoriteVoices(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.TestUserJWT

	// Create a blended voice
	createReq := models.FavoriteVoiceRequest{
		VoiceName:    "Warm Narrator",
		VoiceID1:     "voice-alpha",
		VoiceWeight1: 70,
		VoiceID2:     "voice-beta",
		VoiceWeight2: 30,
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/voices",
		createReq,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var voice models.FavoriteVoice
	err := json.Unmarshal(w.Body.Bytes(), &voice)
	assert.NoError(t, err)
	assert.NotEmpty(t, voice.ID)
	assert.Equal(t, "Warm Narrator", voice.VoiceName)

	// Duplicate name for the same user is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/voices",
		createReq,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse models.ErrorResponse
	err = json.Unmarshal(w.Body.Bytes(), &errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "DUPLICATE", errResponse.Code)

	// Another user can reuse the name
	_, otherToken := testCtx.CreateUser(t, "othervoice", "othervoice@example.com")
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/voices",
		createReq,
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	// And cannot touch the first user's voice
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/voices/"+voice.ID,
		nil,
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Update
	updateReq := models.FavoriteVoiceRequest{
		VoiceName:    "Warm Narrator",
		VoiceID1:     "voice-alpha",
		VoiceWeight1: 55,
		VoiceID2:     "voice-gamma",
		VoiceWeight2: 45,
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/voices/"+voice.ID,
		updateReq,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.FavoriteVoice
	err = json.Unmarshal(w.Body.Bytes(), &updated)
	assert.NoError(t, err)
	assert.Equal(t, "voice-gamma", updated.VoiceID2)
	assert.Equal(t, 55, updated.VoiceWeight1)

	// List shows only the caller's voices
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/voices",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var voices []models.FavoriteVoice
	err = json.Unmarshal(w.Body.Bytes(), &voices)
	assert.NoError(t, err)
	assert.Len(t, voices, 1)

	// Delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/voices/"+voice.ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/voices/"+voice.ID,
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
