package models

// Request models
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PurchaseRequest struct {
	Amount int `json:"amount" binding:"required"`
}

type CreateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type CreateChapterRequest struct {
	BookID string `json:"bookId" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Order  int    `json:"order"`
}

type UpdateChapterRequest struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
}

type CreatePageRequest struct {
	ChapterID   string `json:"chapterId" binding:"required"`
	PageNumber  int    `json:"pageNumber" binding:"required"`
	TextContent string `json:"textContent"`
}

type UpdatePageRequest struct {
	PageNumber  int    `json:"pageNumber" binding:"required"`
	TextContent string `json:"textContent"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	PageID string `json:"pageId"`
}

type GenerateAudioRequest struct {
	Voice string `json:"voice" binding:"required"`
}

type FavoriteVoiceRequest struct {
	VoiceName    string `json:"voiceName" binding:"required"`
	VoiceID1     string `json:"voiceId1" binding:"required"`
	VoiceWeight1 int    `json:"voiceWeight1" binding:"required"`
	VoiceID2     string `json:"voiceId2"`
	VoiceWeight2 int    `json:"voiceWeight2"`
}

// Response models
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ExpiresIn int    `json:"expiresIn"`
}

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type PurchaseResponse struct {
	Balance       int    `json:"balance"`
	TransactionID string `json:"transactionId"`
}

type GenerateImageResponse struct {
	ImageURL string `json:"imageUrl"`
	Balance  int    `json:"balance"`
}

type GenerateAudioResponse struct {
	AudioURL string `json:"audioUrl"`
	Balance  int    `json:"balance"`
}

type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
	Balance int    `json:"balance"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
