package models

import (
	"time"
)

// User represents a registered writer
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"password" json:"-"` // Password hash, not returned in JSON
	TokenBalance int       `db:"token_balance" json:"tokenBalance"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// PaymentTransaction records a token purchase against a user
type PaymentTransaction struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Amount        float64   `db:"amount" json:"amount"`
	TokenAmount   int       `db:"token_amount" json:"tokenAmount"`
	PaymentStatus string    `db:"payment_status" json:"paymentStatus"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Payment status values stored in payment_transactions
const (
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusPending   = "PENDING"
)

// TokenUsageLog records tokens spent on a metered feature. ChapterID is
// set when the feature ran against a specific chapter.
type TokenUsageLog struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	ChapterID     *string   `db:"chapter_id" json:"chapterId,omitempty"`
	TokensUsed    int       `db:"tokens_used" json:"tokensUsed"`
	OperationType string    `db:"operation_type" json:"operationType"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Metered operation types
const (
	OperationImageGeneration   = "IMAGE_GENERATION"
	OperationAudioGeneration   = "AUDIO_GENERATION"
	OperationSummaryGeneration = "SUMMARY_GENERATION"
)

// FavoriteVoice is a named voice preset blending up to two voices.
// VoiceName is unique per user.
type FavoriteVoice struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	VoiceName    string    `db:"voice_name" json:"voiceName"`
	VoiceID1     string    `db:"voice_id1" json:"voiceId1"`
	VoiceWeight1 int       `db:"voice_weight1" json:"voiceWeight1"`
	VoiceID2     string    `db:"voice_id2" json:"voiceId2,omitempty"`
	VoiceWeight2 int       `db:"voice_weight2" json:"voiceWeight2,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Book is owned by exactly one user and holds ordered chapters
type Book struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Chapter belongs to exactly one book. ChapterOrder defines the display
// sequence; uniqueness is not enforced.
type Chapter struct {
	ID           string    `db:"id" json:"id"`
	BookID       string    `db:"book_id" json:"bookId"`
	Title        string    `db:"title" json:"title"`
	ChapterOrder int       `db:"chapter_order" json:"order"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Page belongs to exactly one chapter
type Page struct {
	ID          string    `db:"id" json:"id"`
	ChapterID   string    `db:"chapter_id" json:"chapterId"`
	PageNumber  int       `db:"page_number" json:"pageNumber"`
	TextContent string    `db:"text_content" json:"textContent"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ImagePrompt stores the source text a generated image was produced
// from. PageID is set when the prompt was taken from a specific page.
type ImagePrompt struct {
	ID           string    `db:"id" json:"id"`
	ChapterID    string    `db:"chapter_id" json:"chapterId"`
	PageID       *string   `db:"page_id" json:"pageId,omitempty"`
	SelectedText string    `db:"selected_text" json:"prompt"`
	ImagePath    string    `db:"image_path" json:"imageUrl"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// BookSummary is the generated summary for a whole book, one per book
type BookSummary struct {
	ID          string    `db:"id" json:"id"`
	BookID      string    `db:"book_id" json:"bookId"`
	Text        string    `db:"text" json:"text"`
	GeneratedAt time.Time `db:"generated_at" json:"generatedAt"`
}

// ChapterSummary is the generated summary for a chapter, one per chapter
type ChapterSummary struct {
	ID          string    `db:"id" json:"id"`
	ChapterID   string    `db:"chapter_id" json:"chapterId"`
	Text        string    `db:"text" json:"text"`
	GeneratedAt time.Time `db:"generated_at" json:"generatedAt"`
}

// ChapterAudio is a generated audio rendition of a chapter. A chapter
// can accumulate several renditions with different voices.
type ChapterAudio struct {
	ID            string    `db:"id" json:"id"`
	ChapterID     string    `db:"chapter_id" json:"chapterId"`
	VoiceID       string    `db:"voice_id" json:"voiceId"`
	AudioFilePath string    `db:"audio_file_path" json:"audioUrl"`
	GeneratedAt   time.Time `db:"generated_at" json:"generatedAt"`
}
