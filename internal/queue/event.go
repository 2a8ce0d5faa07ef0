package queue

import "time"

// GenerationCompletedEvent is published after a metered generation
// feature has debited tokens and stored its artifact. Downstream
// workers (audio rendering, image pipelines) consume it.
type GenerationCompletedEvent struct {
	UserID        string    `json:"userId"`
	BookID        string    `json:"bookId,omitempty"`
	ChapterID     string    `json:"chapterId,omitempty"`
	OperationType string    `json:"operationType"`
	TokensUsed    int       `json:"tokensUsed"`
	ArtifactPath  string    `json:"artifactPath,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
