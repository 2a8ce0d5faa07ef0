package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
)

// Book repository methods
func (r *PostgresRepository) CreateBook(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if book.ID == "" {
		book.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Description, book.CreatedAt, book.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	query := `SELECT * FROM books WHERE id = $1`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &book, nil
}

func (r *PostgresRepository) ListBooksByUser(ctx context.Context, userID string) ([]models.Book, error) {
	query := `SELECT * FROM books WHERE user_id = $1 ORDER BY created_at ASC`

	var books []models.Book
	err := r.db.SelectContext(ctx, &books, query, userID)
	if err != nil {
		return nil, err
	}

	return books, nil
}

func (r *PostgresRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	query := `UPDATE books SET title = $1, description = $2, updated_at = $3 WHERE id = $4`

	book.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query, book.Title, book.Description, book.UpdatedAt, book.ID)
	if err != nil {
		return err
	}

	return requireRow(res)
}

func (r *PostgresRepository) DeleteBook(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRow(res)
}

func (r *PostgresRepository) SearchBooksByTitle(ctx context.Context, userID, title string) ([]models.Book, error) {
	query := `SELECT * FROM books WHERE user_id = $1 AND title ILIKE '%' || $2 || '%' ORDER BY created_at ASC`

	var books []models.Book
	err := r.db.SelectContext(ctx, &books, query, userID, title)
	if err != nil {
		return nil, err
	}

	return books, nil
}

// Chapter repository methods
func (r *PostgresRepository) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (id, book_id, title, chapter_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}
	chapter.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		chapter.ID, chapter.BookID, chapter.Title, chapter.ChapterOrder, chapter.CreatedAt)

	return err
}

func (r *PostgresRepository) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	query := `SELECT * FROM chapters WHERE id = $1`

	var chapter models.Chapter
	err := r.db.GetContext(ctx, &chapter, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &chapter, nil
}

func (r *PostgresRepository) ListChaptersByBook(ctx context.Context, bookID string) ([]models.Chapter, error) {
	query := `SELECT * FROM chapters WHERE book_id = $1 ORDER BY chapter_order ASC`

	var chapters []models.Chapter
	err := r.db.SelectContext(ctx, &chapters, query, bookID)
	if err != nil {
		return nil, err
	}

	return chapters, nil
}

func (r *PostgresRepository) UpdateChapter(ctx context.Context, chapter *models.Chapter) error {
	query := `UPDATE chapters SET title = $1, chapter_order = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, chapter.Title, chapter.ChapterOrder, chapter.ID)
	if err != nil {
		return err
	}

	return requireRow(res)
}

func (r *PostgresRepository) DeleteChapter(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRow(res)
}

// Page repository methods
func (r *PostgresRepository) CreatePage(ctx context.Context, page *models.Page) error {
	query := `
		INSERT INTO pages (id, chapter_id, page_number, text_content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if page.ID == "" {
		page.ID = uuid.New().String()
	}
	page.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		page.ID, page.ChapterID, page.PageNumber, page.TextContent, page.CreatedAt)

	return err
}

func (r *PostgresRepository) GetPage(ctx context.Context, id string) (*models.Page, error) {
	query := `SELECT * FROM pages WHERE id = $1`

	var page models.Page
	err := r.db.GetContext(ctx, &page, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &page, nil
}

func (r *PostgresRepository) ListPagesByChapter(ctx context.Context, chapterID string) ([]models.Page, error) {
	query := `SELECT * FROM pages WHERE chapter_id = $1 ORDER BY page_number ASC`

	var pages []models.Page
	err := r.db.SelectContext(ctx, &pages, query, chapterID)
	if err != nil {
		return nil, err
	}

	return pages, nil
}

func (r *PostgresRepository) UpdatePage(ctx context.Context, page *models.Page) error {
	query := `UPDATE pages SET page_number = $1, text_content = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, page.PageNumber, page.TextContent, page.ID)
	if err != nil {
		return err
	}

	return requireRow(res)
}

func (r *PostgresRepository) DeletePage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRow(res)
}

// Generated content repository methods
func (r *PostgresRepository) CreateImagePrompt(ctx context.Context, prompt *models.ImagePrompt) error {
	query := `
		INSERT INTO image_prompts (id, chapter_id, page_id, selected_text, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	prompt.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		prompt.ID, prompt.ChapterID, prompt.PageID, prompt.SelectedText, prompt.ImagePath, prompt.CreatedAt)

	return err
}

func (r *PostgresRepository) ListImagePromptsByChapter(ctx context.Context, chapterID string) ([]models.ImagePrompt, error) {
	query := `SELECT * FROM image_prompts WHERE chapter_id = $1 ORDER BY created_at ASC`

	var prompts []models.ImagePrompt
	err := r.db.SelectContext(ctx, &prompts, query, chapterID)
	if err != nil {
		return nil, err
	}

	return prompts, nil
}

// SaveBookSummary replaces any existing summary for the book
func (r *PostgresRepository) SaveBookSummary(ctx context.Context, summary *models.BookSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	summary.GeneratedAt = time.Now().UTC()

	query := `
		INSERT INTO book_summaries (id, book_id, text, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id) DO UPDATE SET text = $3, generated_at = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		summary.ID, summary.BookID, summary.Text, summary.GeneratedAt)

	return err
}

func (r *PostgresRepository) GetBookSummaryByBook(ctx context.Context, bookID string) (*models.BookSummary, error) {
	query := `SELECT * FROM book_summaries WHERE book_id = $1`

	var summary models.BookSummary
	err := r.db.GetContext(ctx, &summary, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &summary, nil
}

// SaveChapterSummary replaces any existing summary for the chapter
func (r *PostgresRepository) SaveChapterSummary(ctx context.Context, summary *models.ChapterSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	summary.GeneratedAt = time.Now().UTC()

	query := `
		INSERT INTO chapter_summaries (id, chapter_id, text, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chapter_id) DO UPDATE SET text = $3, generated_at = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		summary.ID, summary.ChapterID, summary.Text, summary.GeneratedAt)

	return err
}

func (r *PostgresRepository) GetChapterSummaryByChapter(ctx context.Context, chapterID string) (*models.ChapterSummary, error) {
	query := `SELECT * FROM chapter_summaries WHERE chapter_id = $1`

	var summary models.ChapterSummary
	err := r.db.GetContext(ctx, &summary, query, chapterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &summary, nil
}

func (r *PostgresRepository) CreateChapterAudio(ctx context.Context, audio *models.ChapterAudio) error {
	query := `
		INSERT INTO chapter_audios (id, chapter_id, voice_id, audio_file_path, generated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if audio.ID == "" {
		audio.ID = uuid.New().String()
	}
	audio.GeneratedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		audio.ID, audio.ChapterID, audio.VoiceID, audio.AudioFilePath, audio.GeneratedAt)

	return err
}

func (r *PostgresRepository) ListChapterAudioByChapter(ctx context.Context, chapterID string) ([]models.ChapterAudio, error) {
	query := `SELECT * FROM chapter_audios WHERE chapter_id = $1 ORDER BY generated_at DESC`

	var audios []models.ChapterAudio
	err := r.db.SelectContext(ctx, &audios, query, chapterID)
	if err != nil {
		return nil, err
	}

	return audios, nil
}

// Favorite voice repository methods
func (r *PostgresRepository) CreateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error {
	query := `
		INSERT INTO favorite_voices (id, user_id, voice_name, voice_id1, voice_weight1, voice_id2, voice_weight2, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if voice.ID == "" {
		voice.ID = uuid.New().String()
	}
	voice.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		voice.ID, voice.UserID, voice.VoiceName, voice.VoiceID1, voice.VoiceWeight1,
		voice.VoiceID2, voice.VoiceWeight2, voice.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}

	return err
}

func (r *PostgresRepository) GetFavoriteVoice(ctx context.Context, id string) (*models.FavoriteVoice, error) {
	query := `SELECT * FROM favorite_voices WHERE id = $1`

	var voice models.FavoriteVoice
	err := r.db.GetContext(ctx, &voice, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &voice, nil
}

func (r *PostgresRepository) ListFavoriteVoicesByUser(ctx context.Context, userID string) ([]models.FavoriteVoice, error) {
	query := `SELECT * FROM favorite_voices WHERE user_id = $1 ORDER BY created_at ASC`

	var voices []models.FavoriteVoice
	err := r.db.SelectContext(ctx, &voices, query, userID)
	if err != nil {
		return nil, err
	}

	return voices, nil
}

func (r *PostgresRepository) UpdateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error {
	query := `
		UPDATE favorite_voices
		SET voice_name = $1, voice_id1 = $2, voice_weight1 = $3, voice_id2 = $4, voice_weight2 = $5
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, query,
		voice.VoiceName, voice.VoiceID1, voice.VoiceWeight1, voice.VoiceID2, voice.VoiceWeight2, voice.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return requireRow(res)
}

func (r *PostgresRepository) DeleteFavoriteVoice(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorite_voices WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRow(res)
}

// requireRow converts a zero-row write into ErrNotFound
func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
