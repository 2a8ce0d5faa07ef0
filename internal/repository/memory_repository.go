package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mharfe/storyforge-server/internal/models"
)

// MemoryRepository keeps everything in-process. It backs the HTTP test
// suite and the STORE_BACKEND=memory mode used for local development.
// A single mutex guards all state, so the ledger's check-then-act runs
// as one critical section and concurrent debits serialize the same way
// the Postgres row lock serializes them.
type MemoryRepository struct {
	mu sync.RWMutex

	users     map[string]models.User
	usernames map[string]string // username -> user ID
	emails    map[string]string // email -> user ID

	transactions []models.PaymentTransaction
	usageLogs    []models.TokenUsageLog

	books     map[string]models.Book
	chapters  map[string]models.Chapter
	pages     map[string]models.Page
	prompts   []models.ImagePrompt
	bookSums  map[string]models.BookSummary    // key: book ID
	chapSums  map[string]models.ChapterSummary // key: chapter ID
	chapAudio []models.ChapterAudio
	voices    map[string]models.FavoriteVoice
}

// NewMemoryRepository initializes an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:     make(map[string]models.User),
		usernames: make(map[string]string),
		emails:    make(map[string]string),
		books:     make(map[string]models.Book),
		chapters:  make(map[string]models.Chapter),
		pages:     make(map[string]models.Page),
		bookSums:  make(map[string]models.BookSummary),
		chapSums:  make(map[string]models.ChapterSummary),
		voices:    make(map[string]models.FavoriteVoice),
	}
}

// User repository methods
func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.usernames[user.Username]; taken {
		return ErrDuplicate
	}
	if _, taken := r.emails[user.Email]; taken {
		return ErrDuplicate
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.usernames[user.Username] = user.ID
	r.emails[user.Email] = user.ID
	return nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

// Token ledger repository methods
func (r *MemoryRepository) CreditTokens(ctx context.Context, txn *models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[txn.UserID]
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	user.TokenBalance += txn.TokenAmount
	user.UpdatedAt = now
	r.users[user.ID] = user

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = now
	r.transactions = append(r.transactions, *txn)
	return nil
}

func (r *MemoryRepository) DebitTokens(ctx context.Context, usage *models.TokenUsageLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[usage.UserID]
	if !ok {
		return ErrNotFound
	}
	if user.TokenBalance < usage.TokensUsed {
		return ErrInsufficientBalance
	}

	now := time.Now().UTC()
	user.TokenBalance -= usage.TokensUsed
	user.UpdatedAt = now
	r.users[user.ID] = user

	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	usage.CreatedAt = now
	r.usageLogs = append(r.usageLogs, *usage)
	return nil
}

func (r *MemoryRepository) GetTokenBalance(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return user.TokenBalance, nil
}

func (r *MemoryRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]models.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txns []models.PaymentTransaction
	for _, txn := range r.transactions {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].CreatedAt.After(txns[j].CreatedAt) })
	return txns, nil
}

func (r *MemoryRepository) ListUsageByUser(ctx context.Context, userID string) ([]models.TokenUsageLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []models.TokenUsageLog
	for _, entry := range r.usageLogs {
		if entry.UserID == userID {
			logs = append(logs, entry)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })
	return logs, nil
}

// Book repository methods
func (r *MemoryRepository) CreateBook(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.books[book.ID] = *book
	return nil
}

func (r *MemoryRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (r *MemoryRepository) ListBooksByUser(ctx context.Context, userID string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var books []models.Book
	for _, book := range r.books {
		if book.UserID == userID {
			books = append(books, book)
		}
	}
	sort.SliceStable(books, func(i, j int) bool { return books[i].CreatedAt.Before(books[j].CreatedAt) })
	return books, nil
}

func (r *MemoryRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[book.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = book.Title
	stored.Description = book.Description
	stored.UpdatedAt = time.Now().UTC()
	r.books[book.ID] = stored
	*book = stored
	return nil
}

func (r *MemoryRepository) DeleteBook(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	delete(r.bookSums, id)
	for chapID, chap := range r.chapters {
		if chap.BookID == id {
			r.deleteChapterLocked(chapID)
		}
	}
	return nil
}

func (r *MemoryRepository) SearchBooksByTitle(ctx context.Context, userID, title string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(title)
	var books []models.Book
	for _, book := range r.books {
		if book.UserID == userID && strings.Contains(strings.ToLower(book.Title), needle) {
			books = append(books, book)
		}
	}
	sort.SliceStable(books, func(i, j int) bool { return books[i].CreatedAt.Before(books[j].CreatedAt) })
	return books, nil
}

// Chapter repository methods
func (r *MemoryRepository) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}
	chapter.CreatedAt = time.Now().UTC()
	r.chapters[chapter.ID] = *chapter
	return nil
}

func (r *MemoryRepository) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chapter, ok := r.chapters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &chapter, nil
}

func (r *MemoryRepository) ListChaptersByBook(ctx context.Context, bookID string) ([]models.Chapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chapters []models.Chapter
	for _, chapter := range r.chapters {
		if chapter.BookID == bookID {
			chapters = append(chapters, chapter)
		}
	}
	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].ChapterOrder < chapters[j].ChapterOrder })
	return chapters, nil
}

func (r *MemoryRepository) UpdateChapter(ctx context.Context, chapter *models.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.chapters[chapter.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = chapter.Title
	stored.ChapterOrder = chapter.ChapterOrder
	r.chapters[chapter.ID] = stored
	*chapter = stored
	return nil
}

func (r *MemoryRepository) DeleteChapter(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chapters[id]; !ok {
		return ErrNotFound
	}
	r.deleteChapterLocked(id)
	return nil
}

func (r *MemoryRepository) deleteChapterLocked(id string) {
	delete(r.chapters, id)
	delete(r.chapSums, id)
	for pageID, page := range r.pages {
		if page.ChapterID == id {
			delete(r.pages, pageID)
		}
	}
	keptPrompts := r.prompts[:0]
	for _, prompt := range r.prompts {
		if prompt.ChapterID != id {
			keptPrompts = append(keptPrompts, prompt)
		}
	}
	r.prompts = keptPrompts
	keptAudio := r.chapAudio[:0]
	for _, audio := range r.chapAudio {
		if audio.ChapterID != id {
			keptAudio = append(keptAudio, audio)
		}
	}
	r.chapAudio = keptAudio
}

// Page repository methods
func (r *MemoryRepository) CreatePage(ctx context.Context, page *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page.ID == "" {
		page.ID = uuid.New().String()
	}
	page.CreatedAt = time.Now().UTC()
	r.pages[page.ID] = *page
	return nil
}

func (r *MemoryRepository) GetPage(ctx context.Context, id string) (*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &page, nil
}

func (r *MemoryRepository) ListPagesByChapter(ctx context.Context, chapterID string) ([]models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pages []models.Page
	for _, page := range r.pages {
		if page.ChapterID == chapterID {
			pages = append(pages, page)
		}
	}
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })
	return pages, nil
}

func (r *MemoryRepository) UpdatePage(ctx context.Context, page *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.pages[page.ID]
	if !ok {
		return ErrNotFound
	}
	stored.PageNumber = page.PageNumber
	stored.TextContent = page.TextContent
	r.pages[page.ID] = stored
	*page = stored
	return nil
}

func (r *MemoryRepository) DeletePage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[id]; !ok {
		return ErrNotFound
	}
	delete(r.pages, id)
	return nil
}

// Generated content repository methods
func (r *MemoryRepository) CreateImagePrompt(ctx context.Context, prompt *models.ImagePrompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	prompt.CreatedAt = time.Now().UTC()
	r.prompts = append(r.prompts, *prompt)
	return nil
}

func (r *MemoryRepository) ListImagePromptsByChapter(ctx context.Context, chapterID string) ([]models.ImagePrompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prompts []models.ImagePrompt
	for _, prompt := range r.prompts {
		if prompt.ChapterID == chapterID {
			prompts = append(prompts, prompt)
		}
	}
	return prompts, nil
}

func (r *MemoryRepository) SaveBookSummary(ctx context.Context, summary *models.BookSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bookSums[summary.BookID]; ok {
		summary.ID = existing.ID
	} else if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	summary.GeneratedAt = time.Now().UTC()
	r.bookSums[summary.BookID] = *summary
	return nil
}

func (r *MemoryRepository) GetBookSummaryByBook(ctx context.Context, bookID string) (*models.BookSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary, ok := r.bookSums[bookID]
	if !ok {
		return nil, ErrNotFound
	}
	return &summary, nil
}

func (r *MemoryRepository) SaveChapterSummary(ctx context.Context, summary *models.ChapterSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.chapSums[summary.ChapterID]; ok {
		summary.ID = existing.ID
	} else if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	summary.GeneratedAt = time.Now().UTC()
	r.chapSums[summary.ChapterID] = *summary
	return nil
}

func (r *MemoryRepository) GetChapterSummaryByChapter(ctx context.Context, chapterID string) (*models.ChapterSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary, ok := r.chapSums[chapterID]
	if !ok {
		return nil, ErrNotFound
	}
	return &summary, nil
}

func (r *MemoryRepository) CreateChapterAudio(ctx context.Context, audio *models.ChapterAudio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if audio.ID == "" {
		audio.ID = uuid.New().String()
	}
	audio.GeneratedAt = time.Now().UTC()
	r.chapAudio = append(r.chapAudio, *audio)
	return nil
}

func (r *MemoryRepository) ListChapterAudioByChapter(ctx context.Context, chapterID string) ([]models.ChapterAudio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var audios []models.ChapterAudio
	for _, audio := range r.chapAudio {
		if audio.ChapterID == chapterID {
			audios = append(audios, audio)
		}
	}
	return audios, nil
}

// Favorite voice repository methods
func (r *MemoryRepository) CreateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.voices {
		if existing.UserID == voice.UserID && existing.VoiceName == voice.VoiceName {
			return ErrDuplicate
		}
	}

	if voice.ID == "" {
		voice.ID = uuid.New().String()
	}
	voice.CreatedAt = time.Now().UTC()
	r.voices[voice.ID] = *voice
	return nil
}

func (r *MemoryRepository) GetFavoriteVoice(ctx context.Context, id string) (*models.FavoriteVoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	voice, ok := r.voices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &voice, nil
}

func (r *MemoryRepository) ListFavoriteVoicesByUser(ctx context.Context, userID string) ([]models.FavoriteVoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var voices []models.FavoriteVoice
	for _, voice := range r.voices {
		if voice.UserID == userID {
			voices = append(voices, voice)
		}
	}
	sort.SliceStable(voices, func(i, j int) bool { return voices[i].CreatedAt.Before(voices[j].CreatedAt) })
	return voices, nil
}

func (r *MemoryRepository) UpdateFavoriteVoice(ctx context.Context, voice *models.FavoriteVoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.voices[voice.ID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range r.voices {
		if existing.ID != voice.ID && existing.UserID == stored.UserID && existing.VoiceName == voice.VoiceName {
			return ErrDuplicate
		}
	}
	stored.VoiceName = voice.VoiceName
	stored.VoiceID1 = voice.VoiceID1
	stored.VoiceWeight1 = voice.VoiceWeight1
	stored.VoiceID2 = voice.VoiceID2
	stored.VoiceWeight2 = voice.VoiceWeight2
	r.voices[voice.ID] = stored
	*voice = stored
	return nil
}

func (r *MemoryRepository) DeleteFavoriteVoice(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.voices[id]; !ok {
		return ErrNotFound
	}
	delete(r.voices, id)
	return nil
}
