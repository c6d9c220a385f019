// Package notes owns the note lifecycle: creation timestamps, partial
// update merge rules, soft-delete semantics, and search composition.
// All mutable state lives in the store; the service itself is stateless
// and safe for concurrent use.
package notes

import (
	"database/sql"
	"strings"
	"time"

	"github.com/VdBondarev/notes-management-app-backend/internal/config"
	"github.com/VdBondarev/notes-management-app-backend/internal/db"
	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/predicate"
)

// Clock supplies the current time. Production code uses time.Now; tests
// substitute a fixed or stepping clock so timestamps are deterministic.
type Clock func() time.Time

// Service implements the note lifecycle operations over the store.
type Service struct {
	db    *sql.DB
	cfg   *config.Config
	clock Clock
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService creates a Service backed by the given database and config.
func NewService(database *sql.DB, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		db:    database,
		cfg:   cfg,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pagination contains pagination metadata for paged operations.
type Pagination struct {
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create validates input, stamps both timestamps from the clock, and
// persists exactly one new row. The store assigns the id.
func (s *Service) Create(input CreateInput) (*note.Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.NewValidation("title must not be blank")
	}
	if s.cfg.RequireContent && strings.TrimSpace(input.Content) == "" {
		return nil, errors.NewValidation("content must not be blank")
	}

	now := s.clock().Unix()
	n := &note.Note{
		Title:         input.Title,
		Content:       input.Content,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := db.Insert(s.db, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Get retrieves a single note by id. Absent and soft-deleted ids are
// indistinguishable: both fail with not found.
func (s *Service) Get(id string) (*note.Note, error) {
	return db.GetByID(s.db, id)
}

// ListOutput contains the result of the List and Search operations.
type ListOutput struct {
	Items      []note.Note `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Sort       string      `json:"sort"`
}

// List returns a page of notes, most recently touched first unless the
// caller's PageSpec says otherwise.
func (s *Service) List(page note.PageSpec) (*ListOutput, error) {
	items, total, err := db.FindPage(s.db, page)
	if err != nil {
		return nil, err
	}
	return buildListOutput(items, total, page), nil
}

// UpdateInput contains parameters for the Update operation. A nil or
// blank patch field leaves the stored field unchanged.
type UpdateInput struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Update merges the supplied patch fields into the stored note. At least
// one field must carry a value; last_updated_at is refreshed regardless
// of which fields changed. Concurrent updates on the same id race at
// store granularity: last save wins.
func (s *Service) Update(input UpdateInput) (*note.Note, error) {
	title := patchValue(input.Title)
	content := patchValue(input.Content)

	if title == nil && content == nil {
		return nil, errors.NewValidation("both title and content cannot be empty")
	}

	n, err := db.GetByID(s.db, input.ID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		n.Title = *title
	}
	if content != nil {
		n.Content = *content
	}
	n.LastUpdatedAt = s.clock().Unix()

	if err := db.Save(s.db, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Delete soft-deletes a note. Idempotent: deleting an already-deleted or
// nonexistent id is not an error. Callers wanting a hard guarantee call
// Get first.
func (s *Service) Delete(id string) error {
	return db.SoftDelete(s.db, id)
}

// SearchInput contains parameters for the Search operation. A blank term
// means "do not filter by this field".
type SearchInput struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Page    note.PageSpec `json:"-"`
}

// Search returns notes whose fields contain the supplied terms,
// case-insensitively. Both terms present means both must match.
func (s *Service) Search(input SearchInput) (*ListOutput, error) {
	clauses := predicate.Build(input.Title, input.Content)
	if len(clauses) == 0 {
		return nil, errors.NewValidation("search requires at least one non-blank term")
	}

	items, total, err := db.FindByPredicate(s.db, clauses, input.Page)
	if err != nil {
		return nil, err
	}
	return buildListOutput(items, total, input.Page), nil
}

// patchValue treats nil and blank patch fields the same: both mean
// "leave the stored value alone".
func patchValue(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}

// buildListOutput assembles a page result with resolved pagination
// metadata.
func buildListOutput(items []note.Note, total int, page note.PageSpec) *ListOutput {
	if items == nil {
		items = []note.Note{}
	}

	size := page.Size
	if size <= 0 {
		size = db.DefaultPageSize
	}
	if size > db.MaxPageSize {
		size = db.MaxPageSize
	}
	number := max(page.Page, 0)

	sort := page.Sort
	if sort == "" {
		sort = note.DefaultSort
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Page:    number,
			Size:    size,
			HasMore: number*size+len(items) < total,
			Total:   total,
		},
		Sort: sort,
	}
}
