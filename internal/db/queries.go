package db

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/predicate"
)

// Page size bounds applied to every paged read.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Insert stores a new note and assigns its id. The id is a fresh ULID,
// generated here exactly once; callers never supply one.
func Insert(db *sql.DB, n *note.Note) error {
	id, err := generateULID()
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO notes (id, title, content, created_at, last_updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, 0)
	`

	if _, err := db.Exec(query, id, n.Title, n.Content, n.CreatedAt, n.LastUpdatedAt); err != nil {
		return errors.NewInternal(err)
	}

	n.ID = id
	return nil
}

// GetByID retrieves a note by id. Soft-deleted notes are invisible here,
// as on every read path.
func GetByID(db *sql.DB, id string) (*note.Note, error) {
	query := `
		SELECT id, title, content, created_at, last_updated_at
		FROM notes
		WHERE id = ? AND is_deleted = 0
	`

	row := db.QueryRow(query, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return n, nil
}

// FindPage retrieves a page of notes plus the total count of visible
// notes. Without an explicit sort the page is ordered by last_updated_at
// descending; ties fall back to store-natural order.
func FindPage(db *sql.DB, page note.PageSpec) ([]note.Note, int, error) {
	return findWhere(db, "", nil, page)
}

// FindByPredicate retrieves a page of notes matching every clause, plus
// the total count of matches. The is_deleted filter is applied here like
// everywhere else; the predicate never has to express it.
func FindByPredicate(db *sql.DB, clauses []predicate.Clause, page note.PageSpec) ([]note.Note, int, error) {
	conds := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses))
	for _, c := range clauses {
		cond, err := clauseSQL(c)
		if err != nil {
			return nil, 0, err
		}
		conds = append(conds, cond)
		args = append(args, c.Value)
	}

	return findWhere(db, strings.Join(conds, " AND "), args, page)
}

// Save updates a note in place, keyed by id. Only title, content, and
// last_updated_at are written; id and created_at never change.
func Save(db *sql.DB, n *note.Note) error {
	query := `
		UPDATE notes
		SET title = ?, content = ?, last_updated_at = ?
		WHERE id = ? AND is_deleted = 0
	`

	result, err := db.Exec(query, n.Title, n.Content, n.LastUpdatedAt, n.ID)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(n.ID)
	}

	return nil
}

// SoftDelete marks a note as deleted. The row stays in storage and is
// excluded from all reads from now on. Deleting a missing or
// already-deleted id is a no-op, not an error.
func SoftDelete(db *sql.DB, id string) error {
	query := `
		UPDATE notes
		SET is_deleted = 1
		WHERE id = ? AND is_deleted = 0
	`

	if _, err := db.Exec(query, id); err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// findWhere runs the shared count + page query pair. where is an extra
// condition AND-ed onto the implicit is_deleted filter, or empty.
func findWhere(db *sql.DB, where string, args []any, page note.PageSpec) ([]note.Note, int, error) {
	order, err := orderClause(page.Sort)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageBounds(page)

	cond := "is_deleted = 0"
	if where != "" {
		cond += " AND " + where
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM notes WHERE " + cond
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, title, content, created_at, last_updated_at
		FROM notes
		WHERE ` + cond + `
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	notes := make([]note.Note, 0, limit)
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.LastUpdatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return notes, total, nil
}

// clauseSQL translates one predicate clause into a SQL condition with a
// single placeholder. Only title and content are matchable; any other
// field is rejected so id/timestamp exclusion stays an explicit rule.
func clauseSQL(c predicate.Clause) (string, error) {
	var column string
	switch c.Field {
	case predicate.FieldTitle:
		column = "title"
	case predicate.FieldContent:
		column = "content"
	default:
		return "", errors.NewValidation(fmt.Sprintf("field %q is not matchable", c.Field))
	}

	switch c.Kind {
	case predicate.ContainsFold:
		// instr over lowered operands is a literal substring test; no
		// LIKE wildcards to escape
		return fmt.Sprintf("instr(lower(%s), lower(?)) > 0", column), nil
	default:
		return "", errors.NewValidation(fmt.Sprintf("unknown match kind %q", c.Kind))
	}
}

// orderClause resolves a PageSpec sort key to an ORDER BY expression.
// Ties deliberately have no secondary key: equal timestamps fall back to
// store-natural order.
func orderClause(sort string) (string, error) {
	if sort == "" {
		sort = note.DefaultSort
	}

	switch sort {
	case note.SortLastUpdatedDesc:
		return "last_updated_at DESC", nil
	case note.SortLastUpdatedAsc:
		return "last_updated_at ASC", nil
	case note.SortCreatedDesc:
		return "created_at DESC", nil
	case note.SortCreatedAsc:
		return "created_at ASC", nil
	case note.SortTitleAsc:
		return "title ASC", nil
	case note.SortTitleDesc:
		return "title DESC", nil
	default:
		return "", errors.NewValidation(fmt.Sprintf("unknown sort key %q", sort))
	}
}

// pageBounds converts a PageSpec to LIMIT/OFFSET with defaults applied.
func pageBounds(page note.PageSpec) (limit, offset int) {
	size := page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	number := max(page.Page, 0)

	return size, number * size
}

// scanNote scans a single row into a Note struct.
func scanNote(row *sql.Row) (*note.Note, error) {
	var n note.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.LastUpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
