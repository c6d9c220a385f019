package db

import (
	"database/sql"
	"testing"

	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/predicate"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// insertNote inserts a note with the given fields and returns its id.
func insertNote(t *testing.T, database *sql.DB, title, content string, ts int64) string {
	t.Helper()
	n := &note.Note{
		Title:         title,
		Content:       content,
		CreatedAt:     ts,
		LastUpdatedAt: ts,
	}
	if err := Insert(database, n); err != nil {
		t.Fatalf("Insert %q: %v", title, err)
	}
	return n.ID
}

// countAllRows counts rows including soft-deleted ones.
func countAllRows(t *testing.T, database *sql.DB) int {
	t.Helper()
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestInsert_AssignsID(t *testing.T) {
	database := setupDB(t)

	n := &note.Note{Title: "First", Content: "body", CreatedAt: 1000, LastUpdatedAt: 1000}
	if err := Insert(database, n); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if len(n.ID) != 26 {
		t.Errorf("ID = %q, want a 26-char ULID", n.ID)
	}

	other := &note.Note{Title: "Second", CreatedAt: 1000, LastUpdatedAt: 1000}
	if err := Insert(database, other); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if other.ID == n.ID {
		t.Error("two inserts produced the same id")
	}
}

func TestGetByID_Roundtrip(t *testing.T) {
	database := setupDB(t)
	id := insertNote(t, database, "Grocery List", "eggs and flour", 1000)

	n, err := GetByID(database, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if n.Title != "Grocery List" || n.Content != "eggs and flour" {
		t.Errorf("got %+v", n)
	}
	if n.CreatedAt != 1000 || n.LastUpdatedAt != 1000 {
		t.Errorf("timestamps = (%d, %d), want (1000, 1000)", n.CreatedAt, n.LastUpdatedAt)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := setupDB(t)

	_, err := GetByID(database, "01MISSING")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestSave_UpdatesInPlace(t *testing.T) {
	database := setupDB(t)
	id := insertNote(t, database, "Old title", "Old content", 1000)

	n, err := GetByID(database, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	n.Title = "New title"
	n.LastUpdatedAt = 2000

	if err := Save(database, n); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := GetByID(database, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New title" || got.Content != "Old content" {
		t.Errorf("got %+v", got)
	}
	if got.LastUpdatedAt != 2000 {
		t.Errorf("LastUpdatedAt = %d, want 2000", got.LastUpdatedAt)
	}
	if got.CreatedAt != 1000 {
		t.Errorf("CreatedAt = %d, want unchanged 1000", got.CreatedAt)
	}
}

func TestSave_NotFound(t *testing.T) {
	database := setupDB(t)

	err := Save(database, &note.Note{ID: "01MISSING", Title: "X"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestSoftDelete_HidesButKeepsRow(t *testing.T) {
	database := setupDB(t)
	id := insertNote(t, database, "Doomed", "", 1000)

	if err := SoftDelete(database, id); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Invisible to reads
	if _, err := GetByID(database, id); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want NOT_FOUND", err)
	}
	items, total, err := FindPage(database, note.PageSpec{})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("FindPage after delete = %d items (total %d), want 0", len(items), total)
	}

	// The physical row still exists
	if got := countAllRows(t, database); got != 1 {
		t.Errorf("raw row count = %d, want 1", got)
	}
}

func TestSoftDelete_Idempotent(t *testing.T) {
	database := setupDB(t)
	id := insertNote(t, database, "Doomed", "", 1000)

	if err := SoftDelete(database, id); err != nil {
		t.Fatalf("first SoftDelete failed: %v", err)
	}
	if err := SoftDelete(database, id); err != nil {
		t.Errorf("second SoftDelete = %v, want nil", err)
	}
	if err := SoftDelete(database, "01MISSING"); err != nil {
		t.Errorf("SoftDelete on missing id = %v, want nil", err)
	}
}

func TestSave_OnDeletedBehavesAsNotFound(t *testing.T) {
	database := setupDB(t)
	id := insertNote(t, database, "Doomed", "", 1000)

	if err := SoftDelete(database, id); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	err := Save(database, &note.Note{ID: id, Title: "Back from the dead"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Save on deleted note = %v, want NOT_FOUND", err)
	}
}

func TestFindPage_DefaultOrder(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "oldest", "", 1000)
	insertNote(t, database, "newest", "", 3000)
	insertNote(t, database, "middle", "", 2000)

	items, total, err := FindPage(database, note.PageSpec{})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	want := []string{"newest", "middle", "oldest"}
	for i, w := range want {
		if items[i].Title != w {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, w)
		}
	}
}

func TestFindPage_SortKeys(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "banana", "", 1000)
	insertNote(t, database, "apple", "", 2000)

	items, _, err := FindPage(database, note.PageSpec{Sort: note.SortTitleAsc})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if items[0].Title != "apple" || items[1].Title != "banana" {
		t.Errorf("title_asc order = [%q, %q]", items[0].Title, items[1].Title)
	}

	items, _, err = FindPage(database, note.PageSpec{Sort: note.SortCreatedAsc})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if items[0].Title != "banana" {
		t.Errorf("created_at_asc first = %q, want banana", items[0].Title)
	}
}

func TestFindPage_UnknownSort(t *testing.T) {
	database := setupDB(t)

	_, _, err := FindPage(database, note.PageSpec{Sort: "bogus"})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestFindPage_Bounds(t *testing.T) {
	database := setupDB(t)
	for i := range 5 {
		insertNote(t, database, "note", "", int64(1000+i))
	}

	// Page size applies, second page picks up the rest
	items, total, err := FindPage(database, note.PageSpec{Page: 0, Size: 3})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if total != 5 || len(items) != 3 {
		t.Errorf("page 0: %d items (total %d), want 3 (5)", len(items), total)
	}

	items, _, err = FindPage(database, note.PageSpec{Page: 1, Size: 3})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("page 1: %d items, want 2", len(items))
	}

	// Negative page and zero size fall back to defaults
	items, _, err = FindPage(database, note.PageSpec{Page: -1, Size: 0})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("defaulted page: %d items, want 5", len(items))
	}
}

func TestFindByPredicate_CaseInsensitiveSubstring(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "Grocery List", "", 1000)
	insertNote(t, database, "Grocery Plan", "buy milk", 2000)
	insertNote(t, database, "Work Journal", "standup notes", 3000)

	items, total, err := FindByPredicate(database, predicate.Build("groc", ""), note.PageSpec{})
	if err != nil {
		t.Fatalf("FindByPredicate failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("groc: %d items (total %d), want 2", len(items), total)
	}
}

func TestFindByPredicate_Conjunctive(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "Grocery List", "", 1000)
	insertNote(t, database, "Grocery Plan", "buy milk", 2000)

	items, total, err := FindByPredicate(database, predicate.Build("groc", "MILK"), note.PageSpec{})
	if err != nil {
		t.Fatalf("FindByPredicate failed: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("groc+milk: %d items (total %d), want 1", len(items), total)
	}
	if items[0].Title != "Grocery Plan" {
		t.Errorf("matched %q, want Grocery Plan", items[0].Title)
	}
}

func TestFindByPredicate_ExcludesDeleted(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "Grocery List", "", 1000)
	id := insertNote(t, database, "Grocery Plan", "buy milk", 2000)

	if err := SoftDelete(database, id); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	items, total, err := FindByPredicate(database, predicate.Build("groc", ""), note.PageSpec{})
	if err != nil {
		t.Fatalf("FindByPredicate failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "Grocery List" {
		t.Errorf("got %d items (total %d), want only Grocery List", len(items), total)
	}
}

// Terms containing SQL LIKE wildcards match literally; instr has no
// metacharacters.
func TestFindByPredicate_LiteralWildcards(t *testing.T) {
	database := setupDB(t)
	insertNote(t, database, "Discounts", "50% off everything", 1000)
	insertNote(t, database, "Inventory", "500 units", 2000)

	items, total, err := FindByPredicate(database, predicate.Build("", "0%"), note.PageSpec{})
	if err != nil {
		t.Fatalf("FindByPredicate failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "Discounts" {
		t.Errorf("got %d items (total %d), want only Discounts", len(items), total)
	}
}

func TestFindByPredicate_RejectsUnknownField(t *testing.T) {
	database := setupDB(t)

	clauses := []predicate.Clause{{Field: "id", Kind: predicate.ContainsFold, Value: "01"}}
	_, _, err := FindByPredicate(database, clauses, note.PageSpec{})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR for unmatchable field", err)
	}

	clauses = []predicate.Clause{{Field: predicate.FieldTitle, Kind: "equals", Value: "x"}}
	_, _, err = FindByPredicate(database, clauses, note.PageSpec{})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("err = %v, want VALIDATION_ERROR for unknown match kind", err)
	}
}
