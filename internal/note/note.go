package note

// Note is the sole entity: a short text record with a title and body.
// The soft-delete flag lives only in storage and is never exposed here;
// the store filters deleted rows out of every read path.
type Note struct {
	// ID is a ULID assigned by the store at insert, immutable afterwards
	ID string `json:"id"`

	// Title is required non-blank at creation
	Title string `json:"title"`

	// Content is the note body; whether it is required at creation is a
	// config policy (require_content)
	Content string `json:"content"`

	// CreatedAt is the Unix timestamp set once at creation
	CreatedAt int64 `json:"created_at"`

	// LastUpdatedAt is the Unix timestamp refreshed on every update;
	// always >= CreatedAt
	LastUpdatedAt int64 `json:"last_updated_at"`
}

// Sort keys accepted in a PageSpec. The default surfaces the most
// recently touched notes first.
const (
	SortLastUpdatedDesc = "last_updated_at_desc"
	SortLastUpdatedAsc  = "last_updated_at_asc"
	SortCreatedDesc     = "created_at_desc"
	SortCreatedAsc      = "created_at_asc"
	SortTitleAsc        = "title_asc"
	SortTitleDesc       = "title_desc"

	DefaultSort = SortLastUpdatedDesc
)

// PageSpec requests a bounded, ordered slice of a larger result set.
// It is passed through to the store verbatim; the store applies size
// bounds and resolves an empty Sort to DefaultSort.
type PageSpec struct {
	// Page is the zero-based page number
	Page int

	// Size is the page size; the store clamps it to its bounds
	Size int

	// Sort is one of the Sort* keys above, or empty for the default
	Sort string
}
