// Package predicate builds the store-level matching rules for fuzzy
// note search. A predicate is an explicit list of tagged clauses rather
// than a sparse example object, so the set of matchable fields is a
// stated rule: only title and content participate; id and timestamps
// never do.
package predicate

import "strings"

// Field names a matchable note field.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
)

// MatchKind names a matching rule.
type MatchKind string

// ContainsFold matches when the stored value contains the clause value,
// compared case-insensitively.
const ContainsFold MatchKind = "contains_fold"

// Clause is a single boolean matching rule over one field.
type Clause struct {
	Field Field
	Kind  MatchKind
	Value string
}

// Build translates a pair of optional search terms into a conjunctive
// clause list. A blank term is dropped entirely: it does not become an
// "equals empty" filter and excludes nothing. Terms are trimmed before
// matching.
func Build(titleTerm, contentTerm string) []Clause {
	clauses := make([]Clause, 0, 2)
	if t := strings.TrimSpace(titleTerm); t != "" {
		clauses = append(clauses, Clause{Field: FieldTitle, Kind: ContainsFold, Value: t})
	}
	if c := strings.TrimSpace(contentTerm); c != "" {
		clauses = append(clauses, Clause{Field: FieldContent, Kind: ContainsFold, Value: c})
	}
	return clauses
}
