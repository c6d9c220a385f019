package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
)

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes an error response, mapping the service error kinds
// to their HTTP status. Anything untyped counts as internal.
func renderError(w http.ResponseWriter, err error) {
	var sErr *errors.ServiceError
	if !stderrors.As(err, &sErr) {
		sErr = errors.NewInternal(err)
	}

	renderJSON(w, sErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(sErr.Code),
			"message": sErr.Message,
			"status":  sErr.Status,
		},
	})
}

// renderMarkdown converts markdown text to HTML using goldmark.
// Conversion failure falls back to the escaped source text.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderPreviewPage writes a minimal HTML page wrapping a rendered note
// body. The title is escaped; the body comes from goldmark, which emits
// escaped HTML for raw input by default.
func renderPreviewPage(w http.ResponseWriter, title string, body template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body>\n<h1>%s</h1>\n%s</body></html>\n",
		template.HTMLEscapeString(title), template.HTMLEscapeString(title), body)
}
