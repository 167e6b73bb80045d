// Package placeholder builds the marker map for an invoice record and
// substitutes it into a loaded document template.
package placeholder

import (
	"strings"

	"github.com/smallbiznis/invoicesmith/internal/docx"
	"github.com/smallbiznis/invoicesmith/internal/record"
)

// Entry is one marker token and its display value. The schema is an
// ordered slice rather than a map so later tokens operate on the already
// substituted text of a run, deterministically.
type Entry struct {
	Token string
	Value string
}

// FontSize is the size, in half-points, applied to any run a substitution
// touched (12pt).
const FontSize = 24

// Build returns the fixed twelve-entry marker schema for rec.
//
// This function is pure: no side effects, fully deterministic.
func Build(rec record.Record) []Entry {
	return []Entry{
		{"[IVN]", rec.InvoiceNo},
		{"[DAT]", rec.InvoiceDate.Display()},
		{"[IDD]", rec.DueDate.Display()},
		{"[NAME]", rec.Name},
		{"[STORENAME]", rec.StoreName},
		{"[ADDRESS]", rec.Address},
		{"[PHN]", rec.Phone},
		{"[EMAIL]", rec.Email},
		{"[SERVICE]", rec.Service},
		{"[COST]", rec.Cost},
		{"[GT]", rec.GST},
		{"MRP", rec.Total},
	}
}

// Apply replaces every token occurrence across the document's top-level
// paragraph runs first, then every table cell run, and styles each touched
// run bold at the fixed size. The document is mutated in place. Tokens
// absent from the template are a silent no-op. Returns the number of runs
// rewritten.
func Apply(doc *docx.Document, entries []Entry) int {
	touched := 0
	for _, p := range doc.Paragraphs() {
		touched += applyToParagraph(p, entries)
	}
	for _, t := range doc.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					touched += applyToParagraph(p, entries)
				}
			}
		}
	}
	return touched
}

func applyToParagraph(p *docx.Paragraph, entries []Entry) int {
	touched := 0
	for _, r := range p.Runs() {
		text := r.Text()
		replaced := false
		for _, e := range entries {
			next, n := replaceToken(text, e.Token, e.Value)
			if n > 0 {
				text = next
				replaced = true
			}
		}
		if !replaced {
			continue
		}
		r.SetText(text)
		r.SetBold(true)
		r.SetSize(FontSize)
		touched++
	}
	return touched
}

// replaceToken replaces whole-token occurrences of token in s,
// left to right, without rescanning substituted values. A match whose
// alphanumeric token edge touches an adjacent alphanumeric byte is
// rejected, so a bare token cannot fire inside a longer word; bracketed
// tokens are self-delimiting and unaffected.
func replaceToken(s, token, value string) (string, int) {
	if token == "" || !strings.Contains(s, token) {
		return s, 0
	}

	var b strings.Builder
	count := 0
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], token)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		start := i + j
		end := start + len(token)
		if !boundaryOK(s, start, end, token) {
			b.WriteString(s[i : start+1])
			i = start + 1
			continue
		}
		b.WriteString(s[i:start])
		b.WriteString(value)
		count++
		i = end
	}
	if count == 0 {
		return s, 0
	}
	return b.String(), count
}

func boundaryOK(s string, start, end int, token string) bool {
	if isWordByte(token[0]) && start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if isWordByte(token[len(token)-1]) && end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
