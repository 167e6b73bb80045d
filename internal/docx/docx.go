// Package docx models the text-bearing subset of a WordprocessingML
// document: top-level paragraphs and tables, their runs, and the run
// properties the substitution engine rewrites. Markup the model does not
// interpret survives load/save byte-for-byte.
package docx

import "strings"

const nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Document is a loaded or built .docx file.
type Document struct {
	blocks []Block

	// header and tail hold the raw document part up to and including the
	// body open tag, and from the body close tag to EOF. Empty for built
	// documents until serialization.
	header []byte
	tail   []byte

	// archive preserves every package part other than the document part,
	// in original order. Nil for documents built in memory.
	archive []zipEntry
}

type zipEntry struct {
	name string
	data []byte
}

// Block is a top-level body child: *Paragraph, *Table or *Raw.
type Block interface{ isBlock() }

// Raw is a span of source markup carried verbatim.
type Raw struct {
	bytes []byte
}

func (*Raw) isBlock() {}

// Paragraph holds runs interleaved with uninterpreted markup (pPr,
// bookmarks, hyperlinks).
type Paragraph struct {
	children []interface{} // *Run or *Raw
}

func (*Paragraph) isBlock() {}

// Runs returns the paragraph's direct runs in document order.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.children {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Text returns the concatenated text of the paragraph's runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// AddRun appends a run with the given text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{textDirty: true}
	r.pieces = append(r.pieces, runPiece{text: text, isText: true})
	p.children = append(p.children, r)
	return r
}

// rprProp is one uninterpreted rPr child, kept with its element name so
// serialization can place b/sz/szCs among the preserved properties in
// schema order.
type rprProp struct {
	name string
	raw  []byte
}

// Run is the smallest unit of styled text.
type Run struct {
	rprRaw     []byte    // original <w:rPr> element, kept verbatim while clean
	propsExtra []rprProp // rPr children minus b/sz/szCs
	bold       bool
	sizeHalf   int // half-points
	szCsHalf   int

	pieces     []runPiece
	textDirty  bool
	styleDirty bool
}

type runPiece struct {
	raw    []byte
	text   string
	isText bool
}

// Text returns the run's text content.
func (r *Run) Text() string {
	var b strings.Builder
	for _, p := range r.pieces {
		if p.isText {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

// SetText replaces the run's content with a single text span. Non-text
// content (tabs, breaks, drawings) is dropped, matching wholesale
// replacement semantics.
func (r *Run) SetText(text string) {
	r.pieces = []runPiece{{text: text, isText: true}}
	r.textDirty = true
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool { return r.bold }

// SetBold marks the run bold (or not).
func (r *Run) SetBold(bold bool) {
	r.bold = bold
	r.styleDirty = true
}

// Size returns the run's font size in half-points, 0 when unset.
func (r *Run) Size() int { return r.sizeHalf }

// SetSize sets the run's font size in half-points.
func (r *Run) SetSize(halfPoints int) {
	r.sizeHalf = halfPoints
	r.szCsHalf = halfPoints
	r.styleDirty = true
}

// Table is a top-level table; nested tables inside cells are carried as
// raw markup and not visited.
type Table struct {
	children []interface{} // *Row or *Raw
}

func (*Table) isBlock() {}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, c := range t.children {
		if r, ok := c.(*Row); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// AddRow appends an empty row.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.children = append(t.children, r)
	return r
}

// Row is a table row.
type Row struct {
	children []interface{} // *Cell or *Raw
}

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, c := range r.children {
		if cell, ok := c.(*Cell); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// AddCell appends an empty cell.
func (r *Row) AddCell() *Cell {
	c := &Cell{}
	r.children = append(r.children, c)
	return c
}

// Cell is a table cell holding paragraphs.
type Cell struct {
	children []interface{} // *Paragraph or *Raw
}

// Paragraphs returns the cell's direct paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	var ps []*Paragraph
	for _, ch := range c.children {
		if p, ok := ch.(*Paragraph); ok {
			ps = append(ps, p)
		}
	}
	return ps
}

// AddParagraph appends a paragraph with a single run holding text.
func (c *Cell) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	p.AddRun(text)
	c.children = append(c.children, p)
	return p
}

// New returns an empty document built in memory.
func New() *Document {
	return &Document{}
}

// Paragraphs returns the document's top-level paragraphs.
func (d *Document) Paragraphs() []*Paragraph {
	var ps []*Paragraph
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok {
			ps = append(ps, p)
		}
	}
	return ps
}

// Tables returns the document's top-level tables.
func (d *Document) Tables() []*Table {
	var ts []*Table
	for _, b := range d.blocks {
		if t, ok := b.(*Table); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// AddParagraph appends a paragraph with a single run holding text.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	p.AddRun(text)
	d.blocks = append(d.blocks, p)
	return p
}

// AddTable appends an empty table.
func (d *Document) AddTable() *Table {
	t := &Table{}
	d.blocks = append(d.blocks, t)
	return t
}

// PlainText flattens the document's visible text, one line per paragraph,
// top-level paragraphs first, then table cells in row order.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, p := range d.Paragraphs() {
		b.WriteString(p.Text())
		b.WriteByte('\n')
	}
	for _, t := range d.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					b.WriteString(p.Text())
					b.WriteByte('\n')
				}
			}
		}
	}
	return b.String()
}
