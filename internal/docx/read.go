package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const documentPart = "word/document.xml"

// Load reads a .docx file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// LoadBytes reads a .docx package from memory.
func LoadBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}

	var src []byte
	archive := make([]zipEntry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		if f.Name == documentPart {
			src = b
			archive = append(archive, zipEntry{name: f.Name})
			continue
		}
		archive = append(archive, zipEntry{name: f.Name, data: b})
	}
	if src == nil {
		return nil, errors.New("package has no word/document.xml part")
	}

	doc, err := parseDocument(src)
	if err != nil {
		return nil, err
	}
	doc.archive = archive
	return doc, nil
}

func parseDocument(src []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	doc := &Document{}

	// Advance to the body open tag; everything before it, prolog included,
	// is carried verbatim in the header.
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errors.New("document part has no body element")
			}
			return nil, fmt.Errorf("parse document part: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Space == nsMain && se.Name.Local == "body" {
			break
		}
		if se.Name.Space == nsMain && se.Name.Local == "document" {
			continue
		}
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("parse document part: %w", err)
		}
	}
	doc.header = src[:dec.InputOffset()]

	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsMain && t.Name.Local == "p":
				p, err := parseParagraph(dec, src)
				if err != nil {
					return nil, err
				}
				doc.blocks = append(doc.blocks, p)
			case t.Name.Space == nsMain && t.Name.Local == "tbl":
				tbl, err := parseTable(dec, src)
				if err != nil {
					return nil, err
				}
				doc.blocks = append(doc.blocks, tbl)
			default:
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse body: %w", err)
				}
				doc.blocks = append(doc.blocks, &Raw{bytes: src[pos:dec.InputOffset()]})
			}
		case xml.EndElement:
			doc.tail = src[pos:]
			return doc, nil
		}
	}
}

func parseParagraph(dec *xml.Decoder, src []byte) (*Paragraph, error) {
	p := &Paragraph{}
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsMain && t.Name.Local == "r" {
				r, err := parseRun(dec, src)
				if err != nil {
					return nil, err
				}
				p.children = append(p.children, r)
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parse paragraph: %w", err)
			}
			p.children = append(p.children, &Raw{bytes: src[pos:dec.InputOffset()]})
		case xml.EndElement:
			return p, nil
		}
	}
}

func parseRun(dec *xml.Decoder, src []byte) (*Run, error) {
	r := &Run{}
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse run: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsMain && t.Name.Local == "rPr":
				if err := r.parseProps(dec, src, pos); err != nil {
					return nil, err
				}
			case t.Name.Space == nsMain && t.Name.Local == "t":
				text, err := textContent(dec)
				if err != nil {
					return nil, err
				}
				r.pieces = append(r.pieces, runPiece{
					raw:    src[pos:dec.InputOffset()],
					text:   text,
					isText: true,
				})
			default:
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse run: %w", err)
				}
				r.pieces = append(r.pieces, runPiece{raw: src[pos:dec.InputOffset()]})
			}
		case xml.EndElement:
			return r, nil
		}
	}
}

func (r *Run) parseProps(dec *xml.Decoder, src []byte, start int64) error {
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse run properties: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsMain && t.Name.Local == "b":
				r.bold = onOffVal(t)
			case t.Name.Space == nsMain && t.Name.Local == "sz":
				r.sizeHalf = intVal(t)
			case t.Name.Space == nsMain && t.Name.Local == "szCs":
				r.szCsHalf = intVal(t)
			default:
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("parse run properties: %w", err)
				}
				r.propsExtra = append(r.propsExtra, rprProp{
					name: t.Name.Local,
					raw:  src[pos:dec.InputOffset()],
				})
				continue
			}
			if err := dec.Skip(); err != nil {
				return fmt.Errorf("parse run properties: %w", err)
			}
		case xml.EndElement:
			r.rprRaw = src[start:dec.InputOffset()]
			return nil
		}
	}
}

func textContent(dec *xml.Decoder) (string, error) {
	var b bytes.Buffer
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("parse text: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", fmt.Errorf("parse text: %w", err)
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

func parseTable(dec *xml.Decoder, src []byte) (*Table, error) {
	t := &Table{}
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table: %w", err)
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			if tk.Name.Space == nsMain && tk.Name.Local == "tr" {
				row, err := parseRow(dec, src)
				if err != nil {
					return nil, err
				}
				t.children = append(t.children, row)
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parse table: %w", err)
			}
			t.children = append(t.children, &Raw{bytes: src[pos:dec.InputOffset()]})
		case xml.EndElement:
			return t, nil
		}
	}
}

func parseRow(dec *xml.Decoder, src []byte) (*Row, error) {
	row := &Row{}
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table row: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsMain && t.Name.Local == "tc" {
				cell, err := parseCell(dec, src)
				if err != nil {
					return nil, err
				}
				row.children = append(row.children, cell)
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parse table row: %w", err)
			}
			row.children = append(row.children, &Raw{bytes: src[pos:dec.InputOffset()]})
		case xml.EndElement:
			return row, nil
		}
	}
}

func parseCell(dec *xml.Decoder, src []byte) (*Cell, error) {
	cell := &Cell{}
	for {
		pos := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table cell: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsMain && t.Name.Local == "p" {
				p, err := parseParagraph(dec, src)
				if err != nil {
					return nil, err
				}
				cell.children = append(cell.children, p)
				continue
			}
			// Nested tables and cell properties ride along untouched.
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parse table cell: %w", err)
			}
			cell.children = append(cell.children, &Raw{bytes: src[pos:dec.InputOffset()]})
		case xml.EndElement:
			return cell, nil
		}
	}
}

func onOffVal(se xml.StartElement) bool {
	for _, a := range se.Attr {
		if a.Name.Local != "val" {
			continue
		}
		switch a.Value {
		case "0", "false", "off", "none":
			return false
		}
		return true
	}
	return true
}

func intVal(se xml.StartElement) int {
	for _, a := range se.Attr {
		if a.Name.Local == "val" {
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}
