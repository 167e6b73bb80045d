package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const builtHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:document xmlns:w="` + nsMain + `"><w:body>`

const builtTail = `</w:body></w:document>`

const contentTypesPart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsPart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// Save writes the document to path as a .docx package.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes the document package to w. Loaded documents keep every
// part other than word/document.xml byte-for-byte; built documents get a
// minimal package skeleton.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	if d.archive == nil {
		parts := []zipEntry{
			{name: "[Content_Types].xml", data: []byte(contentTypesPart)},
			{name: "_rels/.rels", data: []byte(relsPart)},
			{name: documentPart, data: d.documentXML()},
		}
		for _, p := range parts {
			fw, err := zw.Create(p.name)
			if err != nil {
				return err
			}
			if _, err := fw.Write(p.data); err != nil {
				return err
			}
		}
		return zw.Close()
	}

	for _, e := range d.archive {
		fw, err := zw.Create(e.name)
		if err != nil {
			return err
		}
		data := e.data
		if e.name == documentPart {
			data = d.documentXML()
		}
		if _, err := fw.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	if len(d.header) > 0 {
		buf.Write(d.header)
	} else {
		buf.WriteString(builtHeader)
	}
	for _, b := range d.blocks {
		writeBlock(&buf, b)
	}
	if len(d.tail) > 0 {
		buf.Write(d.tail)
	} else {
		buf.WriteString(builtTail)
	}
	return buf.Bytes()
}

func writeBlock(buf *bytes.Buffer, b Block) {
	switch v := b.(type) {
	case *Paragraph:
		writeParagraph(buf, v)
	case *Table:
		writeTable(buf, v)
	case *Raw:
		buf.Write(v.bytes)
	}
}

func writeParagraph(buf *bytes.Buffer, p *Paragraph) {
	buf.WriteString("<w:p>")
	for _, c := range p.children {
		switch v := c.(type) {
		case *Run:
			writeRun(buf, v)
		case *Raw:
			buf.Write(v.bytes)
		}
	}
	buf.WriteString("</w:p>")
}

// rprChildRank is the CT_RPr child sequence. Rewritten runs interleave
// b and sz/szCs with the preserved properties at their schema positions;
// elements not listed sort after szCs.
var rprChildRank = map[string]int{
	"rStyle": 0, "rFonts": 1, "b": 2, "bCs": 3, "i": 4, "iCs": 5,
	"caps": 6, "smallCaps": 7, "strike": 8, "dstrike": 9, "outline": 10,
	"shadow": 11, "emboss": 12, "imprint": 13, "noProof": 14,
	"snapToGrid": 15, "vanish": 16, "webHidden": 17, "color": 18,
	"spacing": 19, "w": 20, "kern": 21, "position": 22, "sz": 23,
	"szCs": 24, "highlight": 25, "u": 26, "effect": 27, "bdr": 28,
	"shd": 29, "fitText": 30, "vertAlign": 31, "rtl": 32, "cs": 33,
	"em": 34, "lang": 35, "eastAsianLayout": 36, "specVanish": 37,
	"oMath": 38,
}

const (
	rankBold = 2
	rankSz   = 23
	rankSzCs = 24
)

func rprRank(name string) int {
	if rank, ok := rprChildRank[name]; ok {
		return rank
	}
	return len(rprChildRank)
}

func writeRunProps(buf *bytes.Buffer, r *Run) {
	buf.WriteString("<w:rPr>")
	for _, p := range r.propsExtra {
		if rprRank(p.name) < rankBold {
			buf.Write(p.raw)
		}
	}
	if r.bold {
		buf.WriteString("<w:b/>")
	}
	for _, p := range r.propsExtra {
		if rank := rprRank(p.name); rank > rankBold && rank < rankSz {
			buf.Write(p.raw)
		}
	}
	if r.sizeHalf > 0 {
		fmt.Fprintf(buf, `<w:sz w:val="%d"/>`, r.sizeHalf)
	}
	if r.szCsHalf > 0 {
		fmt.Fprintf(buf, `<w:szCs w:val="%d"/>`, r.szCsHalf)
	}
	for _, p := range r.propsExtra {
		if rprRank(p.name) > rankSzCs {
			buf.Write(p.raw)
		}
	}
	buf.WriteString("</w:rPr>")
}

func writeRun(buf *bytes.Buffer, r *Run) {
	buf.WriteString("<w:r>")
	if r.styleDirty {
		writeRunProps(buf, r)
	} else if len(r.rprRaw) > 0 {
		buf.Write(r.rprRaw)
	}
	if r.textDirty {
		buf.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(buf, []byte(r.Text()))
		buf.WriteString("</w:t>")
	} else {
		for _, p := range r.pieces {
			buf.Write(p.raw)
		}
	}
	buf.WriteString("</w:r>")
}

func writeTable(buf *bytes.Buffer, t *Table) {
	buf.WriteString("<w:tbl>")
	for _, c := range t.children {
		switch v := c.(type) {
		case *Row:
			writeRow(buf, v)
		case *Raw:
			buf.Write(v.bytes)
		}
	}
	buf.WriteString("</w:tbl>")
}

func writeRow(buf *bytes.Buffer, row *Row) {
	buf.WriteString("<w:tr>")
	for _, c := range row.children {
		switch v := c.(type) {
		case *Cell:
			writeCell(buf, v)
		case *Raw:
			buf.Write(v.bytes)
		}
	}
	buf.WriteString("</w:tr>")
}

func writeCell(buf *bytes.Buffer, cell *Cell) {
	buf.WriteString("<w:tc>")
	for _, c := range cell.children {
		switch v := c.(type) {
		case *Paragraph:
			writeParagraph(buf, v)
		case *Raw:
			buf.Write(v.bytes)
		}
	}
	buf.WriteString("</w:tc>")
}
