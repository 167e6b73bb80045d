// Package record defines the invoice record flowing from either source
// adapter into the materialization engine.
package record

import "fmt"

// Missing is the sentinel carried by any field without a real value. No
// field is ever omitted from substitution.
const Missing = "N/A"

// InvoiceType selects the template and the filename prefix.
type InvoiceType string

const (
	TypeInvoice  InvoiceType = "invoice"
	TypeProforma InvoiceType = "proforma_invoice"
)

// ParseType maps a submitted invoice_type value; anything unrecognized
// falls back to a plain invoice.
func ParseType(s string) InvoiceType {
	if s == string(TypeProforma) {
		return TypeProforma
	}
	return TypeInvoice
}

// Prefix returns the filename prefix for the type.
func (t InvoiceType) Prefix() string {
	if t == TypeProforma {
		return "PROFORMA_INVOICE"
	}
	return "INVOICE"
}

// TemplateFile returns the template file name for the type.
func (t InvoiceType) TemplateFile() string {
	if t == TypeProforma {
		return "PROFORMA_INVOICE.docx"
	}
	return "INVOICE.docx"
}

// Record is the canonical named-field invoice entity. It is immutable
// after creation; the ledger augments its own copy with an identifier and
// timestamp on persistence.
type Record struct {
	Type        InvoiceType
	InvoiceNo   string
	InvoiceDate Date
	DueDate     Date
	Name        string
	StoreName   string
	Address     string
	Phone       string
	Email       string
	Service     string
	Cost        string
	GST         string
	Total       string
}

// rowWidth is the strict positional column contract of the batch
// spreadsheet: invoice_no, invoice_date, due_date, name, store_name,
// address, phone, email, service, cost, gst, total. Reordered columns
// silently swap fields; there is deliberately no validation here.
const rowWidth = 12

// FromRow unpacks one header-less spreadsheet row positionally. Rows
// narrower than the contract fail; extra trailing cells are ignored.
func FromRow(cells []string) (Record, error) {
	if len(cells) < rowWidth {
		return Record{}, fmt.Errorf("row has %d cells, want %d", len(cells), rowWidth)
	}
	return Record{
		Type:        TypeInvoice,
		InvoiceNo:   orMissing(cells[0]),
		InvoiceDate: ParseDate(orMissing(cells[1])),
		DueDate:     ParseDate(orMissing(cells[2])),
		Name:        orMissing(cells[3]),
		StoreName:   orMissing(cells[4]),
		Address:     orMissing(cells[5]),
		Phone:       orMissing(cells[6]),
		Email:       orMissing(cells[7]),
		Service:     orMissing(cells[8]),
		Cost:        orMissing(cells[9]),
		GST:         orMissing(cells[10]),
		Total:       orMissing(cells[11]),
	}, nil
}

// FromForm builds a record from submitted form values. Missing or empty
// keys default to the N/A sentinel; form dates stay free-form.
func FromForm(form map[string]string) Record {
	get := func(key string) string {
		return orMissing(form[key])
	}
	return Record{
		Type:        ParseType(form["invoice_type"]),
		InvoiceNo:   get("invoice_no"),
		InvoiceDate: RawDate(get("invoice_date")),
		DueDate:     RawDate(get("due_date")),
		Name:        get("name"),
		StoreName:   get("store_name"),
		Address:     get("address"),
		Phone:       get("phone"),
		Email:       get("email"),
		Service:     get("service"),
		Cost:        get("cost"),
		GST:         get("gst"),
		Total:       get("total"),
	}
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}
