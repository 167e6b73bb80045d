package materialize

import (
	"fmt"

	"github.com/smallbiznis/invoicesmith/internal/record"
)

// Filename derives the deterministic output name for a record:
// {PREFIX}_{service}_{store}_{date}.docx. Service and store names are used
// as-is; only the date is normalized.
func Filename(rec record.Record) string {
	return fmt.Sprintf("%s_%s_%s_%s.docx",
		rec.Type.Prefix(),
		rec.Service,
		rec.StoreName,
		rec.InvoiceDate.FileStamp(),
	)
}
