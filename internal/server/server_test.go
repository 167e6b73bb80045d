package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicesmith/internal/config"
	"github.com/smallbiznis/invoicesmith/internal/docx"
	ledgerdomain "github.com/smallbiznis/invoicesmith/internal/ledger/domain"
	"github.com/smallbiznis/invoicesmith/internal/materialize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedgerService struct {
	appendCalls int
	lastReq     ledgerdomain.AppendRequest
	err         error
}

func (f *fakeLedgerService) Append(ctx context.Context, req ledgerdomain.AppendRequest) (ledgerdomain.Entry, error) {
	_ = ctx
	f.appendCalls++
	f.lastReq = req
	if f.err != nil {
		return ledgerdomain.Entry{}, f.err
	}
	return ledgerdomain.Entry{UniqueID: "test-id"}, nil
}

func writeTemplate(t *testing.T, dir string) {
	t.Helper()

	doc := docx.New()
	doc.AddParagraph("Invoice [IVN] for [NAME]")
	doc.AddParagraph("Total: MRP")
	require.NoError(t, doc.Save(filepath.Join(dir, "INVOICE.docx")))
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeLedgerService, config.Config) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tplDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "invoices")
	writeTemplate(t, tplDir)

	cfg := config.Config{
		AppName:     "invoicesmith",
		AppVersion:  "0.1.0",
		TemplateDir: tplDir,
		OutputDir:   outDir,
	}
	log := zap.NewNop()
	engine := NewEngine(cfg, log)
	ledgerSvc := &fakeLedgerService{}

	s := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		Log:          log,
		Materializer: materialize.New(tplDir, outDir, log),
		LedgerSvc:    ledgerSvc,
	})
	s.RegisterRoutes()

	return engine, ledgerSvc, cfg
}

func postInvoice(engine *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sampleForm() url.Values {
	return url.Values{
		"invoice_type": {"invoice"},
		"invoice_no":   {"INV-001"},
		"invoice_date": {"2024-01-15"},
		"due_date":     {"2024-01-30"},
		"name":         {"Jane Doe"},
		"store_name":   {"AcmeCo"},
		"service":      {"Consulting"},
		"cost":         {"1000"},
		"gst":          {"180"},
		"total":        {"1180"},
	}
}

func TestShowForm(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/invoices"`)
}

func TestCreateInvoiceWritesFileAndAppendsLedger(t *testing.T) {
	engine, ledgerSvc, cfg := newTestServer(t)

	w := postInvoice(engine, sampleForm())

	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.Equal(t, "/download/INVOICE_Consulting_AcmeCo_2024-01-15.docx", location)

	name := strings.TrimPrefix(location, "/download/")
	_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
	assert.NoError(t, err)

	require.Equal(t, 1, ledgerSvc.appendCalls)
	assert.Equal(t, "INV-001", ledgerSvc.lastReq.Record.InvoiceNo)
	assert.Equal(t, "1180", ledgerSvc.lastReq.Form["total"])
}

func TestCreateInvoiceCollisionSkipsLedger(t *testing.T) {
	engine, ledgerSvc, _ := newTestServer(t)

	first := postInvoice(engine, sampleForm())
	require.Equal(t, http.StatusSeeOther, first.Code)

	second := postInvoice(engine, sampleForm())
	require.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, first.Header().Get("Location"), second.Header().Get("Location"))

	assert.Equal(t, 1, ledgerSvc.appendCalls)
}

func TestCreateInvoiceLedgerFailure(t *testing.T) {
	engine, ledgerSvc, _ := newTestServer(t)
	ledgerSvc.err = assert.AnError

	w := postInvoice(engine, sampleForm())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDownloadStreamsWrittenFile(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := postInvoice(engine, sampleForm())
	require.Equal(t, http.StatusSeeOther, w.Code)

	dl := httptest.NewRecorder()
	engine.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil))

	assert.Equal(t, http.StatusOK, dl.Code)
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, dl.Body.Len())
}

func TestDownloadUnknownFile(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/INVOICE_missing.docx", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadRejectsHiddenNames(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/.env", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadStatFailure(t *testing.T) {
	engine, _, cfg := newTestServer(t)

	// A regular file where the output directory should be makes every
	// stat under it fail with something other than not-exist.
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("x"), 0o644))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/INVOICE_a_b_c.docx", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestHealth(t *testing.T) {
	engine, _, cfg := newTestServer(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cfg.AppVersion)
}

func TestProductionConfigSelectsReleaseMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	NewEngine(config.Config{Environment: "production"}, zap.NewNop())
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}
