package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/invoicesmith/internal/ledger/domain"
	"github.com/smallbiznis/invoicesmith/internal/record"
	"go.uber.org/zap"
)

func (s *Server) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"AppName": s.cfg.AppName,
	})
}

// CreateInvoice materializes a submitted form into a document, appends
// the submission to the ledger, and redirects to the document's download.
// A collision on the derived filename skips both the write and the append
// and redirects to the existing file.
func (s *Server) CreateInvoice(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		AbortWithError(c, newValidationError("form", "malformed_form", "could not parse form"))
		return
	}

	form := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	rec := record.FromForm(form)

	res, err := s.materializer.Materialize(c.Request.Context(), rec)
	if err != nil {
		s.log.Error("materialize failed", zap.Error(err))
		AbortWithError(c, err)
		return
	}

	if res.Created {
		if _, err := s.ledgerSvc.Append(c.Request.Context(), ledgerdomain.AppendRequest{
			Record: rec,
			Form:   form,
		}); err != nil {
			s.log.Error("ledger append failed", zap.Error(err))
			AbortWithError(c, err)
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/download/"+res.Filename)
}

// Download streams a previously materialized document as an attachment.
func (s *Server) Download(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		AbortWithError(c, newValidationError("name", "invalid_name", "invalid file name"))
		return
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			AbortWithError(c, ErrNotFound)
			return
		}
		s.log.Error("stat download target", zap.Error(err))
		AbortWithError(c, fmt.Errorf("stat %s: %w", name, ErrInternal))
		return
	}

	c.FileAttachment(path, name)
}
