// Package materialize turns an invoice record plus a document template
// into a written output file under a no-overwrite guarantee.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/smallbiznis/invoicesmith/internal/docx"
	"github.com/smallbiznis/invoicesmith/internal/placeholder"
	"github.com/smallbiznis/invoicesmith/internal/record"
	"go.uber.org/zap"
)

// Result reports one materialization.
type Result struct {
	Filename string
	Path     string
	// Created is false when the derived filename already existed and the
	// write was skipped. That is a report, not an error.
	Created bool
}

// Materializer writes invoice documents. Invocations are independent and
// idempotent per derived filename: repeated calls never overwrite.
type Materializer struct {
	templateDir string
	outputDir   string
	log         *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a Materializer writing under outputDir from templates in
// templateDir.
func New(templateDir, outputDir string, log *zap.Logger) *Materializer {
	return &Materializer{
		templateDir: templateDir,
		outputDir:   outputDir,
		log:         log.Named("materialize"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// Materialize derives the output name for rec, and unless a file of that
// name exists, substitutes the record into a fresh copy of the template
// and writes it. The target only ever appears through an atomic link of a
// fully written temp file, so concurrent calls for the same name cannot
// both win and no partial file is visible under the target name.
func (m *Materializer) Materialize(ctx context.Context, rec record.Record) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(m.outputDir, 0o755); err != nil {
		documentFailures.Inc()
		return Result{}, fmt.Errorf("ensure output folder: %w", err)
	}

	name := Filename(rec)
	path := filepath.Join(m.outputDir, name)
	res := Result{Filename: name, Path: path}

	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(path); err == nil {
		m.log.Info("file already exists, skipping", zap.String("file", name))
		documentCollisions.Inc()
		return res, nil
	}

	doc, err := docx.Load(filepath.Join(m.templateDir, rec.Type.TemplateFile()))
	if err != nil {
		documentFailures.Inc()
		return Result{}, fmt.Errorf("load template: %w", err)
	}

	entries := placeholder.Build(rec)
	touched := placeholder.Apply(doc, entries)
	m.log.Debug("placeholders substituted",
		zap.String("file", name),
		zap.Int("runs", touched),
	)

	created, err := m.writeIfAbsent(doc, path)
	if err != nil {
		documentFailures.Inc()
		return Result{}, err
	}
	if !created {
		m.log.Info("file already exists, skipping", zap.String("file", name))
		documentCollisions.Inc()
		return res, nil
	}

	// Post-write existence check, deliberately not trusting the save path.
	if _, err := os.Stat(path); err != nil {
		documentFailures.Inc()
		return Result{}, fmt.Errorf("file %s not on disk after save: %w", name, err)
	}

	m.log.Info("invoice created", zap.String("file", name))
	documentsGenerated.Inc()
	res.Created = true
	return res, nil
}

// writeIfAbsent writes doc to a temp file in the output folder, then links
// it into place. The link fails if the target appeared meanwhile, which
// counts as a collision, not an error.
func (m *Materializer) writeIfAbsent(doc *docx.Document, path string) (bool, error) {
	tmp, err := os.CreateTemp(m.outputDir, ".invoicesmith-*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := doc.Write(tmp); err != nil {
		tmp.Close()
		return false, fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("write document: %w", err)
	}

	if err := os.Link(tmpName, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("place document: %w", err)
	}
	return true, nil
}

// lockFor returns the mutex guarding one derived filename. Entries are
// never removed: a mutex handed out may still be held, so the map grows
// with the set of distinct filenames seen by this process.
func (m *Materializer) lockFor(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[name] = lock
	}
	return lock
}
