package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"docverify/internal/cache"
	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/fingerprint"
	"docverify/internal/port"
)

// ProcessInput is the DTO for verifying one BL/invoice/packing set.
type ProcessInput struct {
	BL      domain.Document
	Invoice domain.Document
	Packing *domain.Document // nil when no packing list was submitted
	Force   bool
}

// ProcessResult is the outcome of Process or Reverify.
type ProcessResult struct {
	Report              *domain.Report
	Cached              bool
	Forced              bool
	WorkflowFingerprint domain.WorkflowFingerprint
	ReportFile          string
	Warnings            []string
}

// ExtractResult is the outcome of a single-document extraction.
type ExtractResult struct {
	Record      *domain.ShippingRecord
	Cached      bool
	Fingerprint domain.Fingerprint
	Warnings    []string
}

// VerificationService defines the document verification contract.
type VerificationService interface {
	Process(ctx context.Context, input *ProcessInput) (*ProcessResult, error)
	Reverify(ctx context.Context, input *ProcessInput) (*ProcessResult, error)
	Extract(ctx context.Context, doc domain.Document, force bool) (*ExtractResult, error)
}

type verificationService struct {
	docs      *cache.DocumentCache
	workflows *cache.WorkflowCache
	locks     *cache.KeyedMutex
	extractor port.DocumentExtractor
	engine    port.ComparisonEngine
	reports   ReportService
	cfg       config.WorkflowConfig
}

// NewVerificationService creates a new VerificationService implementation.
// reports may be nil, in which case finished reports are not archived.
func NewVerificationService(
	docs *cache.DocumentCache,
	workflows *cache.WorkflowCache,
	extractor port.DocumentExtractor,
	engine port.ComparisonEngine,
	reports ReportService,
	cfg config.WorkflowConfig,
) VerificationService {
	return &verificationService{
		docs:      docs,
		workflows: workflows,
		locks:     cache.NewKeyedMutex(),
		extractor: extractor,
		engine:    engine,
		reports:   reports,
		cfg:       cfg,
	}
}

// warnings collects non-fatal problems from concurrent workers.
type warnings struct {
	mu   sync.Mutex
	list []string
}

func (w *warnings) add(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("verificationService: warning: %s", msg)
	w.mu.Lock()
	w.list = append(w.list, msg)
	w.mu.Unlock()
}

func (w *warnings) all() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.list...)
}

func (s *verificationService) Process(ctx context.Context, input *ProcessInput) (*ProcessResult, error) {
	set, err := workflowFingerprints(input)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{WorkflowFingerprint: set.Workflow, Forced: input.Force}
	warn := &warnings{}

	if !input.Force {
		if report, ok := s.cachedReport(ctx, set.Workflow); ok {
			result.Report = report
			result.Cached = true
			return result, nil
		}
	}

	unlock, err := s.locks.Lock(ctx, set.Workflow.StoreKey())
	if err != nil {
		return nil, fmt.Errorf("waiting for workflow %s: %w", set.Workflow, err)
	}
	defer unlock()

	// A concurrent caller may have finished this workflow while we waited.
	if !input.Force {
		if report, ok := s.cachedReport(ctx, set.Workflow); ok {
			result.Report = report
			result.Cached = true
			return result, nil
		}
	}

	docs := workflowDocuments(input)
	keys := set.Keys()

	records := make([]domain.ShippingRecord, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range docs {
		i := i
		g.Go(func() error {
			record, _, err := s.resolveDocument(gctx, docs[i], keys[i], input.Force, warn)
			if err != nil {
				return err
			}
			records[i] = *record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("verificationService.Process: workflow %s aborted: %v", set.Workflow, err)
		return nil, err
	}

	var packing *domain.ShippingRecord
	if len(records) == 3 {
		packing = &records[2]
	}
	report, err := s.compare(ctx, records[0], records[1], packing)
	if err != nil {
		log.Printf("verificationService.Process: workflow %s aborted: %v", set.Workflow, err)
		return nil, err
	}

	if err := s.workflows.Put(ctx, set.Workflow, *report, keys, s.workflows.TTL()); err != nil {
		warn.add("workflow cache write failed: %v", err)
	}

	if s.reports != nil {
		name, err := s.reports.Save(ctx, report)
		if err != nil {
			warn.add("report archive failed: %v", err)
		} else {
			result.ReportFile = name
		}
	}

	result.Report = report
	result.Warnings = warn.all()
	return result, nil
}

func (s *verificationService) Reverify(ctx context.Context, input *ProcessInput) (*ProcessResult, error) {
	set, err := workflowFingerprints(input)
	if err != nil {
		return nil, err
	}

	warn := &warnings{}
	keys := set.Keys()
	entry, found, err := s.workflows.Lookup(ctx, set.Workflow)
	if err != nil {
		warn.add("workflow cache lookup failed: %v", err)
	} else if found {
		keys = unionKeys(keys, entry.Documents)
	}

	for _, key := range keys {
		if err := s.docs.Delete(ctx, key); err != nil {
			warn.add("document cache delete failed: %v", err)
		}
	}
	if err := s.workflows.Delete(ctx, set.Workflow); err != nil {
		warn.add("workflow cache delete failed: %v", err)
	}
	log.Printf("verificationService.Reverify: invalidated workflow %s (%d documents)", set.Workflow, len(keys))

	forced := *input
	forced.Force = true
	result, err := s.Process(ctx, &forced)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(warn.all(), result.Warnings...)
	return result, nil
}

func (s *verificationService) Extract(ctx context.Context, doc domain.Document, force bool) (*ExtractResult, error) {
	if _, ok := domain.ParseDocumentKind(string(doc.Kind)); !ok {
		return nil, domain.ErrInvalidDocumentKind
	}
	fp, err := fingerprint.Of(doc.Bytes)
	if err != nil {
		return nil, err
	}

	warn := &warnings{}
	record, cached, err := s.resolveDocument(ctx, doc, fingerprint.Key(fp, doc.Kind), force, warn)
	if err != nil {
		return nil, err
	}
	return &ExtractResult{
		Record:      record,
		Cached:      cached,
		Fingerprint: fp,
		Warnings:    warn.all(),
	}, nil
}

// cachedReport returns the workflow cache hit for wf, if any. Store failures
// degrade to a miss.
func (s *verificationService) cachedReport(ctx context.Context, wf domain.WorkflowFingerprint) (*domain.Report, bool) {
	report, found, err := s.workflows.Get(ctx, wf)
	if err != nil {
		log.Printf("verificationService: workflow cache read failed, treating as miss: %v", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	if err := s.workflows.MarkAccessed(ctx, wf); err != nil {
		log.Printf("verificationService: marking workflow %s accessed: %v", wf, err)
	}
	return report, true
}

// resolveDocument returns the record for one document, holding the key's lock
// across the cache check, the extraction and the cache write.
func (s *verificationService) resolveDocument(
	ctx context.Context,
	doc domain.Document,
	key domain.DocumentCacheKey,
	force bool,
	warn *warnings,
) (*domain.ShippingRecord, bool, error) {
	unlock, err := s.locks.Lock(ctx, key.String())
	if err != nil {
		return nil, false, &domain.ExtractionError{Kind: doc.Kind, Err: err}
	}
	defer unlock()

	if !force {
		record, found, err := s.docs.Get(ctx, key)
		switch {
		case err != nil:
			log.Printf("verificationService: document cache read failed for %s, treating as miss: %v", key, err)
		case found:
			return record, true, nil
		}
	}

	record, err := s.extract(ctx, doc)
	if err != nil {
		return nil, false, err
	}

	if !record.IsMeaningful() {
		log.Printf("verificationService: %s extraction returned no comparable fields, not caching", doc.Kind)
		return record, false, nil
	}
	if err := s.docs.Put(ctx, key, *record, s.docs.TTL()); err != nil {
		warn.add("document cache write failed for %s: %v", doc.Kind.Label(), err)
	}
	return record, false, nil
}

type extractOutcome struct {
	out *port.ExtractOutput
	err error
}

// extract calls the extraction service under the configured timeout. The call
// runs in its own goroutine so a collaborator that ignores ctx cannot hold the
// document lock past the deadline; its late result is discarded. A panic in
// the collaborator is reported as an extraction failure.
func (s *verificationService) extract(ctx context.Context, doc domain.Document) (*domain.ShippingRecord, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ExtractionTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan extractOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extractOutcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out, err := s.extractor.Extract(ctx, port.ExtractInput{
			FileBytes:   doc.Bytes,
			FileName:    doc.Name,
			ContentType: doc.ContentType,
			Kind:        doc.Kind,
		})
		done <- extractOutcome{out: out, err: err}
	}()

	var res extractOutcome
	select {
	case res = <-done:
	case <-ctx.Done():
		log.Printf("verificationService: extraction of %s %q abandoned after %s: %v", doc.Kind, doc.Name, time.Since(start).Round(time.Millisecond), ctx.Err())
		return nil, &domain.ExtractionError{Kind: doc.Kind, Err: ctx.Err()}
	}
	if res.err != nil {
		return nil, &domain.ExtractionError{Kind: doc.Kind, Err: res.err}
	}
	if res.out == nil {
		return nil, &domain.ExtractionError{Kind: doc.Kind, Err: errors.New("extractor returned no output")}
	}
	log.Printf("verificationService: extracted %s %q with %s in %s", doc.Kind, doc.Name, res.out.ModelUsed, time.Since(start).Round(time.Millisecond))
	rec := res.out.Record
	return &rec, nil
}

type compareOutcome struct {
	report *domain.Report
	err    error
}

// compare runs the comparison engine under the configured timeout, with the
// same abandonment and panic handling as extract.
func (s *verificationService) compare(ctx context.Context, bl, invoice domain.ShippingRecord, packing *domain.ShippingRecord) (*domain.Report, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ComparisonTimeout)
	defer cancel()

	done := make(chan compareOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- compareOutcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		report, err := s.engine.Compare(ctx, bl, invoice, packing)
		done <- compareOutcome{report: report, err: err}
	}()

	var res compareOutcome
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, &domain.ComparisonError{Err: ctx.Err()}
	}
	if res.err != nil {
		return nil, &domain.ComparisonError{Err: res.err}
	}
	if res.report == nil {
		return nil, &domain.ComparisonError{Err: errors.New("engine returned no report")}
	}
	return res.report, nil
}

func workflowFingerprints(input *ProcessInput) (fingerprint.Set, error) {
	if input == nil {
		return fingerprint.Set{}, domain.ErrMissingDocument
	}
	var packing []byte
	if input.Packing != nil {
		packing = input.Packing.Bytes
	}
	return fingerprint.Compute(input.BL.Bytes, input.Invoice.Bytes, packing, input.Packing != nil)
}

// workflowDocuments returns the submitted documents in fingerprint.Set.Keys
// order, with each kind fixed by the role it was submitted under.
func workflowDocuments(input *ProcessInput) []domain.Document {
	bl, invoice := input.BL, input.Invoice
	bl.Kind, invoice.Kind = domain.DocumentKindBL, domain.DocumentKindInvoice
	docs := []domain.Document{bl, invoice}
	if input.Packing != nil {
		packing := *input.Packing
		packing.Kind = domain.DocumentKindPacking
		docs = append(docs, packing)
	}
	return docs
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func unionKeys(a, b []domain.DocumentCacheKey) []domain.DocumentCacheKey {
	seen := make(map[domain.DocumentCacheKey]bool, len(a)+len(b))
	out := make([]domain.DocumentCacheKey, 0, len(a)+len(b))
	for _, k := range append(append([]domain.DocumentCacheKey(nil), a...), b...) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
