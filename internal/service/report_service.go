package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/port"
)

// ReportFile describes one archived report.
type ReportFile struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ReportService archives finished reports to object storage.
type ReportService interface {
	Save(ctx context.Context, report *domain.Report) (string, error)
	List(ctx context.Context) ([]ReportFile, error)
	DownloadURL(ctx context.Context, name string) (string, error)
}

type reportService struct {
	storage port.ObjectStorage
	cfg     config.ReportsConfig
}

// NewReportService creates a ReportService. A nil storage yields an archive
// that saves nothing and lists no reports.
func NewReportService(storage port.ObjectStorage, cfg config.ReportsConfig) ReportService {
	return &reportService{storage: storage, cfg: cfg}
}

func (s *reportService) Save(ctx context.Context, report *domain.Report) (string, error) {
	if s.storage == nil {
		return "", nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("reportService.Save: encoding report: %w", err)
	}

	ts := report.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	name := fmt.Sprintf("report_%s_%s.json", ts.UTC().Format("20060102_150405"), uuid.New().String()[:8])

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s.key(name),
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
		Size:        int64(len(data)),
	})
	if err != nil {
		return "", fmt.Errorf("reportService.Save: %w", err)
	}
	log.Printf("reportService.Save: archived %s (%d bytes)", name, len(data))
	return name, nil
}

func (s *reportService) List(ctx context.Context) ([]ReportFile, error) {
	if s.storage == nil {
		return []ReportFile{}, nil
	}

	objects, err := s.storage.List(ctx, s.cfg.Bucket, s.cfg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("reportService.List: %w", err)
	}

	files := make([]ReportFile, 0, len(objects))
	for _, obj := range objects {
		name := path.Base(obj.Key)
		if !validReportName(name) {
			continue
		}
		files = append(files, ReportFile{Name: name, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].LastModified.After(files[j].LastModified)
	})
	return files, nil
}

func (s *reportService) DownloadURL(ctx context.Context, name string) (string, error) {
	if s.storage == nil || !validReportName(name) {
		return "", domain.ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, s.key(name), s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("reportService.DownloadURL: %w", err)
	}
	return url, nil
}

func (s *reportService) key(name string) string {
	return s.cfg.Prefix + name
}

func validReportName(name string) bool {
	return strings.HasPrefix(name, "report_") &&
		strings.HasSuffix(name, ".json") &&
		!strings.ContainsAny(name, "/\\")
}
