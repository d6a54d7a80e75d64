package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/database"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/realtime"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// verifyTimeout bounds the whole background verification pipeline
// (image fetch + model call + cache write)
const verifyTimeout = 30 * time.Second

type ReportService struct {
	db       *database.DB
	verifier *ImageVerifier
	cache    *VerificationCacheService
	events   Emitter
}

func NewReportService(db *database.DB, verifier *ImageVerifier, cache *VerificationCacheService, events Emitter) *ReportService {
	return &ReportService{db: db, verifier: verifier, cache: cache, events: events}
}

type CreateReportRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

func (s *ReportService) emit(payload interface{}) {
	if s.events != nil {
		s.events.Emit(realtime.EventReportUpdated, payload)
	}
}

// Create persists a report with verification_status pending and kicks the
// image verification off in the background. Verification never blocks or
// fails report creation.
func (s *ReportService) Create(ctx context.Context, principal string, disasterID uuid.UUID, req *CreateReportRequest) (*models.Report, error) {
	disaster, err := s.getDisaster(ctx, disasterID)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		DisasterID:         disasterID,
		UserID:             principal,
		Content:            req.Content,
		ImageURL:           req.ImageURL,
		VerificationStatus: models.VerificationPending,
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.emit(map[string]interface{}{"action": "create", "report": report})

	if req.ImageURL != nil && *req.ImageURL != "" {
		go s.runVerification(report.ID, *req.ImageURL, disaster)
	}

	return &report, nil
}

func (s *ReportService) List(ctx context.Context, disasterID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("disaster_id = ?", disasterID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &report, nil
}

// Update saves new content and, when the image changes, resets the
// verification to pending and re-runs it
func (s *ReportService) Update(ctx context.Context, principal string, id uuid.UUID, req *CreateReportRequest) (*models.Report, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.UserID != principal {
		return nil, fmt.Errorf("%w: not authorized to update this report", ErrUnauthorized)
	}

	report.Content = req.Content
	imageChanged := req.ImageURL != nil && *req.ImageURL != "" &&
		(report.ImageURL == nil || *report.ImageURL != *req.ImageURL)
	if req.ImageURL != nil {
		report.ImageURL = req.ImageURL
	}
	if imageChanged {
		report.VerificationStatus = models.VerificationPending
	}

	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	s.emit(map[string]interface{}{"action": "update", "report": report})

	if imageChanged {
		disaster, err := s.getDisaster(ctx, report.DisasterID)
		if err == nil {
			go s.runVerification(report.ID, *report.ImageURL, disaster)
		}
	}

	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, principal string, id uuid.UUID) error {
	report, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if report.UserID != principal {
		return fmt.Errorf("%w: not authorized to delete this report", ErrUnauthorized)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Report{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	s.emit(map[string]interface{}{"action": "delete", "reportId": id})
	return nil
}

// Verify runs the verification pipeline synchronously for one report and
// returns the verdict. Used by the explicit verify endpoint.
func (s *ReportService) Verify(ctx context.Context, id uuid.UUID) (*VerificationResult, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.ImageURL == nil || *report.ImageURL == "" {
		return nil, fmt.Errorf("%w: report has no image to verify", ErrInvalidInput)
	}

	disaster, err := s.getDisaster(ctx, report.DisasterID)
	if err != nil {
		return nil, err
	}

	return s.verifyAndStore(ctx, report.ID, *report.ImageURL, disaster)
}

// runVerification is the background path. Failures are logged and the
// report keeps its pending status.
func (s *ReportService) runVerification(reportID uuid.UUID, imageURL string, disaster *models.Disaster) {
	log := logger.GetLogger("reports")

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	if _, err := s.verifyAndStore(ctx, reportID, imageURL, disaster); err != nil {
		log.Warnf("Verification for report %s failed, status stays pending: %v", reportID, err)
	}
}

// verifyAndStore consults the cache, runs the verifier on a miss, writes
// the verdict back with its TTL and updates the report row
func (s *ReportService) verifyAndStore(ctx context.Context, reportID uuid.UUID, imageURL string, disaster *models.Disaster) (*VerificationResult, error) {
	log := logger.GetLogger("reports")

	key := CacheKey(imageURL, disaster.ID)

	result, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warnf("Verification cache read failed: %v", err)
	}
	if !hit {
		result, err = s.verifier.Verify(ctx, imageURL, disaster.Description)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Put(ctx, key, result); err != nil {
			log.Warnf("Verification cache write failed: %v", err)
		}
	}

	err = s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", reportID).
		Update("verification_status", result.Status).Error
	if err != nil {
		return nil, fmt.Errorf("store verification status: %w", err)
	}

	s.emit(map[string]interface{}{
		"action":              "update",
		"reportId":            reportID,
		"verification_status": result.Status,
	})
	return result, nil
}

func (s *ReportService) getDisaster(ctx context.Context, id uuid.UUID) (*models.Disaster, error) {
	var disaster models.Disaster
	err := s.db.WithContext(ctx).First(&disaster, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: disaster %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get disaster: %w", err)
	}
	return &disaster, nil
}
