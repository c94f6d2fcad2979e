// internal/services/audit_service.go
package services

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

// AuditService persists the console's own record of mutating requests. With
// no database configured it only logs.
type AuditService struct {
	db     *gorm.DB
	logger *logrus.Entry
	wg     sync.WaitGroup
}

type AuditFilter struct {
	utils.PaginationParams
	UserID       string
	ResourceType string
}

var auditSortFields = []string{"created_at", "action", "resource_type", "status"}

func NewAuditService(db *gorm.DB, logger *logrus.Logger) *AuditService {
	return &AuditService{
		db:     db,
		logger: logger.WithField("service", "audit"),
	}
}

func (s *AuditService) Enabled() bool {
	return s != nil && s.db != nil
}

// Record saves the entry in the background. Use Wait to drain pending writes.
func (s *AuditService) Record(entry *models.AuditLog) {
	if s == nil || entry == nil {
		return
	}

	fields := logrus.Fields{
		"action":        entry.Action,
		"resource_type": entry.ResourceType,
		"resource_id":   entry.ResourceID,
		"user_id":       entry.UserID,
		"status":        entry.Status,
	}
	if s.db == nil {
		s.logger.WithFields(fields).Info("Audit")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.db.Create(entry).Error; err != nil {
			s.logger.WithError(err).WithFields(fields).Error("Failed to create audit log")
		}
	}()
}

func (s *AuditService) Wait() {
	if s != nil {
		s.wg.Wait()
	}
}

func (s *AuditService) List(filter AuditFilter) ([]models.AuditLog, int64, error) {
	if !s.Enabled() {
		return []models.AuditLog{}, 0, nil
	}

	query := s.db.Model(&models.AuditLog{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Search != "" {
		query = query.Where("action LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query = utils.ApplySort(query, filter.PaginationParams, auditSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, total, nil
}
