package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-marketplace/models"

	"gorm.io/gorm"
)

// DefaultRejectReason is stored when an admin rejects without a reason.
const DefaultRejectReason = "未通过审核"

// Audit actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionOffline = "offline"
	ActionOnline  = "online"
)

type transition struct {
	from []string
	to   string
}

// transitions is the lifecycle the admin console drives:
// pending -> approved|rejected, approved -> offline, offline -> approved.
var transitions = map[string]transition{
	ActionApprove: {from: []string{models.StatusPending}, to: models.StatusApproved},
	ActionReject:  {from: []string{models.StatusPending}, to: models.StatusRejected},
	ActionOffline: {from: []string{models.StatusApproved}, to: models.StatusOffline},
	ActionOnline:  {from: []string{models.StatusOffline}, to: models.StatusApproved},
}

// AuditService runs the admin approve/reject/offline/online workflow.
// Role checks happen in the router; with Strict unset every action is
// accepted from any current status.
type AuditService struct {
	DB     *gorm.DB
	Strict bool
	Events EventPublisher
	Cache  CachePurger
}

func NewAuditService(db *gorm.DB, strict bool) *AuditService {
	return &AuditService{DB: db, Strict: strict}
}

// AllowedFrom reports whether action may run on a hotel in status.
func AllowedFrom(action, status string) bool {
	t, ok := transitions[action]
	if !ok {
		return false
	}
	for _, s := range t.from {
		if s == status {
			return true
		}
	}
	return false
}

// List returns hotels for the audit console, newest first. An empty status
// lists every hotel.
func (s *AuditService) List(status string) ([]models.Hotel, error) {
	status = strings.TrimSpace(status)
	q := s.DB.Preload("Rooms").Order("created_at DESC, id DESC")
	if status != "" {
		if !validStatus(status) {
			return nil, BadRequest("invalid status")
		}
		q = q.Where("status = ?", status)
	}
	var hotels []models.Hotel
	if err := q.Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (s *AuditService) Approve(ctx context.Context, hotelID uint) (models.Hotel, error) {
	return s.apply(ctx, hotelID, ActionApprove, "")
}

func (s *AuditService) Reject(ctx context.Context, hotelID uint, reason string) (models.Hotel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectReason
	}
	return s.apply(ctx, hotelID, ActionReject, reason)
}

func (s *AuditService) Offline(ctx context.Context, hotelID uint) (models.Hotel, error) {
	return s.apply(ctx, hotelID, ActionOffline, "")
}

func (s *AuditService) Online(ctx context.Context, hotelID uint) (models.Hotel, error) {
	return s.apply(ctx, hotelID, ActionOnline, "")
}

func (s *AuditService) apply(ctx context.Context, hotelID uint, action, reason string) (models.Hotel, error) {
	t := transitions[action]

	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, NotFound("hotel not found")
		}
		return models.Hotel{}, err
	}

	from := hotel.Status
	if s.Strict && !AllowedFrom(action, from) {
		return models.Hotel{}, Conflict(fmt.Sprintf("cannot %s a hotel in status %s", action, from))
	}

	updates := map[string]interface{}{"status": t.to}
	switch action {
	case ActionReject:
		updates["reject_reason"] = reason
	case ActionApprove, ActionOnline:
		updates["reject_reason"] = ""
	}
	if err := s.DB.WithContext(ctx).Model(&hotel).Updates(updates).Error; err != nil {
		return models.Hotel{}, err
	}
	hotel.Status = t.to
	if v, ok := updates["reject_reason"].(string); ok {
		hotel.RejectReason = v
	}

	afterChange(ctx, s.Cache, s.Events, &AuditEvent{
		HotelID:      hotel.ID,
		MerchantID:   hotel.MerchantID,
		Action:       action,
		FromStatus:   from,
		ToStatus:     t.to,
		RejectReason: hotel.RejectReason,
		At:           time.Now().UTC().Format(time.RFC3339),
	})
	return hotel, nil
}

func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusOffline:
		return true
	}
	return false
}
