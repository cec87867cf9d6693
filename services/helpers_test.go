package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"hotel-marketplace/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Hotel{}, &models.Room{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedHotel(t *testing.T, db *gorm.DB, h models.Hotel) models.Hotel {
	t.Helper()
	if h.MerchantID == 0 {
		h.MerchantID = 1
	}
	if h.NameCn == "" {
		h.NameCn = "测试酒店"
	}
	if h.Status == "" {
		h.Status = models.StatusPending
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

type fakePublisher struct {
	mu     sync.Mutex
	events []AuditEvent
	err    error
}

func (p *fakePublisher) PublishAudit(_ context.Context, ev AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fakePurger struct {
	calls int
	err   error
}

func (p *fakePurger) Purge(context.Context) error {
	p.calls++
	return p.err
}
