package services

import (
	"context"
	"errors"
	"testing"

	"hotel-marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditUnknownHotelIsNotFound(t *testing.T) {
	db := newTestDB(t)
	existing := seedHotel(t, db, models.Hotel{Status: models.StatusPending})
	svc := NewAuditService(db, true)
	ctx := context.Background()

	calls := map[string]func() (models.Hotel, error){
		"approve": func() (models.Hotel, error) { return svc.Approve(ctx, 999) },
		"reject":  func() (models.Hotel, error) { return svc.Reject(ctx, 999, "bad") },
		"offline": func() (models.Hotel, error) { return svc.Offline(ctx, 999) },
		"online":  func() (models.Hotel, error) { return svc.Online(ctx, 999) },
	}
	for name, call := range calls {
		_, err := call()
		assert.True(t, IsKind(err, KindNotFound), "%s: got %v", name, err)
	}

	var reloaded models.Hotel
	require.NoError(t, db.First(&reloaded, existing.ID).Error)
	assert.Equal(t, models.StatusPending, reloaded.Status)
	var count int64
	db.Model(&models.Hotel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAuditApproveClearsRejectReason(t *testing.T) {
	db := newTestDB(t)
	h := seedHotel(t, db, models.Hotel{Status: models.StatusPending, RejectReason: "old reason"})

	got, err := NewAuditService(db, true).Approve(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Empty(t, got.RejectReason)

	var reloaded models.Hotel
	require.NoError(t, db.First(&reloaded, h.ID).Error)
	assert.Equal(t, models.StatusApproved, reloaded.Status)
	assert.Empty(t, reloaded.RejectReason)
}

func TestAuditRejectUsesDefaultReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuditService(db, true)
	a := seedHotel(t, db, models.Hotel{})
	b := seedHotel(t, db, models.Hotel{})

	got, err := svc.Reject(context.Background(), a.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, DefaultRejectReason, got.RejectReason)

	got, err = svc.Reject(context.Background(), b.ID, "图片不清晰")
	require.NoError(t, err)
	assert.Equal(t, "图片不清晰", got.RejectReason)
}

func TestAuditStrictGuardsTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuditService(db, true)
	ctx := context.Background()
	h := seedHotel(t, db, models.Hotel{Status: models.StatusPending})

	_, err := svc.Online(ctx, h.ID)
	assert.True(t, IsKind(err, KindConflict))
	_, err = svc.Offline(ctx, h.ID)
	assert.True(t, IsKind(err, KindConflict))

	var reloaded models.Hotel
	require.NoError(t, db.First(&reloaded, h.ID).Error)
	assert.Equal(t, models.StatusPending, reloaded.Status)

	_, err = svc.Approve(ctx, h.ID)
	require.NoError(t, err)
	got, err := svc.Offline(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, got.Status)
	got, err = svc.Online(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)

	_, err = svc.Reject(ctx, h.ID, "")
	assert.True(t, IsKind(err, KindConflict))
}

func TestAuditPermissiveAllowsAnyTransition(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuditService(db, false)
	h := seedHotel(t, db, models.Hotel{Status: models.StatusRejected})

	got, err := svc.Online(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestAllowedFrom(t *testing.T) {
	assert.True(t, AllowedFrom(ActionApprove, models.StatusPending))
	assert.True(t, AllowedFrom(ActionReject, models.StatusPending))
	assert.True(t, AllowedFrom(ActionOffline, models.StatusApproved))
	assert.True(t, AllowedFrom(ActionOnline, models.StatusOffline))
	assert.False(t, AllowedFrom(ActionOnline, models.StatusPending))
	assert.False(t, AllowedFrom(ActionApprove, models.StatusRejected))
	assert.False(t, AllowedFrom("delete", models.StatusPending))
}

func TestAuditSideEffects(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	cache := &fakePurger{}
	svc := NewAuditService(db, true)
	svc.Events = pub
	svc.Cache = cache
	h := seedHotel(t, db, models.Hotel{MerchantID: 7})

	_, err := svc.Approve(context.Background(), h.ID)
	require.NoError(t, err, "publish failures must not fail the transition")

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, h.ID, ev.HotelID)
	assert.Equal(t, uint(7), ev.MerchantID)
	assert.Equal(t, ActionApprove, ev.Action)
	assert.Equal(t, models.StatusPending, ev.FromStatus)
	assert.Equal(t, models.StatusApproved, ev.ToStatus)
	assert.Equal(t, 1, cache.calls)

	_, err = svc.Approve(context.Background(), 999)
	require.Error(t, err)
	assert.Len(t, pub.events, 1)
}

func TestAuditListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	seedHotel(t, db, models.Hotel{Status: models.StatusPending})
	seedHotel(t, db, models.Hotel{Status: models.StatusApproved})
	seedHotel(t, db, models.Hotel{Status: models.StatusPending})
	svc := NewAuditService(db, true)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[2].ID)

	pending, err := svc.List(models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.List("deleted")
	assert.True(t, IsKind(err, KindBadRequest))
}
