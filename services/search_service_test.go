package services

import (
	"context"
	"fmt"
	"testing"

	"hotel-marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPage(t *testing.T) {
	cases := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, 10},
		{-3, 20, 1, 20},
		{2, 500, 2, 50},
		{1, -1, 1, 1},
		{4, 50, 4, 50},
	}
	for _, tc := range cases {
		p, s := ClampPage(tc.page, tc.size)
		assert.Equal(t, tc.wantPage, p, "page for %+v", tc)
		assert.Equal(t, tc.wantSize, s, "size for %+v", tc)
	}
}

func TestParseStars(t *testing.T) {
	assert.Equal(t, []int{3, 5}, ParseStars("3, 5,9,x,3"))
	assert.Empty(t, ParseStars(""))
}

func TestSearchOnlyApprovedByDefault(t *testing.T) {
	db := newTestDB(t)
	seedHotel(t, db, models.Hotel{NameCn: "甲", City: "上海", Status: models.StatusApproved})
	seedHotel(t, db, models.Hotel{NameCn: "乙", City: "上海", Status: models.StatusPending})
	seedHotel(t, db, models.Hotel{NameCn: "丙", City: "上海", Status: models.StatusOffline})
	svc := NewSearchService(db)

	page, err := svc.List(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "甲", page.Items[0].NameCn)

	page, err = svc.List(context.Background(), SearchParams{Status: models.StatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "乙", page.Items[0].NameCn)

	_, err = svc.List(context.Background(), SearchParams{Status: "bogus"})
	assert.True(t, IsKind(err, KindBadRequest))
}

func TestSearchTotalIndependentOfPageSize(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 60; i++ {
		seedHotel(t, db, models.Hotel{NameCn: fmt.Sprintf("酒店%d", i), Status: models.StatusApproved})
	}
	svc := NewSearchService(db)

	page, err := svc.List(context.Background(), SearchParams{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, page.Items, 50)
	assert.EqualValues(t, 60, page.Total)

	page, err = svc.List(context.Background(), SearchParams{Page: 2, PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.EqualValues(t, 60, page.Total)

	page, err = svc.List(context.Background(), SearchParams{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, page.PageSize)
}

func TestSearchFiltersAndSort(t *testing.T) {
	db := newTestDB(t)
	seedHotel(t, db, models.Hotel{NameCn: "外滩大酒店", NameEn: "Bund", City: "上海", Star: 5, Score: 4.1, MinPrice: floatPtr(800), Status: models.StatusApproved})
	seedHotel(t, db, models.Hotel{NameCn: "静安宾馆", City: "上海", Star: 4, Score: 4.8, MinPrice: floatPtr(400), Status: models.StatusApproved})
	seedHotel(t, db, models.Hotel{NameCn: "西湖饭店", City: "杭州", Star: 4, Score: 4.5, MinPrice: floatPtr(300), Status: models.StatusApproved})
	svc := NewSearchService(db)
	ctx := context.Background()

	page, err := svc.List(ctx, SearchParams{City: "上海", Sort: SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "静安宾馆", page.Items[0].NameCn)

	page, err = svc.List(ctx, SearchParams{Sort: SortScoreDesc})
	require.NoError(t, err)
	assert.Equal(t, "静安宾馆", page.Items[0].NameCn)

	page, err = svc.List(ctx, SearchParams{Keyword: "bund"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	page, err = svc.List(ctx, SearchParams{MinPrice: floatPtr(350), MaxPrice: floatPtr(900), Stars: []int{4}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "静安宾馆", page.Items[0].NameCn)
}

func TestSearchFallsBackToLiveMinPrice(t *testing.T) {
	db := newTestDB(t)
	h := seedHotel(t, db, models.Hotel{Status: models.StatusApproved})
	require.NoError(t, db.Create(&[]models.Room{
		{HotelID: h.ID, Name: "A", Price: 210},
		{HotelID: h.ID, Name: "B", Price: 180},
	}).Error)

	page, err := NewSearchService(db).List(context.Background(), SearchParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].MinPrice)
	assert.Equal(t, 180.0, *page.Items[0].MinPrice)
}

func TestDetailApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	approved := seedHotel(t, db, models.Hotel{Status: models.StatusApproved})
	pending := seedHotel(t, db, models.Hotel{Status: models.StatusPending})
	require.NoError(t, db.Create(&[]models.Room{
		{HotelID: approved.ID, Name: "贵", Price: 500},
		{HotelID: approved.ID, Name: "便宜", Price: 150},
	}).Error)
	svc := NewSearchService(db)

	detail, err := svc.Detail(context.Background(), approved.ID)
	require.NoError(t, err)
	require.Len(t, detail.Rooms, 2)
	assert.Equal(t, "便宜", detail.Rooms[0].Name)
	require.NotNil(t, detail.Hotel.MinPrice)
	assert.Equal(t, 150.0, *detail.Hotel.MinPrice)

	_, err = svc.Detail(context.Background(), pending.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestSearchPriceUsesLiveFallback(t *testing.T) {
	db := newTestDB(t)
	cached := seedHotel(t, db, models.Hotel{NameCn: "缓存价酒店", MinPrice: floatPtr(500), Status: models.StatusApproved})
	live := seedHotel(t, db, models.Hotel{NameCn: "实时价酒店", Status: models.StatusApproved})
	require.NoError(t, db.Create(&models.Room{HotelID: live.ID, Name: "标准间", Price: 200}).Error)
	svc := NewSearchService(db)
	ctx := context.Background()

	page, err := svc.List(ctx, SearchParams{Sort: SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, live.ID, page.Items[0].ID)
	assert.Equal(t, cached.ID, page.Items[1].ID)

	page, err = svc.List(ctx, SearchParams{Sort: SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, cached.ID, page.Items[0].ID)

	page, err = svc.List(ctx, SearchParams{MinPrice: floatPtr(100), MaxPrice: floatPtr(300)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, live.ID, page.Items[0].ID)
	require.NotNil(t, page.Items[0].MinPrice)
	assert.Equal(t, 200.0, *page.Items[0].MinPrice)
}
