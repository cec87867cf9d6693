package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func shanghaiContext() ChatContext {
	return ChatContext{
		LastHotels: []HotelSummary{
			{ID: 11, NameCn: "外滩酒店", City: "上海"},
			{ID: 12, NameCn: "静安宾馆", City: "上海"},
		},
		LastHotelID: 12,
	}
}

func TestClassifyIntents(t *testing.T) {
	cases := []struct {
		text   string
		cctx   ChatContext
		intent Intent
	}{
		{"上海有哪些酒店", ChatContext{}, IntentCityHotels},
		{"请问北京市有什么酒店？", ChatContext{}, IntentCityHotels},
		{"杭州的酒店有哪些", ChatContext{}, IntentCityHotels},
		{"北京有哪些五星级酒店", ChatContext{}, IntentCityHotels},
		{"杭州有什么便宜的酒店", ChatContext{}, IntentCityHotels},
		{"外滩酒店的地址", ChatContext{}, IntentHotelInfo},
		{"这家酒店在哪", shanghaiContext(), IntentHotelInfo},
		{"第一家的详情", shanghaiContext(), IntentHotelInfo},
		{"这家酒店还剩什么房间", shanghaiContext(), IntentInventory},
		{"外滩酒店大床房还剩几间", ChatContext{}, IntentInventory},
		{"外滩酒店有空房吗", ChatContext{}, IntentInventory},
		{"这家有空房吗", shanghaiContext(), IntentInventory},
		{"外滩酒店有哪些房型", ChatContext{}, IntentHotelRooms},
		{"第二家有什么房型", shanghaiContext(), IntentHotelRooms},
		{"你好", ChatContext{}, IntentLLM},
		{"你能介绍一下自己吗", ChatContext{}, IntentLLM},
		{"推荐一个周末去哪玩", ChatContext{}, IntentLLM},
		{"你推荐哪个酒店", ChatContext{}, IntentLLM},
		{"北京哪里有好的酒店", ChatContext{}, IntentLLM},
	}
	for _, tc := range cases {
		m := Classify(tc.text, tc.cctx)
		assert.Equal(t, tc.intent, m.Intent, tc.text)
	}
}

func TestClassifyExtractsEntities(t *testing.T) {
	m := Classify("上海有哪些酒店", ChatContext{})
	assert.Equal(t, "上海", m.City)

	m = Classify("北京市有什么酒店", ChatContext{})
	assert.Equal(t, "北京", m.City)

	m = Classify("外滩酒店的地址", ChatContext{})
	assert.Equal(t, HotelRef{Name: "外滩酒店"}, m.Hotel)

	m = Classify("外滩酒店大床房还剩几间", ChatContext{})
	assert.Equal(t, "外滩酒店", m.Hotel.Name)
	assert.Equal(t, "大床房", m.RoomName)

	m = Classify("外滩酒店有哪些房型", ChatContext{})
	assert.Equal(t, "外滩酒店", m.Hotel.Name)

	m = Classify("北京有哪些五星级酒店", ChatContext{})
	assert.Equal(t, "北京", m.City)

	m = Classify("杭州有什么便宜的酒店", ChatContext{})
	assert.Equal(t, "杭州", m.City)
}

func TestClassifyInventoryWithoutRoomName(t *testing.T) {
	for _, text := range []string{"外滩酒店有空房吗", "外滩酒店有几间空房", "外滩酒店还可以订吗"} {
		m := Classify(text, ChatContext{})
		assert.Equal(t, IntentInventory, m.Intent, text)
		assert.Equal(t, "外滩酒店", m.Hotel.Name, text)
		assert.Empty(t, m.RoomName, text)
	}

	m := Classify("这家有空房吗", shanghaiContext())
	assert.Equal(t, IntentInventory, m.Intent)
	assert.Equal(t, uint(12), m.Hotel.ID)
	assert.Empty(t, m.RoomName)

	m = Classify("外滩酒店大床房有空房吗", ChatContext{})
	assert.Equal(t, "大床房", m.RoomName)
}

func TestClassifyResolvesReferences(t *testing.T) {
	cctx := shanghaiContext()

	m := Classify("这家酒店还剩什么房间", cctx)
	assert.Equal(t, HotelRef{ID: 12, Referential: true}, m.Hotel)
	assert.Empty(t, m.RoomName)

	m = Classify("这家的大床房还有几间", cctx)
	assert.Equal(t, IntentInventory, m.Intent)
	assert.Equal(t, uint(12), m.Hotel.ID)
	assert.Equal(t, "大床房", m.RoomName)

	m = Classify("第一家的详情", cctx)
	assert.Equal(t, uint(11), m.Hotel.ID)

	m = Classify("第2家有哪些房型", cctx)
	assert.Equal(t, uint(12), m.Hotel.ID)

	// out of range ordinals and an empty context stay unresolved
	m = Classify("第五家的地址", cctx)
	assert.True(t, m.Hotel.Referential)
	assert.Zero(t, m.Hotel.ID)

	m = Classify("这家酒店还剩什么房间", ChatContext{})
	assert.Equal(t, IntentInventory, m.Intent)
	assert.Zero(t, m.Hotel.ID)

	single := ChatContext{LastHotels: []HotelSummary{{ID: 5}}}
	m = Classify("这家酒店在哪", single)
	assert.Equal(t, uint(5), m.Hotel.ID)
}

func TestParseOrdinal(t *testing.T) {
	cases := map[string]int{"1": 1, "12": 12, "一": 1, "两": 2, "十": 10, "十二": 12, "二十": 20, "三十五": 35}
	for in, want := range cases {
		got, ok := parseOrdinal(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := parseOrdinal("0")
	assert.False(t, ok)
	_, ok = parseOrdinal("百")
	assert.False(t, ok)
}
