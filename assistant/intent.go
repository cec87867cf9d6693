package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of one chat message.
type Intent string

const (
	IntentCityHotels Intent = "city_hotels"
	IntentHotelInfo  Intent = "hotel_info"
	IntentInventory  Intent = "inventory"
	IntentHotelRooms Intent = "hotel_rooms"
	IntentLLM        Intent = "llm"
)

// HotelRef names the hotel a message is about: either an explicit name or a
// reference into the chat context. Referential is true for "this hotel" or
// "the Nth one"; ID is 0 when the context cannot resolve it.
type HotelRef struct {
	Name        string
	ID          uint
	Referential bool
}

// Match is the outcome of classification plus the entities each intent needs.
type Match struct {
	Intent   Intent
	City     string
	Hotel    HotelRef
	RoomName string
}

// rule binds an intent to its matcher. Rules are tried in table order and
// the first match wins, so a message that could satisfy two intents is
// settled by position here rather than by the matchers themselves.
type rule struct {
	intent Intent
	match  func(text string, cctx ChatContext) (Match, bool)
}

var rules = []rule{
	{IntentCityHotels, matchCityHotels},
	{IntentHotelInfo, matchHotelInfo},
	{IntentInventory, matchInventory},
	{IntentHotelRooms, matchHotelRooms},
}

// Classify runs the rule table over a message. Anything unmatched goes to
// the LLM fallback.
func Classify(text string, cctx ChatContext) Match {
	text = normalizeText(text)
	for _, r := range rules {
		if m, ok := r.match(text, cctx); ok {
			m.Intent = r.intent
			return m
		}
	}
	return Match{Intent: IntentLLM}
}

const hotelSuffix = `(?:酒店|宾馆|饭店|客栈|民宿|公寓|旅馆|度假村|山庄)`

var (
	politePrefixRe = regexp.MustCompile(`^(?:请问一?下?|你好|您好|帮我查一?下|帮我看看|查一?下|我想知道|想问一?下)[，,\s]*`)

	cityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([\p{Han}A-Za-z]{1,10}?)市?都?有(?:哪些|什么|啥|哪几家)[\p{Han}0-9A-Za-z]{0,8}?(?:酒店|宾馆|住宿|民宿)`),
		regexp.MustCompile(`^([\p{Han}A-Za-z]{1,10}?)市?的(?:酒店|宾馆|民宿)(?:有哪些|有什么|推荐)`),
	}

	infoPattern = regexp.MustCompile(`^(.{1,40}?)的?(?:详细信息|详细介绍|基本信息|信息|地址|详情|介绍|位置|在哪里|在哪儿|在哪)`)

	inventoryKeywordRe = regexp.MustCompile(`还剩|剩余|剩下|剩几|余房|库存|空房|有房|可订|可以订|还有几|还有多少`)
	roomPhraseRe       = regexp.MustCompile(`房型|房间|客房|有什么房|有哪些房|哪些房`)

	hotelNameRe     = regexp.MustCompile(`^(.{1,30}?` + hotelSuffix + `)的?(.*)$`)
	bareRoomsNameRe = regexp.MustCompile(`^(.{2,30}?)(?:都)?有(?:哪些|什么|啥)(?:房型|房间|客房)`)

	ordinalRe       = regexp.MustCompile(`第\s*([0-9一二两三四五六七八九十]+)\s*(?:家|个|间)(?:酒店|宾馆)?`)
	demonstrativeRe = regexp.MustCompile(`这家酒店|这个酒店|该酒店|这间酒店|这酒店|这家|这个|这间|它`)

	hotelLikeRe = regexp.MustCompile(hotelSuffix)
	pronounRe   = regexp.MustCompile(`你|我|您|自己|一下|什么|哪|啥`)

	roomNoiseRe = regexp.MustCompile(`还剩|剩余|剩下|剩|余房|库存|空房|有房|可订|可以订|还有|有没有|多少|几间|几个|几|什么|哪些|房间|房型|可以|可|有|还|吗|呢|啊|[？?！!。，,、\s]`)
)

func normalizeText(text string) string {
	text = strings.TrimSpace(text)
	text = politePrefixRe.ReplaceAllString(text, "")
	return strings.TrimRight(text, "？?！!。. ")
}

var chineseDigits = map[rune]int{
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4, '五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// parseOrdinal reads 1-99 written in Arabic or Chinese numerals.
func parseOrdinal(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	runes := []rune(s)
	switch len(runes) {
	case 1:
		if runes[0] == '十' {
			return 10, true
		}
		n, ok := chineseDigits[runes[0]]
		return n, ok
	case 2:
		if runes[0] == '十' {
			n, ok := chineseDigits[runes[1]]
			return 10 + n, ok
		}
		if runes[1] == '十' {
			n, ok := chineseDigits[runes[0]]
			return n * 10, ok
		}
	case 3:
		if runes[1] == '十' {
			tens, ok1 := chineseDigits[runes[0]]
			ones, ok2 := chineseDigits[runes[2]]
			return tens*10 + ones, ok1 && ok2
		}
	}
	return 0, false
}

// resolveReference looks for "the Nth one" or "this hotel" in text and
// resolves it against the context. found reports whether a referential
// phrase was present at all; span is the matched phrase.
func resolveReference(text string, cctx ChatContext) (ref HotelRef, span string, found bool) {
	if m := ordinalRe.FindStringSubmatch(text); m != nil {
		ref = HotelRef{Referential: true}
		if n, ok := parseOrdinal(m[1]); ok && n <= len(cctx.LastHotels) {
			ref.ID = cctx.LastHotels[n-1].ID
		}
		return ref, m[0], true
	}
	if span = demonstrativeRe.FindString(text); span != "" {
		ref = HotelRef{Referential: true, ID: cctx.LastHotelID}
		if ref.ID == 0 && len(cctx.LastHotels) == 1 {
			ref.ID = cctx.LastHotels[0].ID
		}
		return ref, span, true
	}
	return HotelRef{}, "", false
}

func cleanRoomToken(s string) string {
	s = roomNoiseRe.ReplaceAllString(s, "")
	return strings.TrimPrefix(s, "的")
}

// looksLikeHotelName rejects tokens that are clearly not a property name,
// such as "你能" in "你能介绍一下自己吗" or a question like "北京有哪些五星级酒店".
func looksLikeHotelName(token string) bool {
	if pronounRe.MatchString(token) {
		return false
	}
	if hotelLikeRe.MatchString(token) {
		return true
	}
	n := len([]rune(token))
	return n >= 2 && n <= 30
}

func matchCityHotels(text string, _ ChatContext) (Match, bool) {
	for _, re := range cityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		city := strings.TrimSpace(m[1])
		if city == "" || strings.ContainsAny(city, "这那") || strings.Contains(city, "附近") || hotelLikeRe.MatchString(city) {
			continue
		}
		return Match{City: city}, true
	}
	return Match{}, false
}

func matchHotelInfo(text string, cctx ChatContext) (Match, bool) {
	m := infoPattern.FindStringSubmatch(text)
	if m == nil {
		return Match{}, false
	}
	token := strings.TrimSuffix(strings.TrimSpace(m[1]), "的")
	if ref, _, ok := resolveReference(token, cctx); ok {
		return Match{Hotel: ref}, true
	}
	if !looksLikeHotelName(token) {
		return Match{}, false
	}
	return Match{Hotel: HotelRef{Name: token}}, true
}

func matchInventory(text string, cctx ChatContext) (Match, bool) {
	if !inventoryKeywordRe.MatchString(text) {
		return Match{}, false
	}
	if ref, span, ok := resolveReference(text, cctx); ok {
		rest := strings.Replace(text, span, "", 1)
		return Match{Hotel: ref, RoomName: cleanRoomToken(rest)}, true
	}
	if m := hotelNameRe.FindStringSubmatch(text); m != nil && looksLikeHotelName(m[1]) {
		return Match{Hotel: HotelRef{Name: m[1]}, RoomName: cleanRoomToken(m[2])}, true
	}
	return Match{}, false
}

func matchHotelRooms(text string, cctx ChatContext) (Match, bool) {
	if inventoryKeywordRe.MatchString(text) {
		return Match{}, false
	}
	aboutRooms := roomPhraseRe.MatchString(text)
	if aboutRooms {
		if ref, _, ok := resolveReference(text, cctx); ok {
			return Match{Hotel: ref}, true
		}
	}
	if m := hotelNameRe.FindStringSubmatch(text); m != nil && looksLikeHotelName(m[1]) {
		if aboutRooms || strings.TrimSpace(m[2]) == "" {
			return Match{Hotel: HotelRef{Name: m[1]}}, true
		}
	}
	if m := bareRoomsNameRe.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); looksLikeHotelName(name) {
			return Match{Hotel: HotelRef{Name: name}}, true
		}
	}
	return Match{}, false
}
