package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"hotel-marketplace/models"
)

const (
	replyAskWhichHotel = "请告诉我您想了解哪家酒店，可以直接说酒店名称，或者先问“某城市有哪些酒店”。"
	replyLLMFailed     = "抱歉，智能助手暂时无法回答，请稍后再试。"
)

func price(p float64) string {
	return "¥" + strconv.FormatFloat(p, 'f', -1, 64)
}

func starText(star int) string {
	if star <= 0 {
		return "未评星"
	}
	return fmt.Sprintf("%d星", star)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func formatCityHotels(city string, hits []CityHotel) string {
	if len(hits) == 0 {
		return fmt.Sprintf("暂时没有找到%s的已上架酒店。", city)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "为您找到%s的%d家酒店：\n", city, len(hits))
	for i, hit := range hits {
		h := hit.Hotel
		fmt.Fprintf(&b, "%d. %s", i+1, h.NameCn)
		if h.NameEn != "" {
			fmt.Fprintf(&b, "（%s）", h.NameEn)
		}
		fmt.Fprintf(&b, "，%s，%s", starText(h.Star), h.Address)
		if hit.Cheapest != nil {
			fmt.Fprintf(&b, "，%s %s起", hit.Cheapest.Name, price(hit.Cheapest.Price))
		}
		b.WriteString("\n")
	}
	b.WriteString("可以继续问“第一家的详情”或“第二家还剩什么房间”。")
	return b.String()
}

func formatHotelInfo(h models.Hotel) string {
	var b strings.Builder
	b.WriteString(h.NameCn)
	if h.NameEn != "" {
		fmt.Fprintf(&b, "（%s）", h.NameEn)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "城市：%s\n", h.City)
	fmt.Fprintf(&b, "地址：%s\n", h.Address)
	fmt.Fprintf(&b, "星级：%s\n", starText(h.Star))
	if h.OpenTime != "" {
		fmt.Fprintf(&b, "开业时间：%s\n", h.OpenTime)
	}
	if len(h.Facilities) > 0 {
		fmt.Fprintf(&b, "设施：%s\n", strings.Join(h.Facilities, "、"))
	}
	if d := strings.TrimSpace(h.Description); d != "" {
		fmt.Fprintf(&b, "简介：%s\n", d)
	}
	if h.Latitude != nil && h.Longitude != nil {
		fmt.Fprintf(&b, "坐标：%s, %s\n",
			strconv.FormatFloat(*h.Longitude, 'f', -1, 64), strconv.FormatFloat(*h.Latitude, 'f', -1, 64))
	}
	b.WriteString("想看房型余量可以问“这家酒店还剩什么房间”。")
	return b.String()
}

func roomLine(b *strings.Builder, r models.Room, withStock bool) {
	fmt.Fprintf(b, "- %s：%s", r.Name, price(r.Price))
	if withStock {
		fmt.Fprintf(b, "，剩余%d/%d间", r.AvailableRooms, r.TotalRooms)
	}
	var meta []string
	if v := deref(r.BedType); v != "" {
		meta = append(meta, v)
	}
	if v := deref(r.Area); v != "" {
		meta = append(meta, v)
	}
	if v := deref(r.Breakfast); v != "" {
		meta = append(meta, v)
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "（%s）", strings.Join(meta, "，"))
	}
	b.WriteString("\n")
}

func formatInventory(h models.Hotel, rooms []models.Room) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s目前可订的房型：\n", h.NameCn)
	for _, r := range rooms {
		roomLine(&b, r, true)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRooms(h models.Hotel, rooms []models.Room) string {
	if len(rooms) == 0 {
		return fmt.Sprintf("%s暂未录入房型信息。", h.NameCn)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s共有%d种房型：\n", h.NameCn, len(rooms))
	for _, r := range rooms {
		roomLine(&b, r, r.TotalRooms > 0)
	}
	return strings.TrimRight(b.String(), "\n")
}

func replyHotelNotFound(name string) string {
	if name == "" {
		return "没有找到这家酒店，它可能已下线。"
	}
	return fmt.Sprintf("没有找到名为“%s”的已上架酒店，请确认酒店名称。", name)
}

func replyNoRoomNamed(h models.Hotel, room string) string {
	return fmt.Sprintf("%s没有名称包含“%s”的房型，请确认房型名称。", h.NameCn, room)
}

func replyNoStock(h models.Hotel, room string) string {
	if room != "" {
		return fmt.Sprintf("%s的“%s”目前没有余房。", h.NameCn, room)
	}
	if h.NameCn == "" {
		return "目前没有余房。"
	}
	return fmt.Sprintf("%s目前没有余房。", h.NameCn)
}
