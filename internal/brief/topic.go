// Package brief builds the canonical daily report and transforms it
// into per-channel renderings.
package brief

// Topic identifies one section of the brief.
type Topic string

const (
	TopicWeather Topic = "weather"
	TopicGold    Topic = "gold"
	TopicCrypto  Topic = "crypto"
	TopicStocks  Topic = "stocks"
)

// TopicOrder is the fixed emission order for every rendering.
var TopicOrder = []Topic{TopicWeather, TopicGold, TopicCrypto, TopicStocks}

// headerMarker is the single shared vocabulary between the assembler
// and the parser. Both sides read this table; the markers are a wire
// format and must stay stable.
var headerMarker = map[Topic]string{
	TopicWeather: "🌤️ 天气",
	TopicGold:    "🥇 黄金",
	TopicCrypto:  "🪙 加密货币",
	TopicStocks:  "📈 A股",
}

// topicTitle is the bare section title used by markdown renderers.
var topicTitle = map[Topic]string{
	TopicWeather: "天气",
	TopicGold:    "黄金",
	TopicCrypto:  "加密货币",
	TopicStocks:  "A股",
}

const (
	reportTitle     = "🗞️ 每日资讯推送"
	plainTitle      = "每日资讯推送"
	timestampPrefix = "🕒 "
	divider         = "━━━━━━━━━━━━"
	bulletPrefix    = "• "
	noDataItem      = "暂无数据"
)

// Section is one topic and its ordered item lines.
type Section struct {
	Topic Topic
	Items []string
}

// Sections maps topics to their ordered items, as recovered by Parse.
type Sections map[Topic][]string
