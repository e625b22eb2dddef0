package brief

import (
	"fmt"
	"regexp"
	"strings"
)

// Channel-independent compaction patterns. Items that match none of
// these pass through verbatim; an unexpected shape is never dropped.
var (
	stockFullRe   = regexp.MustCompile(`^(.*?)\s*\([A-Za-z]{2}\d{6}\):\s*([0-9,.]+\s*CNY)\s*\(([+-]?[0-9.]+%)`)
	stockCodeRe   = regexp.MustCompile(`\s*\([A-Za-z]{2}\d{6}\)`)
	stockPctAmtRe = regexp.MustCompile(`\(([+-]?[0-9.]+%)\s*,\s*[^)]*\)`)
	goldSpotCNYRe = regexp.MustCompile(`CNY\s*([0-9,]+(?:\.[0-9]+)?)/g`)
	cryptoAltRe   = regexp.MustCompile(`\s*\|\s*(?:CNY\s*|¥)[0-9,]+(?:\.[0-9]+)?`)
	weatherFullRe = regexp.MustCompile(`^(.*?):\s*(.*?)，当前\s*([0-9.]+°C)，体感\s*([0-9.]+°C)，最高/最低\s*([0-9.]+)/([0-9.]+)°C(?:，风速.*)?$`)
)

// compactItem reduces a canonical item to its chat-friendly form. The
// canonical document keeps full fidelity; every channel compacts.
func compactItem(topic Topic, item string) string {
	switch topic {
	case TopicWeather:
		return compactWeather(item)
	case TopicGold:
		return compactGold(item)
	case TopicCrypto:
		return compactCrypto(item)
	case TopicStocks:
		return compactStock(item)
	}
	return item
}

func compactWeather(item string) string {
	m := weatherFullRe.FindStringSubmatch(item)
	if m == nil {
		return item
	}
	return fmt.Sprintf("%s: %s %s 体感%s 高/低 %s/%s°C", m[1], m[2], m[3], m[4], m[5], m[6])
}

func compactStock(item string) string {
	if m := stockFullRe.FindStringSubmatch(item); m != nil {
		return fmt.Sprintf("%s: %s (%s)", m[1], m[2], m[3])
	}
	// Fallback: drop the exchange-code parenthetical and keep only the
	// percentage when both percentage and amount are present.
	item = stockCodeRe.ReplaceAllString(item, "")
	return stockPctAmtRe.ReplaceAllString(item, "($1)")
}

func compactGold(item string) string {
	if !strings.HasPrefix(item, "金价") {
		return item
	}
	m := goldSpotCNYRe.FindStringSubmatch(item)
	if m == nil {
		return item
	}
	return "金价: CNY " + m[1] + "/g"
}

func compactCrypto(item string) string {
	return cryptoAltRe.ReplaceAllString(item, "")
}

// RenderTelegram renders the plain bulleted text document.
func RenderTelegram(sections Sections, timestamp string) string {
	lines := []string{reportTitle}
	if timestamp != "" {
		lines = append(lines, timestampPrefix+timestamp)
	}

	for _, topic := range TopicOrder {
		lines = append(lines, divider, headerMarker[topic])
		items := sections[topic]
		if len(items) == 0 {
			lines = append(lines, bulletPrefix+noDataItem)
			continue
		}
		for _, item := range items {
			lines = append(lines, bulletPrefix+compactItem(topic, item))
		}
	}

	return strings.Join(lines, "\n")
}

// RenderServerChan renders the WeChat markdown document.
func RenderServerChan(sections Sections, timestamp string) (title, body string) {
	out := []string{"## " + plainTitle}
	if timestamp != "" {
		out = append(out, "> "+timestamp)
	}

	for _, topic := range TopicOrder {
		out = append(out, "", "### "+topicTitle[topic])
		items := sections[topic]
		if len(items) == 0 {
			out = append(out, "- "+noDataItem)
			continue
		}
		for _, item := range items {
			out = append(out, "- "+compactItem(topic, item))
		}
	}

	return plainTitle, strings.Join(out, "\n")
}

// DingTalk item decoration patterns.
var (
	dingWeatherRe    = regexp.MustCompile(`^(.*?)：\s*(.*?)\s*([0-9.]+°C)\s*体感([0-9.]+°C)\s*高/低\s*([0-9.]+)/([0-9.]+)°C$`)
	dingPnlRe        = regexp.MustCompile(`^盈亏：\s*([+-][^（(]+?)\s*[（(]([+-]?[0-9.]+%)[）)]$`)
	ding24hRe        = regexp.MustCompile(`\(\s*([+-]?[0-9.]+%)\s*/\s*24h\s*\)`)
	dingParenRe      = regexp.MustCompile(`\(([^()]+)\)`)
	dingStockPctRe   = regexp.MustCompile(`\(([+-]?[0-9.]+%)\)`)
	dingSpaceParenRe = regexp.MustCompile(`\s+（`)
)

// localizeColon replaces the first ASCII colon with its CJK form and
// trims the spacing after it.
func localizeColon(text string) string {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return text
	}
	return text[:idx] + "：" + strings.TrimLeft(text[idx+1:], " ")
}

func dingTalkItem(topic Topic, item string) string {
	text := localizeColon(strings.TrimSpace(item))

	switch topic {
	case TopicWeather:
		if m := dingWeatherRe.FindStringSubmatch(text); m != nil {
			return fmt.Sprintf("- %s：%s **%s**（体感%s） 高/低 %s/%s°C", m[1], m[2], m[3], m[4], m[5], m[6])
		}
		return "- " + text

	case TopicGold:
		for _, label := range []string{"金价", "持仓", "当前总价"} {
			if v, ok := strings.CutPrefix(text, label+"："); ok {
				return "- " + label + "：**" + strings.TrimSpace(v) + "**"
			}
		}
		if v, ok := strings.CutPrefix(text, "总成本："); ok {
			return "- 总成本：" + strings.TrimSpace(v)
		}
		if m := dingPnlRe.FindStringSubmatch(text); m != nil {
			icon := "🔴"
			if strings.HasPrefix(m[1], "+") {
				icon = "🟢"
			}
			return fmt.Sprintf("- %s 盈亏：**%s**（%s）", icon, strings.TrimSpace(m[1]), m[2])
		}
		return "- " + text

	case TopicCrypto:
		text = ding24hRe.ReplaceAllString(text, "（24h $1）")
		text = dingParenRe.ReplaceAllString(text, "（$1）")
		text = dingSpaceParenRe.ReplaceAllString(text, "（")
		return "- " + text

	case TopicStocks:
		text = dingStockPctRe.ReplaceAllString(text, "（$1）")
		text = dingSpaceParenRe.ReplaceAllString(text, "（")
		return "- " + text
	}

	return "- " + text
}

// RenderDingTalk renders the DingTalk markdown document with localized
// punctuation, bold figures, and P/L polarity markers.
func RenderDingTalk(sections Sections, timestamp string) (title, body string) {
	out := []string{"## " + reportTitle}
	if timestamp != "" {
		out = append(out, "> ⏰ "+timestamp)
	}

	for _, topic := range TopicOrder {
		out = append(out, "", "### "+headerMarker[topic])
		items := sections[topic]
		if len(items) == 0 {
			out = append(out, "- "+noDataItem)
			continue
		}
		for _, item := range items {
			out = append(out, dingTalkItem(topic, compactItem(topic, item)))
		}
	}

	return plainTitle, strings.Join(out, "\n")
}
