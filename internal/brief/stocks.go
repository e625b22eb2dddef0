package brief

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/pkg/eastmoney"
)

var (
	prefixedCodeRe = regexp.MustCompile(`^(sh|sz)(\d{6})$`)
	bareCodeRe     = regexp.MustCompile(`^\d{6}$`)
	codeSplitRe    = regexp.MustCompile(`[,\s]+`)
)

// NormalizeCode validates a ticker and derives its display form and the
// Eastmoney secid. Bare 6-digit codes starting with 5, 6, or 9 trade on
// Shanghai; the rest on Shenzhen. Already-prefixed codes are accepted
// as-is, case-insensitively.
func NormalizeCode(raw string) (display, secid string, err error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return "", "", eris.New("空股票代码")
	}

	var market, digits string
	switch {
	case prefixedCodeRe.MatchString(code):
		m := prefixedCodeRe.FindStringSubmatch(code)
		market, digits = m[1], m[2]
	case bareCodeRe.MatchString(code):
		digits = code
		if strings.HasPrefix(digits, "5") || strings.HasPrefix(digits, "6") || strings.HasPrefix(digits, "9") {
			market = "sh"
		} else {
			market = "sz"
		}
	default:
		return "", "", eris.Errorf("不支持的股票代码格式: %s", raw)
	}

	marketID := "0"
	if market == "sh" {
		marketID = "1"
	}
	return strings.ToUpper(market) + digits, marketID + "." + digits, nil
}

// SplitCodes splits a comma or whitespace separated ticker list.
func SplitCodes(raw string) []string {
	var codes []string
	for _, c := range codeSplitRe.Split(strings.TrimSpace(raw), -1) {
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// StocksBuilder builds the A-share section, one item per configured
// ticker. Every failure stays confined to its own item.
type StocksBuilder struct {
	client eastmoney.Client
	codes  string
}

// NewStocksBuilder creates a StocksBuilder.
func NewStocksBuilder(client eastmoney.Client, codes string) *StocksBuilder {
	return &StocksBuilder{client: client, codes: codes}
}

// Topic implements Builder.
func (b *StocksBuilder) Topic() Topic { return TopicStocks }

// Build implements Builder.
func (b *StocksBuilder) Build(ctx context.Context) []string {
	codes := SplitCodes(b.codes)
	if len(codes) == 0 {
		return []string{"未配置股票代码"}
	}

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		line, err := b.line(ctx, code)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: 获取失败 (%s)", code, err.Error()))
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func (b *StocksBuilder) line(ctx context.Context, code string) (string, error) {
	display, secid, err := NormalizeCode(code)
	if err != nil {
		return "", err
	}

	q, err := b.client.Quote(ctx, secid)
	if err != nil {
		return "", err
	}

	name := q.Name
	if name == "" {
		name = display
	}

	price := q.Price
	if price == nil {
		price = q.PrevClose
	}
	if price == nil {
		return fmt.Sprintf("%s (%s): 暂无价格", name, display), nil
	}

	if q.ChangePct == nil {
		return fmt.Sprintf("%s (%s): %.2f CNY", name, display, *price), nil
	}

	amount := "N/A"
	if q.ChangeAmt != nil {
		amount = signedAmount(*q.ChangeAmt)
	}
	return fmt.Sprintf("%s (%s): %.2f CNY (%s, %s)",
		name, display, *price, signedPct(*q.ChangePct), amount), nil
}

func signedAmount(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
