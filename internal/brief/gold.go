package brief

import (
	"context"
	"fmt"
	"time"

	"github.com/smhjw/daily-telegram-brief/internal/config"
	"github.com/smhjw/daily-telegram-brief/internal/quote"
	"github.com/smhjw/daily-telegram-brief/pkg/erapi"
	"github.com/smhjw/daily-telegram-brief/pkg/goldapi"
	"github.com/smhjw/daily-telegram-brief/pkg/swissquote"
)

// gramsPerTroyOunce converts a per-ounce spot price to per-gram.
const gramsPerTroyOunce = 31.1034768

// GoldBuilder builds the gold section: spot price in USD/oz and CNY/g,
// plus holding valuation and profit/loss when a holding is configured.
type GoldBuilder struct {
	gold  goldapi.Client
	swiss swissquote.Client
	fx    erapi.Client
	cfg   config.GoldConfig
}

// NewGoldBuilder creates a GoldBuilder.
func NewGoldBuilder(gold goldapi.Client, swiss swissquote.Client, fx erapi.Client, cfg config.GoldConfig) *GoldBuilder {
	return &GoldBuilder{gold: gold, swiss: swiss, fx: fx, cfg: cfg}
}

// Topic implements Builder.
func (b *GoldBuilder) Topic() Topic { return TopicGold }

func (b *GoldBuilder) spotAttempts() []quote.Attempt {
	return []quote.Attempt{
		{
			Name:    "GoldAPI",
			Timeout: 10 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				p, err := b.gold.SpotPrice(ctx, "XAU")
				if err != nil {
					return nil, err
				}
				return &quote.Quote{Price: p.Price}, nil
			},
		},
		{
			Name:    "Swissquote",
			Timeout: 10 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				mid, err := b.swiss.InstrumentQuote(ctx, "XAU", "USD")
				if err != nil {
					return nil, err
				}
				return &quote.Quote{Price: mid}, nil
			},
		},
	}
}

func (b *GoldBuilder) fxAttempts() []quote.Attempt {
	return []quote.Attempt{
		{
			Name:    "ER-API",
			Timeout: 10 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				rate, err := b.fx.Rate(ctx, "USD", "CNY")
				if err != nil {
					return nil, err
				}
				return &quote.Quote{Price: rate}, nil
			},
		},
	}
}

// Build implements Builder.
func (b *GoldBuilder) Build(ctx context.Context) []string {
	spot, err := quote.Resolve(ctx, b.spotAttempts())
	if err != nil {
		return []string{"黄金获取失败: " + err.Error()}
	}

	fx, err := quote.Resolve(ctx, b.fxAttempts())
	if err != nil {
		return []string{"黄金获取失败: " + err.Error()}
	}

	cnyPerGram := spot.Price * fx.Price / gramsPerTroyOunce

	lines := []string{
		fmt.Sprintf("金价: $%s/oz | CNY %s/g", money(spot.Price), money(cnyPerGram)),
	}

	if b.cfg.HoldingGrams <= 0 {
		return lines
	}

	current := cnyPerGram * b.cfg.HoldingGrams
	lines = append(lines,
		fmt.Sprintf("持仓: %.1fg", b.cfg.HoldingGrams),
		fmt.Sprintf("当前总价: CNY %s", money(current)),
	)

	// Cost basis: explicit total first, else derived from per-gram cost.
	cost := b.cfg.TotalCostCNY
	if cost <= 0 && b.cfg.CostPerGramCNY > 0 {
		cost = b.cfg.CostPerGramCNY * b.cfg.HoldingGrams
	}
	if cost <= 0 {
		return lines
	}

	pnl := current - cost
	lines = append(lines,
		fmt.Sprintf("总成本: CNY %s", money(cost)),
		fmt.Sprintf("盈亏: %s CNY (%s)", signedMoney(pnl), signedPct(pnl/cost*100)),
	)
	return lines
}
