package brief

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/quote"
	"github.com/smhjw/daily-telegram-brief/pkg/binance"
	"github.com/smhjw/daily-telegram-brief/pkg/coingecko"
	"github.com/smhjw/daily-telegram-brief/pkg/gateio"
)

// CryptoBuilder builds the crypto section from a three-provider
// fallback chain: CoinGecko, then Binance, then Gate.io.
type CryptoBuilder struct {
	gecko coingecko.Client
	bnb   binance.Client
	gate  gateio.Client
}

// NewCryptoBuilder creates a CryptoBuilder.
func NewCryptoBuilder(gecko coingecko.Client, bnb binance.Client, gate gateio.Client) *CryptoBuilder {
	return &CryptoBuilder{gecko: gecko, bnb: bnb, gate: gate}
}

// Topic implements Builder.
func (b *CryptoBuilder) Topic() Topic { return TopicCrypto }

func (b *CryptoBuilder) attempts() []quote.Attempt {
	return []quote.Attempt{
		{
			Name:    "CoinGecko",
			Timeout: 10 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				p, err := b.gecko.BitcoinPrice(ctx)
				if err != nil {
					return nil, err
				}
				if p.USD == nil {
					return nil, eris.New("返回空价格")
				}
				return &quote.Quote{Price: *p.USD, ChangePct: p.USD24hChange, AltPrice: p.CNY}, nil
			},
		},
		{
			Name:    "Binance",
			Timeout: 8 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				t, err := b.bnb.Ticker24h(ctx, "BTCUSDT")
				if err != nil {
					return nil, err
				}
				price, ok := quote.ParseFloat(t.LastPrice)
				if !ok {
					return nil, eris.New("返回空价格")
				}
				q := &quote.Quote{Price: price}
				if change, ok := quote.ParseFloat(t.PriceChangePercent); ok {
					q.ChangePct = &change
				}
				return q, nil
			},
		},
		{
			Name:    "Gate.io",
			Timeout: 8 * time.Second,
			Fetch: func(ctx context.Context) (*quote.Quote, error) {
				t, err := b.gate.SpotTicker(ctx, "BTC_USDT")
				if err != nil {
					return nil, err
				}
				price, ok := quote.ParseFloat(t.Last)
				if !ok {
					return nil, eris.New("返回空价格")
				}
				q := &quote.Quote{Price: price}
				if change, ok := quote.ParseFloat(t.ChangePercentage); ok {
					q.ChangePct = &change
				}
				return q, nil
			},
		},
	}
}

// Build implements Builder.
func (b *CryptoBuilder) Build(ctx context.Context) []string {
	attempts := b.attempts()

	q, err := quote.Resolve(ctx, attempts)
	if err != nil {
		return []string{"BTC 获取失败: " + err.Error()}
	}

	var sb strings.Builder
	sb.WriteString("BTC: $")
	sb.WriteString(money(q.Price))
	if q.AltPrice != nil {
		sb.WriteString(" | ¥")
		sb.WriteString(money(*q.AltPrice))
	}
	if q.ChangePct != nil {
		sb.WriteString(" (")
		sb.WriteString(signedPct(*q.ChangePct))
		sb.WriteString(" / 24h)")
	}
	// Name the source when a fallback answered instead of the primary.
	if q.Source != attempts[0].Name {
		sb.WriteString(" (")
		sb.WriteString(q.Source)
		sb.WriteString(")")
	}
	return []string{sb.String()}
}
