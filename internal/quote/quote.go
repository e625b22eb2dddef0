// Package quote resolves a single logical market quantity through an
// ordered chain of independent data providers.
package quote

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Quote is a resolved price with optional secondary fields.
type Quote struct {
	// Price is the primary value, always finite and positive.
	Price float64
	// ChangePct is the 24h change percentage, when the provider reports one.
	ChangePct *float64
	// AltPrice is the same asset in an alternate currency, when available.
	AltPrice *float64
	// Source is the name of the provider that actually answered.
	Source string
}

// Attempt is one callable strategy for obtaining a quantity.
type Attempt struct {
	// Name attributes failures to a specific provider.
	Name string
	// Timeout bounds this attempt's request.
	Timeout time.Duration
	// Fetch performs the call and maps the payload to a Quote.
	Fetch func(ctx context.Context) (*Quote, error)
}

// Failure records one provider's failure reason.
type Failure struct {
	Provider string
	Reason   string
}

// ExhaustedError is returned when every attempt in a chain failed. It
// preserves each provider's reason in call order.
type ExhaustedError struct {
	Failures []Failure
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Provider+"失败: "+f.Reason)
	}
	return strings.Join(parts, "; ")
}

// Resolve tries each attempt in order and returns the first usable quote.
// Later attempts run only if earlier ones failed; provider preference
// order is part of the contract. On exhaustion it returns an
// *ExhaustedError listing every provider and its reason.
func Resolve(ctx context.Context, attempts []Attempt) (*Quote, error) {
	exhausted := &ExhaustedError{}

	for _, a := range attempts {
		q, err := runAttempt(ctx, a)
		if err != nil {
			zap.L().Debug("quote: provider failed, trying next",
				zap.String("provider", a.Name),
				zap.Error(err),
			)
			exhausted.Failures = append(exhausted.Failures, Failure{Provider: a.Name, Reason: err.Error()})
			continue
		}
		q.Source = a.Name
		return q, nil
	}

	return nil, exhausted
}

func runAttempt(ctx context.Context, a Attempt) (*Quote, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	q, err := a.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if q == nil || !usable(q.Price) {
		return nil, errEmptyPrice
	}
	// Secondary fields are best effort; drop unusable values silently.
	if q.ChangePct != nil && !finite(*q.ChangePct) {
		q.ChangePct = nil
	}
	if q.AltPrice != nil && !usable(*q.AltPrice) {
		q.AltPrice = nil
	}
	return q, nil
}

type emptyPriceError struct{}

func (emptyPriceError) Error() string { return "返回空价格" }

var errEmptyPrice = emptyPriceError{}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func usable(v float64) bool {
	return finite(v) && v > 0
}

// ParseFloat parses a provider's numeric field. Empty strings and a lone
// dash are sentinels for "absent", not zero.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}
