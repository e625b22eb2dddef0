package brief

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Builder produces the items for one topic. Implementations absorb
// their own failures into placeholder items; Build never aborts the
// report.
type Builder interface {
	Topic() Topic
	Build(ctx context.Context) []string
}

// BuildSections runs the builders in parallel. Each builder writes only
// its own section, and section order follows builder order.
func BuildSections(ctx context.Context, builders []Builder) []Section {
	sections := make([]Section, len(builders))

	eg, gctx := errgroup.WithContext(ctx)
	for i, b := range builders {
		eg.Go(func() error {
			sections[i] = Section{Topic: b.Topic(), Items: b.Build(gctx)}
			return nil
		})
	}
	_ = eg.Wait()

	return sections
}

// enPrinter renders prices with thousands grouping ("65,000.00").
var enPrinter = message.NewPrinter(language.English)

func money(v float64) string {
	return enPrinter.Sprintf("%.2f", v)
}

// signedMoney keeps an explicit sign on the leading value token; the
// DingTalk renderer derives the polarity marker from it.
func signedMoney(v float64) string {
	if v >= 0 {
		return "+" + money(v)
	}
	return "-" + money(-v)
}

func signedPct(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}
