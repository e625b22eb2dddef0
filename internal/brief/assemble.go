package brief

import (
	"strings"
	"time"
)

// ResolveZone loads the configured time zone, falling back to UTC when
// the name is invalid.
func ResolveZone(name string) (*time.Location, string) {
	loc, err := time.LoadLocation(name)
	if err != nil || name == "" {
		return time.UTC, "UTC"
	}
	return loc, name
}

// Assemble renders the canonical report document from ordered sections.
// All four topics are always emitted, in fixed order; a topic with no
// section gets the no-data placeholder as its sole item. The document's
// textual grammar is the only contract between builders and renderers.
func Assemble(sections []Section, now time.Time, zoneName string) string {
	byTopic := make(map[Topic][]string, len(sections))
	for _, s := range sections {
		byTopic[s.Topic] = s.Items
	}

	lines := []string{
		reportTitle,
		timestampPrefix + now.Format("2006-01-02 15:04") + " (" + zoneName + ")",
	}

	for _, topic := range TopicOrder {
		lines = append(lines, divider, headerMarker[topic])
		items := byTopic[topic]
		if len(items) == 0 {
			items = []string{noDataItem}
		}
		for _, item := range items {
			lines = append(lines, bulletPrefix+item)
		}
	}

	return strings.Join(lines, "\n")
}
