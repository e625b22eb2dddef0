package brief

import "strings"

// topicByMarker is the reverse view of headerMarker.
var topicByMarker = func() map[string]Topic {
	m := make(map[string]Topic, len(headerMarker))
	for topic, marker := range headerMarker {
		m[marker] = topic
	}
	return m
}()

// Parse recovers the sections and the timestamp string from a canonical
// report. Decoration is stripped from items; lines matching neither a
// header marker nor a bullet are dropped. This boundary is deliberately
// lossy: the parser recovers only what renderers need. A document with
// no recognizable headers yields empty sections rather than an error.
func Parse(report string) (Sections, string) {
	sections := make(Sections)
	timestamp := ""

	current := Topic("")
	for _, raw := range strings.Split(report, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, timestampPrefix); ok {
			timestamp = strings.TrimSpace(rest)
			continue
		}

		if topic, ok := topicByMarker[line]; ok {
			current = topic
			if _, seen := sections[topic]; !seen {
				sections[topic] = nil
			}
			continue
		}

		if item, ok := strings.CutPrefix(line, bulletPrefix); ok && current != "" {
			sections[current] = append(sections[current], strings.TrimSpace(item))
		}
	}

	return sections, timestamp
}
