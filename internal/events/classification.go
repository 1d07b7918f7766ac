package events

import (
	"slices"

	"eventfinder/pkg/ticketmaster"
)

// ClassificationNames returns the sorted, unique segment names, falling back
// to the type name for classifications without a segment.
func ClassificationNames(classifications []ticketmaster.Classification) []string {
	seen := map[string]struct{}{}
	for _, c := range classifications {
		switch {
		case c.Segment != nil && c.Segment.Name != "":
			seen[c.Segment.Name] = struct{}{}
		case c.Type != nil && c.Type.Name != "":
			seen[c.Type.Name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
