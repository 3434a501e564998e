package services

import (
	"sort"
	"strings"

	"github.com/andy2804/iros22-timetable"
)

// Tags counts the keywords of the sessions, most used first.
func Tags(sessions []timetable.Session) []timetable.TagCount {
	counts := make(map[string]int)
	for _, session := range sessions {
		if session.Keywords == "" {
			continue
		}

		for _, kw := range strings.Split(session.Keywords, ", ") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				counts[kw]++
			}
		}
	}

	tags := make([]timetable.TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, timetable.TagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	return tags
}
