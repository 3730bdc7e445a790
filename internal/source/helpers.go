package source

import (
	"strings"
	"time"
)

// Default applied when a provider omits attendance figures.
const defaultAttendance = 1000

// pickStr returns the first non-empty string value among keys.
func pickStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				s2 := strings.TrimSpace(s)
				if s2 != "" {
					return s2
				}
			}
		}
	}
	return ""
}

// dig walks nested map[string]any payloads; returns nil when any hop is missing.
func dig(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = mm[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// digStr is dig with a string result, empty when absent or not a string.
func digStr(m map[string]any, keys ...string) string {
	s, _ := dig(m, keys...).(string)
	return strings.TrimSpace(s)
}

// firstMap returns the first element of a []any holding maps, nil otherwise.
func firstMap(v any) map[string]any {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	m, _ := arr[0].(map[string]any)
	return m
}

// parseEventTime accepts the timestamp formats seen across providers and
// falls back to midnight of the queried day when nothing parses.
func parseEventTime(s string, day time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func defaultDur(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
