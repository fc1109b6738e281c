package notify

import (
	"slices"
	"strconv"
)

const (
	// DefaultDisplayLimit is the number of notifications shown in the panel.
	DefaultDisplayLimit = 3

	// BadgeCap is the largest count the badge shows as a number.
	BadgeCap = 9
)

// MergeReadState returns a copy of catalog where each entry is read if it
// was read by default or isRead reports its ID as read. Order and length
// match catalog. A nil isRead applies catalog defaults only.
func MergeReadState(catalog []Notification, isRead func(id string) bool) []Notification {
	out := make([]Notification, len(catalog))
	for i, n := range catalog {
		if !n.IsRead && isRead != nil && isRead(n.ID) {
			n.IsRead = true
		}
		out[i] = n
	}
	return out
}

// UnreadCount returns the number of entries in list that are not read.
func UnreadCount(list []Notification) int {
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// BadgeDisplay returns the text for the bell badge. The second return value
// is false when no badge should be shown.
func BadgeDisplay(count int) (string, bool) {
	switch {
	case count <= 0:
		return "", false
	case count > BadgeCap:
		return strconv.Itoa(BadgeCap) + "+", true
	default:
		return strconv.Itoa(count), true
	}
}

// TopByRecency returns up to n entries of list ordered newest first. Entries
// with equal timestamps keep their relative order from list. The input is
// not modified.
func TopByRecency(list []Notification, n int) []Notification {
	if n <= 0 || len(list) == 0 {
		return []Notification{}
	}

	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterByCategory returns the entries of list whose category is in cats.
// An empty cats returns list unchanged.
func FilterByCategory(list []Notification, cats ...Category) []Notification {
	if len(cats) == 0 {
		return list
	}

	out := make([]Notification, 0, len(list))
	for _, n := range list {
		if slices.Contains(cats, n.Category) {
			out = append(out, n)
		}
	}
	return out
}

// UnreadOnly returns the entries of list that are not read.
func UnreadOnly(list []Notification) []Notification {
	out := make([]Notification, 0, len(list))
	for _, n := range list {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}
