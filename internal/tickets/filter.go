package tickets

import "strings"

// FilterQuery holds the predicates a ticket browsing view applies.
type FilterQuery struct {
	// Search is matched case-insensitively against the event title,
	// description and location. Empty matches everything.
	Search string
	// Status narrows to a single status; empty or "all" keeps every status.
	Status string
}

// FilteredView is the derived state of a ticket list under a FilterQuery.
type FilteredView struct {
	// Filtered preserves input order (the repository already orders
	// reverse-chronologically).
	Filtered []Ticket
	// Buckets partitions Filtered by known status. A ticket carrying a
	// status outside KnownStatuses stays in Filtered but lands in no bucket.
	Buckets map[TicketStatus][]Ticket
}

// FilterAndBucket recomputes the filtered and status-partitioned view of
// tickets. Pure and total: no input slice is mutated, every known status has
// a bucket (possibly empty), and an unknown status filter simply matches
// nothing.
func FilterAndBucket(tickets []Ticket, q FilterQuery) FilteredView {
	view := FilteredView{
		Filtered: make([]Ticket, 0, len(tickets)),
		Buckets:  make(map[TicketStatus][]Ticket, 4),
	}
	for _, s := range KnownStatuses() {
		view.Buckets[s] = []Ticket{}
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))

	for _, t := range tickets {
		if !matchesSearch(t, needle) {
			continue
		}
		if q.Status != "" && q.Status != StatusFilterAll && string(t.Status) != q.Status {
			continue
		}

		view.Filtered = append(view.Filtered, t)
		if bucket, known := view.Buckets[t.Status]; known {
			view.Buckets[t.Status] = append(bucket, t)
		}
	}

	return view
}

func matchesSearch(t Ticket, needle string) bool {
	if needle == "" {
		return true
	}

	// Description and location are optional; their zero value is the empty
	// string, which simply never matches.
	for _, field := range []string{t.Event.Title, t.Event.Description, t.Event.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
