package tickets

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTicket(status TicketStatus, title, description, location string) Ticket {
	return Ticket{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		EventID: uuid.New(),
		Status:  status,
		Event: Event{
			Title:       title,
			Description: description,
			Location:    location,
			StartDate:   time.Now().Add(24 * time.Hour),
		},
	}
}

func TestFilterAndBucket_EmptyInput(t *testing.T) {
	view := FilterAndBucket(nil, FilterQuery{})

	assert.Empty(t, view.Filtered)
	require.Len(t, view.Buckets, 4)
	for _, s := range KnownStatuses() {
		assert.Empty(t, view.Buckets[s], "bucket %q must exist and be empty", s)
	}
}

func TestFilterAndBucket_EmptySearchMatchesEverything(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "Lao Music Festival", "", "Vientiane"),
		makeTicket(TicketStatusPending, "Tech Meetup", "monthly gathering", ""),
	}

	view := FilterAndBucket(input, FilterQuery{Search: ""})

	assert.Len(t, view.Filtered, 2)
}

func TestFilterAndBucket_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "Lao Music Festival", "", "Vientiane"),
		makeTicket(TicketStatusConfirmed, "Tech Meetup", "", "Luang Prabang"),
	}

	view := FilterAndBucket(input, FilterQuery{Search: "MUSIC"})

	require.Len(t, view.Filtered, 1)
	assert.Equal(t, "Lao Music Festival", view.Filtered[0].Event.Title)
}

func TestFilterAndBucket_SearchCoversDescriptionAndLocation(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusPending, "Show A", "an evening of jazz", ""),
		makeTicket(TicketStatusPending, "Show B", "", "Riverside Arena"),
		makeTicket(TicketStatusPending, "Show C", "", ""),
	}

	assert.Len(t, FilterAndBucket(input, FilterQuery{Search: "jazz"}).Filtered, 1)
	assert.Len(t, FilterAndBucket(input, FilterQuery{Search: "riverside"}).Filtered, 1)
	// missing optional fields never match, never panic
	assert.Empty(t, FilterAndBucket(input, FilterQuery{Search: "opera"}).Filtered)
}

func TestFilterAndBucket_StatusFilter(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "A", "", ""),
		makeTicket(TicketStatusPending, "B", "", ""),
		makeTicket(TicketStatusConfirmed, "C", "", ""),
	}

	view := FilterAndBucket(input, FilterQuery{Status: "confirmed"})

	require.Len(t, view.Filtered, 2)
	for _, ticket := range view.Filtered {
		assert.Equal(t, TicketStatusConfirmed, ticket.Status)
	}
}

func TestFilterAndBucket_StatusAllKeepsEverything(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "A", "", ""),
		makeTicket(TicketStatusUsed, "B", "", ""),
	}

	view := FilterAndBucket(input, FilterQuery{Status: StatusFilterAll})

	assert.Len(t, view.Filtered, 2)
}

func TestFilterAndBucket_UnknownStatusFilterMatchesNothing(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "A", "", ""),
	}

	view := FilterAndBucket(input, FilterQuery{Status: "archived"})

	assert.Empty(t, view.Filtered)
	for _, s := range KnownStatuses() {
		assert.Empty(t, view.Buckets[s])
	}
}

func TestFilterAndBucket_UnknownRecordStatusStaysOutOfBuckets(t *testing.T) {
	odd := makeTicket(TicketStatus("refunding"), "Strange", "", "")
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "Normal", "", ""),
		odd,
	}

	view := FilterAndBucket(input, FilterQuery{})

	// stays in the filtered sequence
	require.Len(t, view.Filtered, 2)
	// but lands in no bucket, and no extra bucket appears
	require.Len(t, view.Buckets, 4)
	total := 0
	for _, bucket := range view.Buckets {
		total += len(bucket)
	}
	assert.Equal(t, 1, total)
}

func TestFilterAndBucket_PreservesInputOrder(t *testing.T) {
	newest := makeTicket(TicketStatusPending, "Newest", "", "")
	middle := makeTicket(TicketStatusPending, "Middle", "", "")
	oldest := makeTicket(TicketStatusPending, "Oldest", "", "")

	view := FilterAndBucket([]Ticket{newest, middle, oldest}, FilterQuery{})

	require.Len(t, view.Filtered, 3)
	assert.Equal(t, newest.ID, view.Filtered[0].ID)
	assert.Equal(t, middle.ID, view.Filtered[1].ID)
	assert.Equal(t, oldest.ID, view.Filtered[2].ID)
	assert.Equal(t, newest.ID, view.Buckets[TicketStatusPending][0].ID)
}

func TestFilterAndBucket_BucketUnionIsSubsetOfFiltered(t *testing.T) {
	input := []Ticket{
		makeTicket(TicketStatusConfirmed, "Concert", "", "Hall"),
		makeTicket(TicketStatusPending, "Concert", "", "Hall"),
		makeTicket(TicketStatusUsed, "Football", "", "Stadium"),
		makeTicket(TicketStatus("mystery"), "Concert", "", "Hall"),
	}

	view := FilterAndBucket(input, FilterQuery{Search: "concert"})

	filteredIDs := make(map[uuid.UUID]bool, len(view.Filtered))
	for _, ticket := range view.Filtered {
		filteredIDs[ticket.ID] = true
	}
	for status, bucket := range view.Buckets {
		for _, ticket := range bucket {
			assert.True(t, filteredIDs[ticket.ID], "bucket %q holds a ticket missing from filtered", status)
			assert.Equal(t, status, ticket.Status)
		}
	}
}
