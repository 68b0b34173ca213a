package tickets

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildQrPayload_ExactFormat(t *testing.T) {
	ticketID := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000001")
	eventID := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000002")

	ticket := Ticket{
		ID:      ticketID,
		EventID: eventID,
		Status:  TicketStatusConfirmed,
	}

	payload := BuildQrPayload(ticket, "u1")

	assert.Equal(t, fmt.Sprintf("TICKET:%s:%s:u1", ticketID, eventID), payload)
}

func TestBuildQrPayload_TotalForAnyStatus(t *testing.T) {
	ticket := Ticket{
		ID:      uuid.New(),
		EventID: uuid.New(),
	}

	for _, status := range append(KnownStatuses(), TicketStatus("unknown")) {
		ticket.Status = status
		assert.NotEmpty(t, BuildQrPayload(ticket, "viewer"))
	}
}

func TestBuildDownloadPayload_OnlyInputFields(t *testing.T) {
	start := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)
	purchased := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	ticket := Ticket{
		ID:        uuid.New(),
		Status:    TicketStatusConfirmed,
		CreatedAt: purchased,
		Event: Event{
			Title:     "Lao Music Festival",
			Location:  "Vientiane",
			StartDate: start,
		},
	}

	payload := BuildDownloadPayload(ticket, "Khamphay")

	assert.Equal(t, ticket.ID.String(), payload.TicketID)
	assert.Equal(t, "Lao Music Festival", payload.EventTitle)
	assert.Equal(t, start, payload.EventDate)
	assert.Equal(t, "Vientiane", payload.Location)
	assert.Equal(t, "Khamphay", payload.HolderName)
	assert.Equal(t, purchased, payload.PurchaseDate)
	assert.Equal(t, TicketStatusConfirmed, payload.Status)
}

func TestBuildDownloadPayload_MissingOptionalFieldsDegrade(t *testing.T) {
	ticket := Ticket{ID: uuid.New(), Status: TicketStatusPending}

	payload := BuildDownloadPayload(ticket, "")

	assert.Empty(t, payload.Location)
	assert.Empty(t, payload.HolderName)
}
