package tickets

import (
	"strings"
	"time"
)

// DownloadPayload is the portable snapshot of a ticket a user can save as a
// file. Every field comes straight from the ticket or the viewer identity;
// nothing is fabricated.
type DownloadPayload struct {
	TicketID     string       `json:"ticket_id"`
	EventTitle   string       `json:"event_title"`
	EventDate    time.Time    `json:"event_date"`
	Location     string       `json:"location"`
	HolderName   string       `json:"holder_name"`
	PurchaseDate time.Time    `json:"purchase_date"`
	Status       TicketStatus `json:"status"`
}

// BuildDownloadPayload assembles the exportable snapshot for a ticket.
func BuildDownloadPayload(t Ticket, holderName string) DownloadPayload {
	return DownloadPayload{
		TicketID:     t.ID.String(),
		EventTitle:   t.Event.Title,
		EventDate:    t.Event.StartDate,
		Location:     t.Event.Location,
		HolderName:   holderName,
		PurchaseDate: t.CreatedAt,
		Status:       t.Status,
	}
}

const (
	qrPrefix    = "TICKET"
	qrDelimiter = ":"
)

// BuildQrPayload produces the deterministic string an entry scanner decodes:
// "TICKET:<ticketID>:<eventID>:<viewerID>". Pure and total for any status;
// the HTTP layer only exposes it for confirmed tickets.
func BuildQrPayload(t Ticket, viewerID string) string {
	return strings.Join([]string{qrPrefix, t.ID.String(), t.EventID.String(), viewerID}, qrDelimiter)
}
