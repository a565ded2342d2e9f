// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records them.
package queue

// Ticket lifecycle actions carried in TicketEvent.Action.
const (
	ActionReserved  = "RESERVED"
	ActionPurchased = "PURCHASED"
	ActionConfirmed = "CONFIRMED"
	ActionCancelled = "CANCELLED"
	ActionExpired   = "EXPIRED"
)

// TicketEvent is published whenever a ticket changes state: reserved,
// purchased outright, confirmed from a reservation, cancelled or swept
// by the expiry job. It carries enough identity for downstream consumers
// to log or notify without querying the service.
type TicketEvent struct {
	TicketID int     `json:"ticket_id"`
	Username string  `json:"username"`
	Home     string  `json:"home"`
	Away     string  `json:"away"`
	Kickoff  string  `json:"kickoff"`
	Venue    string  `json:"venue"`
	Sector   string  `json:"sector"`
	Row      int     `json:"row"`
	Seat     int     `json:"seat"`
	Action   string  `json:"action"`
	Price    float64 `json:"price,omitempty"`
	At       string  `json:"at"`
}
