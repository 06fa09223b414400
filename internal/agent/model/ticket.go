package model

import (
	"strings"
	"time"
)

// Fallbacks used when the extraction stage never filled a field. The finalize
// stage degrades to these rather than failing the run.
const (
	UnknownEventName = "Unknown Event"
	UnknownEventDate = "Unknown Date"
)

// Fixed default contract parameters for a newly synthesized ticket.
const (
	DefaultTicketPrice    = "0.01"
	DefaultTicketCurrency = "ETH"
	DefaultMaxSupply      = 100
	DefaultTransferable   = true
	DefaultBurnable       = false
)

// TicketObject describes a ticket-issuance request. It is a description only;
// nothing downstream is validated or executed here.
type TicketObject struct {
	EventName    string    `json:"eventName"`
	EventDate    string    `json:"eventDate"`
	Price        string    `json:"price"`
	Currency     string    `json:"currency"`
	MaxSupply    int       `json:"maxSupply"`
	Transferable bool      `json:"transferable"`
	Burnable     bool      `json:"burnable"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewTicketObject builds a ticket from the extracted fields plus the fixed
// contract defaults. Blank fields fall back to the Unknown placeholders.
func NewTicketObject(eventName, eventDate string, now time.Time) *TicketObject {
	if strings.TrimSpace(eventName) == "" {
		eventName = UnknownEventName
	}
	if strings.TrimSpace(eventDate) == "" {
		eventDate = UnknownEventDate
	}
	return &TicketObject{
		EventName:    eventName,
		EventDate:    eventDate,
		Price:        DefaultTicketPrice,
		Currency:     DefaultTicketCurrency,
		MaxSupply:    DefaultMaxSupply,
		Transferable: DefaultTransferable,
		Burnable:     DefaultBurnable,
		CreatedAt:    now.UTC(),
	}
}
