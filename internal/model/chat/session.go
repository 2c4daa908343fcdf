package chat

import "time"

// Session captures a caller-identified conversation with a country persona.
type Session struct {
	ID        string    `json:"id"`
	Country   string    `json:"country"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
}
