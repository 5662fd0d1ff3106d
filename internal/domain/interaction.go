package domain

import "time"

const (
	InteractionClick  = "click"
	InteractionScroll = "scroll"
)

// Interaction is one recorded page event; click events carry viewport
// coordinates, scroll events the scroll offsets.
type Interaction struct {
	ID           int64     `json:"id"`
	Event        string    `json:"event"`
	X            int       `json:"x"`
	Y            int       `json:"y"`
	ScrollTop    int       `json:"scroll_top"`
	ScrollHeight int       `json:"scroll_height"`
	CreatedAt    time.Time `json:"created_at"`
}
