package model

import "time"

type Notification struct {
	ID         int64         `json:"id"`
	EventID    string        `json:"event_id"`
	EventTitle string        `json:"event_title"`
	StartsAt   time.Time     `json:"starts_at"`
	Lead       time.Duration `json:"lead"`
}
