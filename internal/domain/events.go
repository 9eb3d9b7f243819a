package domain

import "time"

// MenuSyncMessage asks a worker to pull the full menu for one restaurant.
type MenuSyncMessage struct {
	TaskID       string    `json:"task_id"`
	RestaurantID string    `json:"restaurant_id"`
	RequestedAt  time.Time `json:"requested_at"`
}

// OrderPullMessage asks a worker to pull vendor orders, optionally
// windowed on creation time. Both bounds must be set for the window to
// apply.
type OrderPullMessage struct {
	TaskID       string     `json:"task_id"`
	RestaurantID string     `json:"restaurant_id"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
}
