package views

import (
	"time"

	"petmatch-backend/internal/recommendations/engine"
)

// RecentLimit is the number of views returned by the recent-views listing.
const RecentLimit = 5

type View struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	AnimalID        string    `json:"animalId"`
	ViewedAt        time.Time `json:"viewedAt"`
	DurationSeconds int       `json:"durationSeconds"`
}

func (v View) Event() engine.ViewEvent {
	return engine.ViewEvent{
		UserID:          v.UserID,
		AnimalID:        v.AnimalID,
		Timestamp:       v.ViewedAt,
		DurationSeconds: v.DurationSeconds,
	}
}

func Events(list []View) []engine.ViewEvent {
	out := make([]engine.ViewEvent, 0, len(list))
	for _, v := range list {
		out = append(out, v.Event())
	}
	return out
}
