package recommendations

import (
	"time"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/recommendations/engine"
)

// Item is one recommended animal with its explanation.
type Item struct {
	Animal     animals.Animal        `json:"animal"`
	Rank       int                   `json:"rank"`
	Score      float64               `json:"score"`
	Components engine.ComponentScore `json:"components"`
	Source     engine.Source         `json:"source"`
	Reason     string                `json:"recommendationReason"`
}

// List is a ranked, hydrated recommendation list for one user.
type List struct {
	UserID      string    `json:"userId"`
	Items       []Item    `json:"items"`
	Fallback    bool      `json:"fallback"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Outcome labels used for request metrics.
const (
	outcomePersonalized = "personalized"
	outcomePopular      = "popular"
	outcomeEmpty        = "empty"
	outcomeCached       = "cached"
)

func (l List) outcome() string {
	if len(l.Items) == 0 {
		return outcomeEmpty
	}
	for _, item := range l.Items {
		if item.Source == engine.SourcePersonalized {
			return outcomePersonalized
		}
	}
	return outcomePopular
}
