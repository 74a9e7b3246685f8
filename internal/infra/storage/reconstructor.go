package storage

import (
	"context"
	"fmt"
	"sort"
)

// Event type names as written by the event log.
const (
	eventCountdownStarted   = "COUNTDOWN_STARTED"
	eventCountdownCancelled = "COUNTDOWN_CANCELLED"
	eventCountdownExpired   = "COUNTDOWN_EXPIRED"
	eventPlayerDeath        = "PLAYER_DEATH"
)

// Reconstructor rebuilds a player's countdown history from the event ledger.
// It backs the history endpoint and works the same for every repository.
type Reconstructor struct {
	eventRepo EventRepository
}

// NewReconstructor creates a new history reconstructor.
func NewReconstructor(eventRepo EventRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo}
}

// CountdownHistory summarizes how a player's countdowns ended.
type CountdownHistory struct {
	PlayerID    string         `json:"player_id"`
	Started     int            `json:"started"`
	Cancelled   map[string]int `json:"cancelled"`
	Expired     int            `json:"expired"`
	Deaths      int            `json:"deaths"`
	LastOutcome string         `json:"last_outcome,omitempty"`
	Recap       []RecapEvent   `json:"recap"`
}

// RecapEvent is a simplified event for display.
type RecapEvent struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Summary   string `json:"summary"`
}

// RebuildHistory replays a player's events into a CountdownHistory.
func (r *Reconstructor) RebuildHistory(ctx context.Context, playerID string) (*CountdownHistory, error) {
	events, err := r.eventRepo.GetByActorID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for player: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	h := &CountdownHistory{
		PlayerID:  playerID,
		Cancelled: make(map[string]int),
		Recap:     []RecapEvent{},
	}
	for _, e := range events {
		switch e.EventType {
		case eventCountdownStarted:
			h.Started++
		case eventCountdownCancelled:
			reason := stringField(e.Payload, "reason")
			h.Cancelled[reason]++
			h.LastOutcome = "cancelled:" + reason
		case eventCountdownExpired:
			h.Expired++
			h.LastOutcome = "expired"
		case eventPlayerDeath:
			h.Deaths++
		default:
			continue
		}
		h.Recap = append(h.Recap, RecapEvent{
			Timestamp: e.Timestamp.Format("2006-01-02 15:04:05"),
			EventType: e.EventType,
			Summary:   summarizeEvent(e),
		})
	}
	return h, nil
}

// summarizeEvent creates a human-readable summary.
func summarizeEvent(event GameEvent) string {
	switch event.EventType {
	case eventCountdownStarted:
		return fmt.Sprintf("Started a %d second countdown.", intField(event.Payload, "seconds"))
	case eventCountdownCancelled:
		if stringField(event.Payload, "reason") == "moved" {
			return "Walked away and called it off."
		}
		return "Called off the countdown."
	case eventCountdownExpired:
		return "The countdown ran out."
	case eventPlayerDeath:
		return "Died."
	default:
		return "Something happened."
	}
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func intField(payload map[string]any, key string) int {
	if v, ok := payload[key].(float64); ok {
		return int(v)
	}
	return 0
}
