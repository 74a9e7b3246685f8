// Package test holds end-to-end countdown scenarios. Each scenario builds a
// fresh engine and drives its clock by hand, so a run takes milliseconds
// no matter how long the countdown is.
package test

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/engine"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/platform/logger"
)

// ScenarioTimeout is the countdown length every scenario runs with.
const ScenarioTimeout = 10

// TestResult captures the outcome of each scenario.
type TestResult struct {
	ScenarioName string
	Passed       bool
	Reason       string
}

// Scenario is one scripted play session.
type Scenario struct {
	Name string
	Run  func(h *Harness) error
}

// Harness is the world a scenario plays in.
type Harness struct {
	Engine   *engine.Engine
	EventLog *events.EventLog
	Player   uuid.UUID
	inbox    *inbox
}

type inbox struct {
	messages []string
}

func (i *inbox) SendTo(_ uuid.UUID, text string) {
	i.messages = append(i.messages, text)
}

// NewHarness builds an engine with one online player and a running scheduler.
func NewHarness(log *logger.Logger) (*Harness, error) {
	el := events.NewEventLog(nil)
	eng, err := engine.NewEngine(el, log, engine.WithSuicideTimeout(ScenarioTimeout))
	if err != nil {
		return nil, err
	}
	h := &Harness{Engine: eng, EventLog: el, Player: uuid.New(), inbox: &inbox{}}
	eng.Roster().SetMessenger(h.inbox)
	eng.Join(context.Background(), h.Player, "scenario")
	if err := eng.StartScheduler(); err != nil {
		return nil, err
	}
	return h, nil
}

// Advance steps the clock by n seconds.
func (h *Harness) Advance(n int) {
	for range n * engine.TicksPerSecond {
		h.Engine.Ticker().Step()
	}
}

// Walk moves the player along the x axis.
func (h *Harness) Walk(dx float64) error {
	p, ok := h.Engine.Roster().Get(h.Player)
	if !ok {
		return fmt.Errorf("player %s is not online", h.Player)
	}
	to := p.Position
	to.X += dx
	return h.Engine.Move(h.Player, to)
}

// Dead reports whether the player has died.
func (h *Harness) Dead() bool {
	p, ok := h.Engine.Roster().Get(h.Player)
	return ok && p.IsDead()
}

// Messages returns everything the player was told.
func (h *Harness) Messages() []string {
	return h.inbox.messages
}

// CancelReasons lists the reasons of every cancelled countdown.
func (h *Harness) CancelReasons() []string {
	var reasons []string
	for _, e := range h.EventLog.GetByType(events.EventTypeCountdownCancelled) {
		if p, ok := e.Payload.(events.CountdownPayload); ok {
			reasons = append(reasons, p.Reason)
		}
	}
	return reasons
}

// Scenarios returns the standard suite.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "Countdown runs to death", Run: runsToDeath},
		{Name: "Shuffling in place keeps the countdown", Run: shufflingKeeps},
		{Name: "Walking away cancels", Run: walkingAwayCancels},
		{Name: "Restart drops countdowns", Run: restartDrops},
		{Name: "Departed player is spared", Run: departedSpared},
		{Name: "Respawn after death", Run: respawnAfterDeath},
	}
}

func runsToDeath(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	h.Advance(ScenarioTimeout - 1)
	if h.Dead() {
		return fmt.Errorf("died a second early")
	}
	h.Advance(1)
	if !h.Dead() {
		return fmt.Errorf("still alive after %d seconds", ScenarioTimeout)
	}
	// 10, 5, 4, 3, 2, 1
	if got := len(h.Messages()); got != 6 {
		return fmt.Errorf("expected 6 countdown messages, got %d: %s", got, strings.Join(h.Messages(), " | "))
	}
	return nil
}

func shufflingKeeps(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	for range ScenarioTimeout {
		if err := h.Walk(0.5); err != nil {
			return err
		}
		if err := h.Walk(-0.5); err != nil {
			return err
		}
		h.Advance(1)
	}
	if !h.Dead() {
		return fmt.Errorf("small steps cancelled the countdown")
	}
	return nil
}

func walkingAwayCancels(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	h.Advance(3)
	if err := h.Walk(3); err != nil {
		return err
	}
	h.Advance(ScenarioTimeout)
	if h.Dead() {
		return fmt.Errorf("died after walking away")
	}
	if reasons := h.CancelReasons(); len(reasons) != 1 || reasons[0] != "moved" {
		return fmt.Errorf("expected one cancellation for moving, got %v", reasons)
	}
	return nil
}

func restartDrops(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	h.Advance(2)
	if err := h.Engine.RestartScheduler(); err != nil {
		return err
	}
	h.Advance(ScenarioTimeout)
	if h.Dead() {
		return fmt.Errorf("countdown survived a scheduler restart")
	}
	if n := len(h.Engine.Countdowns()); n != 0 {
		return fmt.Errorf("%d countdowns left after restart", n)
	}
	return nil
}

func departedSpared(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	h.Engine.Leave(h.Player)
	h.Advance(ScenarioTimeout)
	if n := len(h.EventLog.GetByType(events.EventTypePlayerDeath)); n != 0 {
		return fmt.Errorf("departed player died %d times", n)
	}
	return nil
}

func respawnAfterDeath(h *Harness) error {
	if _, err := h.Engine.Suicide(h.Player); err != nil {
		return err
	}
	h.Advance(ScenarioTimeout)
	if _, err := h.Engine.Suicide(h.Player); err == nil {
		return fmt.Errorf("a dead player started a countdown")
	}
	if err := h.Engine.Respawn(h.Player); err != nil {
		return err
	}
	p, _ := h.Engine.Roster().Get(h.Player)
	if p.IsDead() || p.Position != engine.Spawn {
		return fmt.Errorf("respawned as %+v", p)
	}
	_, err := h.Engine.Suicide(h.Player)
	return err
}

// RunAll plays every scenario on a fresh harness.
func RunAll(log *logger.Logger) []TestResult {
	var results []TestResult
	for _, sc := range Scenarios() {
		result := TestResult{ScenarioName: sc.Name}
		h, err := NewHarness(log)
		if err == nil {
			err = sc.Run(h)
			h.Engine.Shutdown()
		}
		if err != nil {
			result.Reason = err.Error()
		} else {
			result.Passed = true
			result.Reason = "ok"
		}
		results = append(results, result)
	}
	return results
}
