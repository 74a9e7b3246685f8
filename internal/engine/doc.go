// Package engine contains the host game loop and wires the countdown
// mechanic to players, events and the clock.
//
// The Ticker is the only clock. Countdown jobs run on it at TicksPerSecond,
// and tests drive it with Step instead of waiting on wall time.
package engine
