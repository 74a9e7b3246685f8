// Package countdown implements the self-destruct countdown.
//
// A Registry holds at most one countdown per player and advances all of them
// once per driver tick. The Scheduler binds that advancement to a host
// TickSource at one tick per second, and the MovementWatcher cancels a
// countdown whose player walks away from where it started.
package countdown
