// Package engine runs a game session: it validates and applies moves and,
// after every successful move, applies the variation's automatic moves until
// none remain.
//
// A Session owns its table. Every public method takes the session lock, so a
// move and the automoves it triggers are observed as a single step.
package engine
