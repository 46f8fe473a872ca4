// Package hcl loads variation layouts written in HCL and translates them
// into the format-agnostic config model.
//
// Deal counts are expressions evaluated against a small context: the
// variables decks and deck_size, and the functions range, min, max and
// length. A layout can therefore write counts = range(1, 8) instead of
// spelling out seven numbers.
package hcl
