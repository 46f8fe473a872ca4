// Package app is the composition root. It builds the logger, loads every
// variation layout, lets each module register its operations, validates the
// operation matrix and builds the rule sets that game sessions are created
// from. Any composition error stops startup before a single card is dealt.
package app
