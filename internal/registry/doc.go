// Package registry provides the central "glue" between variations and the
// operations evaluated over them.
//
// The Registry is a dispatch table keyed by (variant, operation). Variants are
// declared from the loaded layout files (one per variation and one per
// container type); operations are declared by the packages that define them.
// Modules then register one implementation per pair. Operation tags are typed,
// so an implementation registered for a tag always has the signature the tag
// resolves to.
//
// During application startup, the registry is populated and then validated to
// ensure that every declared variant has an implementation for every declared
// operation of its family. A missing pair is reported once, at startup, along
// with every other missing pair, instead of surfacing as a fault mid-game.
package registry
