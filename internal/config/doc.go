// Package config defines the format-agnostic model of variation layouts and
// the Loader interface that format-specific packages implement.
//
// A layout names the container types of a variation, how many containers of
// each type sit on the table, and how a shuffled deck is dealt onto them.
// Concrete loaders for HCL and YAML live in separate packages; both produce a
// Model, and the rules package builds rule sets from it.
package config
