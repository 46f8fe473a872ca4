package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of any layout file.
type fileRoot struct {
	Variations []*variationBlock `hcl:"variation,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type variationBlock struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Decks       int               `hcl:"decks,optional"`
	AutoMoves   *bool             `hcl:"automoves,optional"`
	Containers  []*containerBlock `hcl:"container,block"`
	Deals       []*dealBlock      `hcl:"deal,block"`
}

type containerBlock struct {
	Type      string `hcl:"type,label"`
	Kind      string `hcl:"kind"`
	Count     int    `hcl:"count,optional"`
	Capacity  int    `hcl:"capacity,optional"`
	FaceDown  bool   `hcl:"face_down,optional"`
	RevealTop bool   `hcl:"reveal_top,optional"`
}

type dealBlock struct {
	Container string         `hcl:"container,label"`
	Counts    hcl.Expression `hcl:"counts,optional"`
	FaceUp    hcl.Expression `hcl:"face_up,optional"`
	Rest      bool           `hcl:"rest,optional"`
}
