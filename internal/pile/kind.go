package pile

import "fmt"

// Kind is the closed set of container roles.
type Kind int

const (
	KindStock Kind = iota
	KindWaste
	KindFoundation
	KindTableau
	KindFreeCell
	KindReserve
)

var kindNames = map[Kind]string{
	KindStock:      "stock",
	KindWaste:      "waste",
	KindFoundation: "foundation",
	KindTableau:    "tableau",
	KindFreeCell:   "free-cell",
	KindReserve:    "reserve",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a layout kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown container kind '%s'", s)
}
