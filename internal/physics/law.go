package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
)

type Law int

const (
	LawVector Law = iota
	LawPerAxis
)

var lawNames = map[Law]string{
	LawVector:  "vector",
	LawPerAxis: "per_axis",
}

func (l Law) String() string {
	if name, ok := lawNames[l]; ok {
		return name
	}
	return fmt.Sprintf("law(%d)", int(l))
}

// ParseLaw maps a law name to a Law. An empty name selects LawVector.
func ParseLaw(name string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vector":
		return LawVector, nil
	case "per_axis", "per-axis", "axis", "legacy":
		return LawPerAxis, nil
	}
	return 0, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownLaw)
}

func ListLaws() []string {
	return []string{LawVector.String(), LawPerAxis.String()}
}

func (l Law) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Law) UnmarshalText(b []byte) error {
	parsed, err := ParseLaw(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
