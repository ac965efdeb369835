package items

import "strings"

// ID names a collectible. The vocabulary is closed: three stones and the
// lantern, spelled exactly as they appear on the wire.
type ID string

const (
	RedStone    ID = "RED STONE"
	BlueStone   ID = "BLUE STONE"
	YellowStone ID = "YELLOW STONE"
	Lantern     ID = "LANTERN"
)

// All lists every collectible in canonical order.
var All = [...]ID{RedStone, BlueStone, YellowStone, Lantern}

// Stones lists the items required to escape.
var Stones = [...]ID{RedStone, BlueStone, YellowStone}

func Parse(raw string) (ID, bool) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	switch ID(cleaned) {
	case RedStone:
		return RedStone, true
	case BlueStone:
		return BlueStone, true
	case YellowStone:
		return YellowStone, true
	case Lantern:
		return Lantern, true
	}
	return "", false
}

func (id ID) Stone() bool {
	switch id {
	case RedStone, BlueStone, YellowStone:
		return true
	}
	return false
}

// Tool reports whether the item can be the target of a USE command.
func (id ID) Tool() bool {
	return id == Lantern
}
