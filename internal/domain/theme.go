package domain

// Slot is a named color variable of the page stylesheet.
type Slot string

const (
	SlotBg     Slot = "bg"
	SlotFg     Slot = "fg"
	SlotAccent Slot = "accent"
	SlotGreen  Slot = "green"
	SlotOrange Slot = "orange"
)

// Slots lists every theme slot in display order.
var Slots = []Slot{SlotBg, SlotFg, SlotAccent, SlotGreen, SlotOrange}

// Label is the human name shown in the config panel.
func (s Slot) Label() string {
	switch s {
	case SlotBg:
		return "Background"
	case SlotFg:
		return "Foreground"
	case SlotAccent:
		return "Accent"
	case SlotGreen:
		return "Green"
	case SlotOrange:
		return "Orange"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// ColorTheme maps slots to CSS color strings. A stored override record is a
// partial ColorTheme; a resolved theme always has every slot set.
type ColorTheme map[Slot]string

// DefaultTheme returns a fresh copy of the built-in colors.
func DefaultTheme() ColorTheme {
	return ColorTheme{
		SlotBg:     "#141414",
		SlotFg:     "#feffd3",
		SlotAccent: "#c06c43",
		SlotGreen:  "#afb979",
		SlotOrange: "#c2a86c",
	}
}

// Merge returns the defaults with every known slot of overrides applied.
func Merge(overrides ColorTheme) ColorTheme {
	out := DefaultTheme()
	for slot, value := range overrides {
		if slot.Valid() && value != "" {
			out[slot] = value
		}
	}
	return out
}
