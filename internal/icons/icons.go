// Package icons maps user-supplied icon identifiers onto the closed set
// the presentation layer knows how to render. Unknown identifiers
// resolve to an explicit default instead of being passed through.
package icons

// Defaults per entity kind.
const (
	DefaultPot    = "PiggyBank"
	DefaultBudget = "Wallet"
)

// known is the closed set of renderable icon identifiers, named after
// the Lucide icons the dashboard UI renders.
var known = map[string]struct{}{
	"PiggyBank":      {},
	"Wallet":         {},
	"Landmark":       {},
	"Car":            {},
	"Plane":          {},
	"Home":           {},
	"GraduationCap":  {},
	"Gift":           {},
	"HeartPulse":     {},
	"ShoppingBasket": {},
	"Film":           {},
	"Utensils":       {},
	"Shirt":          {},
	"Gamepad2":       {},
	"Laptop":         {},
	"TreePalm":       {},
}

// IsKnown reports whether the identifier belongs to the closed set.
func IsKnown(name string) bool {
	_, ok := known[name]
	return ok
}

// Resolve returns the identifier to render: the name itself when known,
// otherwise fallback. The second return tells callers whether a
// substitution happened so they can warn instead of defaulting silently.
func Resolve(name, fallback string) (string, bool) {
	if name == "" {
		return fallback, true
	}
	if IsKnown(name) {
		return name, true
	}
	return fallback, false
}
