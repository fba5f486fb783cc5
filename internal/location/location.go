// Package location holds the fixed mapping from short location codes to the
// canonical addresses stored in the database. The map is initialized once and
// never mutated, so it is safe to read from any goroutine.
package location

// addresses maps short codes (used by the frontend) to full addresses.
var addresses = map[string]string{
	"gagarina":    "Гагарина 48/1",
	"abdulhakima": "Абдулхакима Исмаилова 51",
	"gaydara":     "Гайдара Гаджиева 7Б",
}

// Normalize resolves a location filter value to its canonical address.
// An empty value or the literal "all" means "no filter" and returns "".
// Unknown codes pass through verbatim — filtering degrades to an exact
// string match instead of failing.
func Normalize(loc string) string {
	if loc == "" || loc == "all" {
		return ""
	}
	if addr, ok := addresses[loc]; ok {
		return addr
	}
	return loc
}
