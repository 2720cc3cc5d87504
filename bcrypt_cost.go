//go:build !race

package titulacion

// Work factor 10 keeps verification in the tens-of-milliseconds range on
// commodity hardware.
func passwordHashCost() int {
	return 10
}
