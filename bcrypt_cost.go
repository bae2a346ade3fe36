//go:build !race

package apiauth

// passwordHashCost keeps hashing around the hundred millisecond mark on
// commodity hardware.
func passwordHashCost() int {
	return 12
}
