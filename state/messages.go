package state

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// errorPool builds the random error messages appended by the event timer
var errorPool = []func(r *rand.Rand) string{
	func(r *rand.Rand) string {
		return "Memory corruption detected at 0x" + RandomHex(r, 6)
	},
	func(*rand.Rand) string { return "Reality matrix desynchronized" },
	func(r *rand.Rand) string {
		return fmt.Sprintf("Consciousness overflow in sector %d", r.IntN(999))
	},
	func(*rand.Rand) string { return "Neural interface disconnected" },
	func(*rand.Rand) string { return "Time paradox detected" },
	func(*rand.Rand) string { return "Quantum entanglement unstable" },
}

// RandomError picks one message from the pool
func RandomError(r *rand.Rand) string {
	return errorPool[r.IntN(len(errorPool))](r)
}

// RandomHex returns n uppercase hex digits
func RandomHex(r *rand.Rand, n int) string {
	const digits = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(digits[r.IntN(16)])
	}
	return sb.String()
}
