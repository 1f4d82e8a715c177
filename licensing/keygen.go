package licensing

import (
	"crypto/rand"
	"fmt"
)

const keyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// GenerateLicenseKey produces a display key of the form VL-XXXX-XXXX over
// the base-36 alphabet. Keys are not checked for collisions; the order id
// unique index is what guards against duplicate issuance.
func GenerateLicenseKey() string {
	segment := func() string {
		b := generateBytes(4)
		for i := range b {
			b[i] = keyAlphabet[int(b[i])%len(keyAlphabet)]
		}
		return string(b)
	}
	return fmt.Sprintf("VL-%s-%s", segment(), segment())
}
