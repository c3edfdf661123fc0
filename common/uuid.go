package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UUID32 generates a 32-character hexadecimal string (a v4 UUID with dashes stripped).
// Some exchanges require fixed-length client order IDs in this form.
func UUID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateClientOrderID generates a client order ID for the given exchange.
// Format: uniex-{exchange}-{hex16}
// Example: uniex-latoken-caa54b21bbabadd4
func GenerateClientOrderID(exchange string) string {
	exchange = strings.ToLower(exchange)
	return fmt.Sprintf("uniex-%s-%s", exchange, UUID32()[:16])
}
