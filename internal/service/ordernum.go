package service

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber produces a human-legible order number of the form
// TF-<base36 unix milliseconds>-<6 random characters>. With 36^6 random
// suffixes per millisecond, collisions are vanishingly unlikely; the orders
// table still enforces uniqueness. The suffix is not cryptographically secure
// and order numbers must not be treated as secrets.
func GenerateOrderNumber(nowMillis int64) string {
	var b strings.Builder
	b.WriteString("TF-")
	b.WriteString(strings.ToUpper(strconv.FormatInt(nowMillis, 36)))
	b.WriteByte('-')
	for i := 0; i < 6; i++ {
		b.WriteByte(orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))])
	}
	return b.String()
}
