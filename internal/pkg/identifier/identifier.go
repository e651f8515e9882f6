package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Human-readable references for donations and orders. Uniqueness is
// probabilistic (timestamp + random suffix); the unique DB index on the
// column is the backstop for the negligible collision case.

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewDonationRef returns DON-<unixMillis>-<8 uppercase hex chars>.
func NewDonationRef() string {
	return fmt.Sprintf("DON-%d-%s", time.Now().UnixMilli(), randomHex(4))
}

// NewOrderNumber returns ORD-<unixMillis>-<5 uppercase base36 chars>.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomBase36(5))
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to time bits
		return strings.ToUpper(fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff))
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			sb.WriteByte(base36Alphabet[time.Now().UnixNano()%36])
			continue
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}
