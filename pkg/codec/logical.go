package codec

import (
	"math/big"
	"time"
)

// TimestampMillis converts an instant to its physical representation:
// signed milliseconds since 1970-01-01T00:00:00Z. Pre-epoch instants
// yield negative values.
func TimestampMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// DecimalBytes converts an unscaled decimal value to its physical
// representation: the minimal-length two's-complement big-endian byte
// sequence. The result never carries a redundant leading 0x00 or 0xFF
// byte, and is never shorter than one byte (zero encodes as 0x00).
func DecimalBytes(unscaled *big.Int) []byte {
	switch unscaled.Sign() {
	case 0:
		return []byte{0x00}
	case 1:
		b := unscaled.Bytes()
		if b[0]&0x80 != 0 {
			// sign bit would flip the value negative
			return append([]byte{0x00}, b...)
		}
		return b
	}

	n := unscaled.BitLen()/8 + 1
	tc := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	tc.Add(tc, unscaled)
	buf := tc.FillBytes(make([]byte, n))
	for len(buf) >= 2 && buf[0] == 0xFF && buf[1]&0x80 != 0 {
		buf = buf[1:]
	}
	return buf
}
