package transcode

import (
	"fmt"
	"time"
)

// timestampLayout is the only accepted timestamp grammar. Source records
// carry no offset; parsed instants are UTC by declared policy, not by
// inference.
const timestampLayout = "2006-01-02 15:04:05.000"

// ParseTimestamp parses a "YYYY-MM-DD HH:mm:ss.SSS" string into a UTC
// instant. Any deviation from that grammar is a ParseError.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{
			Detail: fmt.Sprintf("timestamp %q does not match YYYY-MM-DD HH:mm:ss.SSS", s),
		}
	}
	return t, nil
}
