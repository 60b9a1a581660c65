package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const withdrawalRefPrefix = "WD"

// GenerateWithdrawalRef builds a human-readable withdrawal transaction id:
// prefix, the last 6 characters of the base-36 encoded millisecond timestamp
// (left-padded with zeros), and a 6-hex-character random suffix, all
// uppercased and hyphen-separated, e.g. WD-3F2A91-B4E19C.
func GenerateWithdrawalRef() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	for len(ts) < 6 {
		ts = "0" + ts
	}

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// timestamp nanos so the ref stays well-formed regardless.
		return fmt.Sprintf("%s-%s-%06X", withdrawalRefPrefix, ts, time.Now().UnixNano()&0xFFFFFF)
	}

	return fmt.Sprintf("%s-%s-%s", withdrawalRefPrefix, ts, strings.ToUpper(hex.EncodeToString(suffix)))
}
