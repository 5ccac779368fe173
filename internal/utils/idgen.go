package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	idSuffixLen = 9
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewID returns "<prefix>-<unix ms>-<9 base36 chars>", or "<unix ms>-<suffix>" without a prefix.
func NewID(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if prefix == "" {
		return ts + "-" + randomSuffix()
	}
	return prefix + "-" + ts + "-" + randomSuffix()
}

func NewUserID() string {
	return NewID("user")
}

func randomSuffix() string {
	var b strings.Builder
	b.Grow(idSuffixLen)
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < idSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(base36[time.Now().UnixNano()%int64(len(base36))])
			continue
		}
		b.WriteByte(base36[n.Int64()])
	}
	return b.String()
}

// NowMillis is the timestamp format persisted on entities.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
