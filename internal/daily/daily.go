// Package daily picks a deterministic starting word per calendar day,
// so every player who asks for the daily game on a date gets the same word.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex maps date to a slot in a starting-word pool of size n. The salt
// keeps the sequence unguessable from the pool alone; n <= 0 yields 0.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Word returns the pool entry for date, or "" if the pool is empty.
func Word(date time.Time, salt string, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[WordIndex(date, salt, len(pool))]
}
