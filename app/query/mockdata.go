package query

import (
	"math/rand/v2"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// tokenLen is the length of the random suffix in generated names and emails
const tokenLen = 5

// GenerateRows builds n mock rows with ids 1..n, random names, ages in [20,70)
// and example.com emails.
func GenerateRows(r *rand.Rand, n int) RowSequence {
	if n <= 0 {
		return RowSequence{}
	}
	rows := make(RowSequence, n)
	var sb strings.Builder
	for i := range rows {
		rows[i] = Row{
			ID:    i + 1,
			Name:  "User" + randomToken(r, &sb),
			Age:   r.IntN(50) + 20,
			Email: "user" + randomToken(r, &sb) + "@example.com",
		}
	}
	return rows
}

func randomToken(r *rand.Rand, sb *strings.Builder) string {
	sb.Reset()
	for i := 0; i < tokenLen; i++ {
		sb.WriteByte(base36[r.IntN(len(base36))])
	}
	return sb.String()
}

// newRand returns a PCG source seeded with seed, or with fresh entropy when seed is 0
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
