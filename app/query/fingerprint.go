package query

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/minio/highwayhash"
)

// FingerprintKey is the fixed HighwayHash key for row fingerprints
var FingerprintKey = []byte("queryexplorer rows key\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")

// Fingerprint returns a HighwayHash-64 of the sequence's contents in order.
// Two sequences with the same fingerprint hold the same rows in the same order.
func Fingerprint(rows RowSequence) string {
	h, err := highwayhash.New64(FingerprintKey)
	if err != nil {
		// key length is fixed at 32 bytes
		panic(err)
	}
	var buf [binary.MaxVarintLen64]byte
	writeInt := func(v int) {
		n := binary.PutVarint(buf[:], int64(v))
		h.Write(buf[:n])
	}
	writeString := func(s string) {
		writeInt(len(s))
		h.Write([]byte(s))
	}
	writeInt(len(rows))
	for _, r := range rows {
		writeInt(r.ID)
		writeString(r.Name)
		writeInt(r.Age)
		writeString(r.Email)
	}
	return hex.EncodeToString(h.Sum(nil))
}
