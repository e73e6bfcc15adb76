package hasher

import (
	"encoding/hex"
	"image"

	"github.com/cespare/xxhash/v2"
)

// Frame returns the xxHash64 of a frame's pixels and dimensions. Two
// frames with the same fingerprint render identically.
func Frame(img *image.NRGBA) uint64 {
	h := xxhash.New()
	b := img.Bounds()
	h.Write(uint64ToBytes(uint64(b.Dx())<<32 | uint64(uint32(b.Dy()))))
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		off := y * img.Stride
		h.Write(img.Pix[off : off+rowLen])
	}
	return h.Sum64()
}

// Hex formats a 64-bit hash, truncated to hexLen characters when
// 0 < hexLen < 16.
func Hex(h uint64, hexLen int) string {
	full := hex.EncodeToString(uint64ToBytes(h))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
	return b
}
