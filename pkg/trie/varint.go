package trie

// Length fields are little-endian base-128: seven data bits per byte,
// high bit set while more bytes follow.

// MaxVarIntLen is the longest encoding accepted by the decoder.
const MaxVarIntLen = 10

// ExtractVarInt decodes the integer stored at offset.
func ExtractVarInt(data []byte, offset int) (uint64, error) {
	var value uint64
	var shift uint

	for i := 0; i < MaxVarIntLen; i++ {
		pos := offset + i
		if pos < 0 || pos >= len(data) {
			return 0, corruptAt(pos, "varint runs past end of buffer")
		}
		b := data[pos]
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
	return 0, corruptAt(offset, "varint longer than 10 bytes")
}

// VarIntLength returns the number of bytes used by the encoding at offset.
func VarIntLength(data []byte, offset int) (int, error) {
	for i := 0; i < MaxVarIntLen; i++ {
		pos := offset + i
		if pos < 0 || pos >= len(data) {
			return 0, corruptAt(pos, "varint runs past end of buffer")
		}
		if data[pos]&0x80 == 0 {
			return i + 1, nil
		}
	}
	return 0, corruptAt(offset, "varint longer than 10 bytes")
}

// VarIntSize returns the number of bytes needed to encode v.
func VarIntSize(v uint64) int {
	n := 1
	for v > 0x7f {
		v >>= 7
		n++
	}
	return n
}

// PutVarInt encodes v into buf and returns the number of bytes written.
// It panics if buf is too small.
func PutVarInt(buf []byte, v uint64) int {
	i := 0
	for v > 0x7f {
		buf[i] = byte(v&0x7f) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	return i + 1
}

// AppendVarInt appends the encoding of v to buf.
func AppendVarInt(buf []byte, v uint64) []byte {
	var tmp [MaxVarIntLen]byte
	n := PutVarInt(tmp[:], v)
	return append(buf, tmp[:n]...)
}
