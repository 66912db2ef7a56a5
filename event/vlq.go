package event

// variable length quantities as used for meta payload lengths

func encodeVLQ(n uint32) []byte {
	out := []byte{byte(n & 0x7F)}
	n >>= 7
	for n > 0 {
		out = append([]byte{byte(n&0x7F) | 0x80}, out...)
		n >>= 7
	}
	return out
}

func decodeVLQ(b []byte) (n uint32, size int, ok bool) {
	for i := 0; i < len(b) && i < 4; i++ {
		n = n<<7 | uint32(b[i]&0x7F)
		if b[i] < 0x80 {
			return n, i + 1, true
		}
	}
	return 0, 0, false
}
