package vehcfg

// CRC8 constants. The accumulator is 16 bits wide; the polynomial is x^8+x^2+x+1
// pre-shifted into the high byte.
const (
	crc8Polynomial = 0x8380
	crc8HighBit    = 0x8000
	bitsPerByte    = 8
)

// CRC8 computes the config checksum over data, most significant bit first.
func CRC8(data []byte) uint8 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << bitsPerByte
		for i := 0; i < bitsPerByte; i++ {
			if crc&crc8HighBit != 0 {
				crc ^= crc8Polynomial
			}
			crc <<= 1
		}
	}
	return uint8(crc >> bitsPerByte)
}

// Seal overwrites the last byte of blob with the checksum of the preceding bytes.
func Seal(blob []byte) {
	if len(blob) == 0 {
		return
	}
	last := len(blob) - 1
	blob[last] = CRC8(blob[:last])
}

// Verify reports whether the trailing checksum byte matches the payload.
// It also returns the stored and the computed value.
func Verify(blob []byte) (ok bool, stored, computed uint8) {
	if len(blob) == 0 {
		return false, 0, 0
	}
	last := len(blob) - 1
	stored = blob[last]
	computed = CRC8(blob[:last])
	return stored == computed, stored, computed
}
