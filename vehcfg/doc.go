// Package vehcfg reads, validates and patches fixed-layout vehicle config blobs.
//
// A blob is a byte buffer whose last byte is a CRC8 over all preceding bytes.
// Fields live inside a single byte and are addressed by a Position parsed from a
// descriptor such as "[3][5:2]" (byte 3, bits 5 down to 2, bit 0 least significant).
// Field values are exchanged as bitstrings, most significant selected bit first.
//
// Typical use:
//
//	if err := vehcfg.Validate(blob, m); err != nil {
//		return err
//	}
//	res, err := vehcfg.NewEditor(m.Table).Apply(blob, updates)
//	if err != nil {
//		return err
//	}
//	if res.Applied > 0 {
//		// write res.Data
//	}
package vehcfg
