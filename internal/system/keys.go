package system

import "encoding/binary"

const (
	evKey = 0x01

	// KeyF4 is the evdev code the daemon exits on (linux input-event-codes.h).
	KeyF4 = 62
)

// keyPresses returns the codes of key-down records in buf, a run of
// input_event structs whose timeval is tvSize bytes.
func keyPresses(buf []byte, tvSize int) []uint16 {
	eventSize := tvSize + 2 + 2 + 4
	var codes []uint16
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && value == 1 {
			codes = append(codes, code)
		}
	}
	return codes
}
