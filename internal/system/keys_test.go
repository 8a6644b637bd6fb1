package system

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestKeyPresses(t *testing.T) {
	const tv = 16
	var buf []byte
	buf = append(buf, inputEvent(tv, evKey, KeyF4, 1)...)
	buf = append(buf, inputEvent(tv, evKey, KeyF4, 0)...) // release
	buf = append(buf, inputEvent(tv, 0x00, 0, 0)...)      // EV_SYN
	buf = append(buf, inputEvent(tv, evKey, 30, 1)...)
	buf = append(buf, 0x01, 0x02) // partial record

	assert.Equal(t, []uint16{KeyF4, 30}, keyPresses(buf, tv))
	assert.Empty(t, keyPresses(nil, tv))
}
