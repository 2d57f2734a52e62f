package dnsmsg

import "encoding/binary"

// headerLen is the fixed size, in bytes, of a DNS message header.
const headerLen = 12

// Header represents the DNS message header.
//
//	                                1  1  1  1  1  1
//	  0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                      ID                       |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   OPCODE  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    QDCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    ANCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    NSCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                    ARCOUNT                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.1
type Header struct {
	ID uint16

	QR     byte
	OpCode byte
	AA     byte
	TC     byte
	RD     byte
	RA     byte
	Z      byte
	RCode  byte

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// pack appends the 12-byte wire encoding of h to buf and returns the result.
func (h Header) pack(buf []byte) []byte {
	var flagsHi, flagsLo byte

	flagsHi |= h.QR << 7
	flagsHi |= (h.OpCode & 0x0F) << 3
	flagsHi |= h.AA << 2
	flagsHi |= h.TC << 1
	flagsHi |= h.RD

	flagsLo |= h.RA << 7
	flagsLo |= (h.Z & 0x07) << 4
	flagsLo |= h.RCode & 0x0F

	b := make([]byte, headerLen)
	binary.BigEndian.PutUint16(b[0:2], h.ID)
	b[2] = flagsHi
	b[3] = flagsLo
	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)

	return append(buf, b...)
}

// unpackHeader decodes the 12-byte header starting at msg[0:12].
func unpackHeader(msg []byte) (Header, error) {
	if len(msg) < headerLen {
		return Header{}, errShortMessage
	}

	flagsHi := msg[2]
	flagsLo := msg[3]

	h := Header{
		ID:      binary.BigEndian.Uint16(msg[0:2]),
		QR:      (flagsHi >> 7) & 0x01,
		OpCode:  (flagsHi >> 3) & 0x0F,
		AA:      (flagsHi >> 2) & 0x01,
		TC:      (flagsHi >> 1) & 0x01,
		RD:      flagsHi & 0x01,
		RA:      (flagsLo >> 7) & 0x01,
		Z:       (flagsLo >> 4) & 0x07,
		RCode:   flagsLo & 0x0F,
		QDCount: binary.BigEndian.Uint16(msg[4:6]),
		ANCount: binary.BigEndian.Uint16(msg[6:8]),
		NSCount: binary.BigEndian.Uint16(msg[8:10]),
		ARCount: binary.BigEndian.Uint16(msg[10:12]),
	}

	return h, nil
}
