package dnsmsg

import "encoding/binary"

// Question represents the single question carried by every query this
// resolver sends (QDCOUNT is always 1).
//
//	                                1  1  1  1  1  1
//	  0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	/                     QNAME                     /
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     QTYPE                     |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|                     QCLASS                    |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.2
type Question struct {
	QName  string
	QType  RRType
	QClass Class
}

func (q Question) pack(buf []byte) []byte {
	buf = packName(buf, q.QName)

	tail := make([]byte, 4)
	binary.BigEndian.PutUint16(tail[0:2], uint16(q.QType))
	binary.BigEndian.PutUint16(tail[2:4], uint16(q.QClass))

	return append(buf, tail...)
}

// unpackQuestion decodes the question section starting at off and returns
// the question plus the offset of the first byte after it.
func unpackQuestion(msg []byte, off int) (Question, int, error) {
	name, off, err := unpackName(msg, off)
	if err != nil {
		return Question{}, 0, err
	}

	if off+4 > len(msg) {
		return Question{}, 0, errShortMessage
	}

	q := Question{
		QName:  name,
		QType:  RRType(binary.BigEndian.Uint16(msg[off : off+2])),
		QClass: Class(binary.BigEndian.Uint16(msg[off+2 : off+4])),
	}

	return q, off + 4, nil
}
