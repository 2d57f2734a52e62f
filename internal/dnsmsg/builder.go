package dnsmsg

import "encoding/binary"

// ResponseSpec describes the content of a synthetic DNS response. It exists
// so tests (and any future canned-response tooling) can construct wire
// bytes without hand-rolling the byte layout — the mirror image of
// DecodeResponse.
type ResponseSpec struct {
	ID    uint16
	AA    byte
	TC    byte
	RCode byte

	Question   Question
	Answer     []RR
	Authority  []RR
	Additional []RR
}

// BuildResponse encodes spec into wire bytes suitable for DecodeResponse.
func BuildResponse(spec ResponseSpec) []byte {
	h := Header{
		ID:      spec.ID,
		QR:      1,
		AA:      spec.AA,
		TC:      spec.TC,
		RCode:   spec.RCode,
		QDCount: 1,
		ANCount: uint16(len(spec.Answer)),
		NSCount: uint16(len(spec.Authority)),
		ARCount: uint16(len(spec.Additional)),
	}

	buf := h.pack(nil)
	buf = spec.Question.pack(buf)

	for _, rr := range spec.Answer {
		buf = packRR(buf, rr)
	}
	for _, rr := range spec.Authority {
		buf = packRR(buf, rr)
	}
	for _, rr := range spec.Additional {
		buf = packRR(buf, rr)
	}

	return buf
}

// packRR appends the wire encoding of rr, choosing rdata bytes from rr.IP
// (A/AAAA) or rr.Text (NS/CNAME, packed as a name; everything else, written
// as raw ASCII bytes since DecodeResponse replaces unrecognized rdata with
// OpaquePlaceholder regardless of its actual content).
func packRR(buf []byte, rr RR) []byte {
	buf = packName(buf, rr.Name)
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(ClassIN))
	buf = binary.BigEndian.AppendUint32(buf, rr.TTL)

	var rdata []byte
	switch rr.Type {
	case TypeA:
		rdata = rr.IP.To4()
	case TypeAAAA:
		rdata = rr.IP.To16()
	case TypeNS, TypeCNAME:
		rdata = packName(nil, rr.Text)
	default:
		rdata = []byte(rr.Text)
	}

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rdata)))
	return append(buf, rdata...)
}
