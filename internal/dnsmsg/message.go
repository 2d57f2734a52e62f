package dnsmsg

import "math/rand"

// Inserter receives resource records decoded from a response so that the
// codec package itself stays cache-agnostic (see internal/cache.RRCache).
type Inserter interface {
	Insert(rr RR)
}

// EncodeQuery produces the wire bytes of an iterative (RD=0) query for
// (name, qtype, IN). The returned transaction ID is drawn uniformly from
// [0, 65536); this resolver does not correlate replies by ID.
func EncodeQuery(name string, qtype RRType) (payload []byte, id uint16) {
	id = uint16(rand.Intn(1 << 16))

	h := Header{
		ID:      id,
		QDCount: 1,
	}

	q := Question{
		QName:  name,
		QType:  qtype,
		QClass: ClassIN,
	}

	buf := make([]byte, 0, headerLen+len(name)+2+5)
	buf = h.pack(buf)
	buf = q.pack(buf)

	return buf, id
}

// Response is the decoded form of a server's reply: the question it
// answered (for reference, never validated against the sent query) and the
// authority section, preserved in decode order. Answer and additional
// records are not retained on Response: they are written straight into the
// supplied Inserter as they are decoded.
type Response struct {
	Header    Header
	Question  Question
	Authority []RR
}

// DecodeResponse parses a response datagram, inserting answer and
// additional records into ins, and returning the authority section.
//
// A response is rejected — treated as "no information", nothing cached, no
// authority returned — when:
//   - QR == 0 (not actually a response),
//   - TC == 1 (truncated),
//   - RCode != 0 (any error),
//   - AA == 1 && ANCount == 0 (authoritative empty answer, NXDOMAIN-style).
func DecodeResponse(msg []byte, ins Inserter) (Response, error) {
	h, err := unpackHeader(msg)
	if err != nil {
		return Response{}, err
	}

	if h.QR == 0 || h.TC == 1 || h.RCode != 0 || (h.AA == 1 && h.ANCount == 0) {
		return Response{Header: h}, nil
	}

	off := headerLen

	var q Question
	for i := uint16(0); i < h.QDCount; i++ {
		var question Question
		question, off, err = unpackQuestion(msg, off)
		if err != nil {
			return Response{}, err
		}
		if i == 0 {
			q = question
		}
	}

	for i := uint16(0); i < h.ANCount; i++ {
		var rr RR
		rr, off, err = unpackRR(msg, off)
		if err != nil {
			return Response{}, err
		}

		ins.Insert(rr)

		// An authoritative A/AAAA answer is also inserted under the
		// originally-queried name, so a CNAME-terminated answer chain
		// surfaces an address record under the alias the caller actually
		// asked about.
		if h.AA == 1 && (rr.Type == TypeA || rr.Type == TypeAAAA) && rr.Name != q.QName {
			merged := rr
			merged.Name = q.QName
			ins.Insert(merged)
		}
	}

	authority := make([]RR, 0, h.NSCount)
	for i := uint16(0); i < h.NSCount; i++ {
		var rr RR
		rr, off, err = unpackRR(msg, off)
		if err != nil {
			return Response{}, err
		}
		authority = append(authority, rr)
	}

	for i := uint16(0); i < h.ARCount; i++ {
		var rr RR
		rr, off, err = unpackRR(msg, off)
		if err != nil {
			return Response{}, err
		}
		ins.Insert(rr)
	}

	return Response{Header: h, Question: q, Authority: authority}, nil
}
