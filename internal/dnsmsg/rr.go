package dnsmsg

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"
)

// OpaquePlaceholder is the rdata text the reference resolver stores for
// record types it does not interpret (MX and anything mapped to
// TypeOther). A real implementation could retain the raw bytes instead;
// this resolver follows the reference behavior.
const OpaquePlaceholder = "----"

// RR is a resource record: the (name, type, ttl, rdata) tuple. RData is a
// tagged union over the wire types this resolver understands, selected by
// Type.
type RR struct {
	Name string
	Type RRType
	TTL  uint32

	// Exactly one of the following is meaningful, selected by Type:
	//   TypeA, TypeAAAA -> IP (nil, and Text empty, if RDLENGTH is not 4 / 16)
	//   TypeNS, TypeCNAME -> Text (the target domain name)
	//   TypeMX, TypeOther -> Text (OpaquePlaceholder)
	IP   net.IP
	Text string
}

// RDataText renders the rdata the way lookup/dump output wants it: the
// textual address for A/AAAA, the target name for NS/CNAME, a placeholder
// otherwise.
func (r RR) RDataText() string {
	switch r.Type {
	case TypeA:
		if r.IP != nil {
			return r.IP.String()
		}

		return r.Text
	case TypeAAAA:
		return r.Text
	default:
		return r.Text
	}
}

// unpackRR decodes one resource record starting at off, returning the
// record and the offset of the byte following RDATA.
func unpackRR(msg []byte, off int) (RR, int, error) {
	name, off, err := unpackName(msg, off)
	if err != nil {
		return RR{}, 0, err
	}

	if off+10 > len(msg) {
		return RR{}, 0, errShortMessage
	}

	wireType := binary.BigEndian.Uint16(msg[off : off+2])
	ttl := binary.BigEndian.Uint32(msg[off+4 : off+8])
	rdlength := int(binary.BigEndian.Uint16(msg[off+8 : off+10]))
	off += 10

	if off+rdlength > len(msg) {
		return RR{}, 0, errShortMessage
	}
	rdata := msg[off : off+rdlength]

	rr := RR{
		Name: name,
		Type: ParseRRType(wireType),
		TTL:  ttl,
	}

	switch rr.Type {
	case TypeA:
		if rdlength == 4 {
			rr.IP = net.IPv4(rdata[0], rdata[1], rdata[2], rdata[3])
			rr.Text = rr.IP.String()
		}
	case TypeAAAA:
		if rdlength == 16 {
			ip := make(net.IP, 16)
			copy(ip, rdata)
			rr.IP = ip
			rr.Text = formatAAAA(ip)
		}
	case TypeNS, TypeCNAME:
		target, _, err := unpackName(msg, off)
		if err != nil {
			return RR{}, 0, err
		}
		rr.Text = target
	default:
		rr.Text = OpaquePlaceholder
	}

	return rr, off + rdlength, nil
}

// formatAAAA renders a 16-byte IPv6 address as 8 colon-separated, lowercase,
// zero-padded 4-digit hex groups. Runs of zero groups are not compressed
// with "::", so the result is not the RFC 5952 canonical text.
func formatAAAA(ip net.IP) string {
	groups := make([]string, 8)
	for i := 0; i < 8; i++ {
		groups[i] = fmt.Sprintf("%02x%02x", ip[i*2], ip[i*2+1])
	}

	return strings.Join(groups, ":")
}
