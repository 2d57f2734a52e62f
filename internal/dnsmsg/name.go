package dnsmsg

import (
	"errors"
	"strings"
)

var (
	errShortMessage  = errors.New("dnsmsg: message too short")
	errNameTooDeep   = errors.New("dnsmsg: too many compression pointer hops")
	errPointerTarget = errors.New("dnsmsg: compression pointer out of range")
)

// maxPointerHops bounds the number of compression-pointer jumps followed
// while decoding a single name, per RFC 1035 section 4.1.4. Without a bound,
// a crafted message with a pointer cycle would loop forever.
const maxPointerHops = 128

// packName splits name on '.' and encodes it as a sequence of
// length-prefixed labels terminated by a zero length byte. One trailing dot
// is dropped; other empty labels (e.g. from a leading dot) are not specially
// handled and produce a zero-length label on the wire, matching the
// assumption that input is well-formed.
func packName(buf []byte, name string) []byte {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return append(buf, 0x00)
	}

	for _, label := range strings.Split(name, ".") {
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}

	return append(buf, 0x00)
}

// unpackName decodes a (possibly compressed) domain name starting at offset
// off in msg. It returns the dotted name with no trailing dot, the next
// read offset in the *original* pass (i.e. past a pointer's 2 bytes, or past
// the terminating zero byte when no pointer is involved), and an error.
//
// A label-length byte whose top two bits are both 1 denotes a pointer: the
// remaining 14 bits are an absolute offset into msg where decoding resumes.
// Pointers may chain; total pointer hops are bounded by maxPointerHops to
// guard against malicious loops.
func unpackName(msg []byte, off int) (string, int, error) {
	var labels []string

	hops := 0
	cursor := off
	consumedPointer := false
	nextOffset := off

	for {
		if cursor >= len(msg) {
			return "", 0, errShortMessage
		}

		lengthByte := msg[cursor]

		if lengthByte&0xC0 == 0xC0 {
			if cursor+1 >= len(msg) {
				return "", 0, errShortMessage
			}

			hops++
			if hops > maxPointerHops {
				return "", 0, errNameTooDeep
			}

			ptr := int(lengthByte&0x3F)<<8 | int(msg[cursor+1])
			if ptr >= len(msg) {
				return "", 0, errPointerTarget
			}

			if !consumedPointer {
				nextOffset = cursor + 2
				consumedPointer = true
			}

			cursor = ptr
			continue
		}

		size := int(lengthByte)
		cursor++

		if size == 0 {
			break
		}

		if cursor+size > len(msg) {
			return "", 0, errShortMessage
		}

		labels = append(labels, string(msg[cursor:cursor+size]))
		cursor += size
	}

	if !consumedPointer {
		nextOffset = cursor
	}

	return strings.ToLower(strings.Join(labels, ".")), nextOffset, nil
}
