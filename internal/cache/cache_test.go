package cache

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorixz/DNSResolver/internal/dnsmsg"
)

func aRecord(name, ip string, ttl uint32) dnsmsg.RR {
	return dnsmsg.RR{Name: name, Type: dnsmsg.TypeA, TTL: ttl, IP: net.ParseIP(ip), Text: ip}
}

func TestInsertIdempotent(t *testing.T) {
	c := New()
	rr := aRecord("example.com", "93.184.216.34", 3600)

	c.Insert(rr)
	c.Insert(rr)

	got := c.Lookup("example.com", dnsmsg.TypeA)
	require.Len(t, got, 1)
	assert.Equal(t, "93.184.216.34", got[0].RDataText())
}

func TestInsertOverwritesOnTTLChange(t *testing.T) {
	c := New()
	rr := aRecord("example.com", "93.184.216.34", 3600)
	c.Insert(rr)

	updated := rr
	updated.TTL = 60
	c.Insert(updated)

	got := c.Lookup("example.com", dnsmsg.TypeA)
	require.Len(t, got, 1)
	assert.EqualValues(t, 60, got[0].TTL)
}

func TestLookupCaseInsensitive(t *testing.T) {
	c := New()
	c.Insert(aRecord("Example.COM", "1.2.3.4", 60))

	got := c.Lookup("example.com", dnsmsg.TypeA)
	require.Len(t, got, 1)
}

func TestLookupMissReturnsEmpty(t *testing.T) {
	c := New()
	assert.Empty(t, c.Lookup("nope.example.com", dnsmsg.TypeA))
}

func TestForEachVisitsAllEntries(t *testing.T) {
	c := New()
	c.Insert(aRecord("a.example.com", "1.1.1.1", 60))
	c.Insert(aRecord("b.example.com", "2.2.2.2", 60))

	seen := map[string]bool{}
	c.ForEach(func(e Entry) {
		seen[e.Name] = true
	})

	assert.True(t, seen["a.example.com"])
	assert.True(t, seen["b.example.com"])
}
