package repl

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorixz/DNSResolver/internal/cache"
	"github.com/glorixz/DNSResolver/internal/dnsmsg"
	"github.com/glorixz/DNSResolver/internal/resolver"
	"github.com/glorixz/DNSResolver/internal/transport"
)

func newTestREPL(t *testing.T) (*REPL, *resolver.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	rc := &resolver.Context{
		Transport: transport.NewMockTransport(),
		Cache:     cache.New(),
		Root:      net.ParseIP("198.41.0.4"),
		Log:       log,
	}

	out, errBuf := &bytes.Buffer{}, &bytes.Buffer{}

	return New(rc, out, errBuf), rc, out, errBuf
}

func TestDumpPrintsCachedRecords(t *testing.T) {
	r, rc, out, _ := newTestREPL(t)
	rc.Cache.Insert(dnsmsg.RR{Name: "example.com", Type: dnsmsg.TypeA, TTL: 3600, IP: net.ParseIP("93.184.216.34")})

	r.Run(strings.NewReader("dump\nquit\n"))

	assert.Contains(t, out.String(), "example.com")
	assert.Contains(t, out.String(), "93.184.216.34")
}

func TestLookupPrintsSentinelOnEmptyResult(t *testing.T) {
	r, _, out, _ := newTestREPL(t)

	r.Run(strings.NewReader("lookup nowhere.invalid\nquit\n"))

	assert.Contains(t, out.String(), "-1")
	assert.Contains(t, out.String(), "0.0.0.0")
}

func TestServerCommandUpdatesRoot(t *testing.T) {
	r, rc, _, _ := newTestREPL(t)

	r.Run(strings.NewReader("server 10.0.0.1\nquit\n"))

	assert.Equal(t, "10.0.0.1", rc.Root.String())
}

func TestCommentsAreStripped(t *testing.T) {
	r, rc, _, errBuf := newTestREPL(t)

	r.Run(strings.NewReader("# a full-line comment\nserver 10.0.0.2 # trailing comment\nquit\n"))

	require.Empty(t, errBuf.String())
	assert.Equal(t, "10.0.0.2", rc.Root.String())
}

func TestUnknownLookupTypeIsRejected(t *testing.T) {
	r, _, _, errBuf := newTestREPL(t)

	r.Run(strings.NewReader("lookup example.com BOGUS\nquit\n"))

	assert.Contains(t, errBuf.String(), "unknown or unsupported record type")
}
