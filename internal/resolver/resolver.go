// Package resolver implements the iterative resolution state machine:
// delegation following, nameserver selection via glue, CNAME chasing, and
// the interaction with the cache.
//
// This resolver does not verify that a response's question section matches
// the sent query, and the transaction ID is never checked against the one
// that was sent; it trusts whatever server it queried.
package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/glorixz/DNSResolver/internal/cache"
	"github.com/glorixz/DNSResolver/internal/dnsmsg"
	"github.com/glorixz/DNSResolver/internal/transport"
)

// maxIndirection bounds CNAME chasing within one top-level Resolve call.
const maxIndirection = 10

const dnsPort = 53

// Context bundles the resolver's dependencies so none of them need to be
// global mutable state. Root is the only field the REPL mutates between
// queries (the `server` command); it must not change while a Resolve call
// is in flight.
type Context struct {
	Transport transport.Transport
	Cache     *cache.RRCache
	Root      net.IP
	Log       *logrus.Logger

	// SingleQuery restricts every lookup to exactly one queryServer call:
	// no delegation walk, no CNAME chasing. This backs the `-p1` debug
	// flag. Answer and additional records from that one query are still
	// cached; see DESIGN.md for the rationale behind this behavior.
	SingleQuery bool
}

// New returns a Context wired to a real UDP transport and a fresh cache.
func New(root net.IP, log *logrus.Logger) *Context {
	if log == nil {
		log = logrus.New()
	}

	return &Context{
		Transport: transport.NewUDPTransport(),
		Cache:     cache.New(),
		Root:      root,
		Log:       log,
	}
}

// Resolve is the entry point for a user lookup. indirection starts at 0 and
// counts CNAME hops already followed.
func (c *Context) Resolve(ctx context.Context, name string, qtype dnsmsg.RRType, indirection int) []dnsmsg.RR {
	if indirection > maxIndirection {
		c.Log.Warn("Maximum number of indirection levels reached")
		return nil
	}

	if hit := c.Cache.Lookup(name, qtype); len(hit) > 0 {
		return hit
	}

	if cn := c.Cache.Lookup(name, dnsmsg.TypeCNAME); len(cn) > 0 {
		target := cn[0].Text

		if hit := c.Cache.Lookup(target, qtype); len(hit) > 0 {
			return hit
		}

		c.queryChain(ctx, name, qtype)
	} else {
		c.queryChain(ctx, name, qtype)
	}

	if hit := c.Cache.Lookup(name, qtype); len(hit) > 0 {
		return hit
	}

	if !c.SingleQuery {
		for _, cn := range c.Cache.Lookup(name, dnsmsg.TypeCNAME) {
			sub := c.Resolve(ctx, cn.Text, qtype, indirection+1)
			for _, rr := range sub {
				merged := rr
				merged.Name = name
				c.Cache.Insert(merged)
			}
		}
	}

	return c.Cache.Lookup(name, qtype)
}

// queryChain walks the delegation hierarchy starting at c.Root.
func (c *Context) queryChain(ctx context.Context, name string, qtype dnsmsg.RRType) {
	authority, err := c.queryServer(ctx, name, qtype, c.Root)
	if err != nil {
		c.Log.WithError(err).Warn("query to root failed")
		return
	}

	if c.SingleQuery {
		return
	}

	if len(c.Cache.Lookup(name, qtype)) > 0 || len(c.Cache.Lookup(name, dnsmsg.TypeCNAME)) > 0 {
		return
	}

	nsRecords := filterNS(authority)
	if len(nsRecords) == 0 {
		return
	}

	// First pass: prefer an NS whose glue A record is already cached.
	for _, ns := range nsRecords {
		glue := c.Cache.Lookup(ns.Text, dnsmsg.TypeA)
		if len(glue) == 0 {
			continue
		}

		ip := firstIP(glue)
		if ip == nil {
			continue
		}

		if _, err := c.queryServer(ctx, name, qtype, ip); err != nil {
			c.Log.WithError(err).Warn("query to glue server failed")
		}

		return
	}

	// Second pass: resolve exactly one NS's A record from the root, then
	// query it. This bounds amplification from a broken delegation: at
	// most one extra nested queryChain is attempted regardless of how many
	// NS records were listed.
	host := nsRecords[0].Text
	c.queryChain(ctx, host, dnsmsg.TypeA)

	ip := firstIP(c.Cache.Lookup(host, dnsmsg.TypeA))
	if ip == nil {
		return
	}

	if _, err := c.queryServer(ctx, name, qtype, ip); err != nil {
		c.Log.WithError(err).Warn("query to resolved NS failed")
	}
}

// queryServer builds and sends one query, decodes the response (caching
// answer and additional records as a side effect via dnsmsg.DecodeResponse), and
// returns the authority set. Transport and decode failures are the single
// well-defined seam where errors are swallowed into an empty result by the
// caller.
func (c *Context) queryServer(ctx context.Context, name string, qtype dnsmsg.RRType, server net.IP) ([]dnsmsg.RR, error) {
	payload, id := dnsmsg.EncodeQuery(name, qtype)

	c.Log.WithFields(logrus.Fields{
		"server": server.String(),
		"name":   name,
		"qtype":  qtype.String(),
		"id":     id,
	}).Debug("sending query")

	raw, err := c.Transport.SendAndReceive(ctx, payload, server, dnsPort)
	if err != nil {
		return nil, fmt.Errorf("send query for %s to %s: %w", name, server, err)
	}

	resp, err := dnsmsg.DecodeResponse(raw, c.Cache)
	if err != nil {
		return nil, fmt.Errorf("decode response for %s from %s: %w", name, server, err)
	}

	c.Log.WithFields(logrus.Fields{
		"server":    server.String(),
		"name":      name,
		"authority": len(resp.Authority),
	}).Debug("query answered")

	return resp.Authority, nil
}

func filterNS(rrs []dnsmsg.RR) []dnsmsg.RR {
	var out []dnsmsg.RR
	for _, rr := range rrs {
		if rr.Type == dnsmsg.TypeNS {
			out = append(out, rr)
		}
	}

	return out
}

func firstIP(rrs []dnsmsg.RR) net.IP {
	for _, rr := range rrs {
		if rr.IP != nil {
			return rr.IP
		}
	}

	return nil
}
