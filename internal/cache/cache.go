// Package cache implements the resolver's resource-record store: a mapping
// from (name, type) to a set of resource records.
//
// The shape (a mutex-guarded map of slices) is adapted from the mutex+map
// cache pattern common across DNS resolvers, stripped of TTL expiry and LRU
// eviction: this cache grows for the lifetime of the process and never
// expires entries on its own.
package cache

import (
	"strings"
	"sync"

	"github.com/glorixz/DNSResolver/internal/dnsmsg"
)

type key struct {
	name string
	typ  dnsmsg.RRType
}

func newKey(name string, typ dnsmsg.RRType) key {
	return key{name: strings.ToLower(name), typ: typ}
}

// RRCache is a process-local, concurrency-safe store of resource records
// keyed by (name, type). It implements dnsmsg.Inserter so the wire codec
// can insert decoded records directly.
type RRCache struct {
	mu   sync.RWMutex
	data map[key][]dnsmsg.RR
}

// New returns an empty cache.
func New() *RRCache {
	return &RRCache{data: make(map[key][]dnsmsg.RR)}
}

// Insert adds rr to the set for (rr.Name, rr.Type). If an RR with the same
// (name, type, rdata) identity already exists, it is replaced in place
// (insertion order of the surviving entries is otherwise preserved); TTL is
// excluded from identity, so a refreshed TTL overwrites rather than
// duplicates.
func (c *RRCache) Insert(rr dnsmsg.RR) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := newKey(rr.Name, rr.Type)
	set := c.data[k]

	for i, existing := range set {
		if sameIdentity(existing, rr) {
			set[i] = rr
			return
		}
	}

	c.data[k] = append(set, rr)
}

func sameIdentity(a, b dnsmsg.RR) bool {
	return strings.EqualFold(a.Name, b.Name) && a.Type == b.Type && a.RDataText() == b.RDataText()
}

// Lookup returns the cached set for (name, type), matched case-insensitively
// on name. The returned slice is a copy: callers must not be able to mutate
// cache state through it, and the resolver never mutates an RR after
// insertion.
func (c *RRCache) Lookup(name string, typ dnsmsg.RRType) []dnsmsg.RR {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := c.data[newKey(name, typ)]
	if len(set) == 0 {
		return nil
	}

	out := make([]dnsmsg.RR, len(set))
	copy(out, set)

	return out
}

// Entry is one (name, type) -> records pairing, used by ForEach.
type Entry struct {
	Name    string
	Type    dnsmsg.RRType
	Records []dnsmsg.RR
}

// ForEach iterates every cache entry, in no particular order, invoking fn
// once per (name, type) key. It backs the REPL's "dump" command.
func (c *RRCache) ForEach(fn func(Entry)) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for k, set := range c.data {
		records := make([]dnsmsg.RR, len(set))
		copy(records, set)
		fn(Entry{Name: k.name, Type: k.typ, Records: records})
	}
}
