// Package repl implements the line-oriented interactive shell: lookup/l,
// trace, server, dump, quit/exit. It is intentionally thin — it only calls
// into internal/resolver and internal/cache, carrying no resolution logic
// of its own.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/glorixz/DNSResolver/internal/cache"
	"github.com/glorixz/DNSResolver/internal/dnsmsg"
	"github.com/glorixz/DNSResolver/internal/resolver"
)

// printFormat is the column layout shared by lookup results and dump
// output.
const printFormat = "%-30s %-5s %-8d %s\n"

// REPL drives the resolver from line-oriented input.
type REPL struct {
	ctx *resolver.Context
	out io.Writer
	err io.Writer
}

// New returns a REPL wired to an already-constructed resolver context.
func New(rc *resolver.Context, out, stderr io.Writer) *REPL {
	return &REPL{ctx: rc, out: out, err: stderr}
}

// Run reads commands from in until quit/exit or EOF.
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "lookup", "l":
			r.handleLookup(args)
		case "trace":
			r.handleTrace(args)
		case "server":
			r.handleServer(args)
		case "dump":
			r.handleDump()
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(r.err, "unknown command %q\n", cmd)
		}
	}
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}

	return line
}

func (r *REPL) handleLookup(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(r.err, "usage: lookup <name> [type]")
		return
	}

	name := args[0]
	qtype := dnsmsg.TypeA
	if len(args) >= 2 {
		t, err := dnsmsg.TypeFromString(args[1])
		if err != nil {
			fmt.Fprintln(r.err, err)
			return
		}
		qtype = t
	}

	rrs := r.ctx.Resolve(context.Background(), name, qtype, 0)
	r.printRecords(name, qtype, rrs)
}

func (r *REPL) printRecords(name string, qtype dnsmsg.RRType, rrs []dnsmsg.RR) {
	if len(rrs) == 0 {
		fmt.Fprintf(r.out, printFormat, name, qtype.String(), -1, "0.0.0.0")
		return
	}

	for _, rr := range rrs {
		fmt.Fprintf(r.out, printFormat, rr.Name, rr.Type.String(), rr.TTL, rr.RDataText())
	}
}

func (r *REPL) handleTrace(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.err, "usage: trace on|off")
		return
	}

	switch args[0] {
	case "on":
		r.ctx.Log.SetLevel(logrus.DebugLevel)
	case "off":
		r.ctx.Log.SetLevel(logrus.WarnLevel)
	default:
		fmt.Fprintln(r.err, "usage: trace on|off")
	}
}

func (r *REPL) handleServer(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.err, "usage: server <ip>")
		return
	}

	ip := net.ParseIP(args[0])
	if ip == nil {
		fmt.Fprintf(r.err, "invalid server address %q\n", args[0])
		return
	}

	r.ctx.Root = ip
}

func (r *REPL) handleDump() {
	var entries []cache.Entry
	r.ctx.Cache.ForEach(func(e cache.Entry) {
		entries = append(entries, e)
	})

	for _, e := range entries {
		for _, rr := range e.Records {
			fmt.Fprintf(r.out, printFormat, rr.Name, rr.Type.String(), rr.TTL, rr.RDataText())
		}
	}
}

