// Command irdns is an interactive iterative DNS resolver shell. Usage:
//
//	irdns <rootServerIP> [-p1]
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/glorixz/DNSResolver/internal/repl"
	"github.com/glorixz/DNSResolver/internal/resolver"
)

func main() {
	p1 := flag.Bool("p1", false, "restrict the resolver to one non-iterative query per lookup")
	flag.Parse()

	rootArg := flag.Arg(0)
	if rootArg == "" {
		fmt.Fprintln(os.Stderr, "usage: irdns <rootServerIP> [-p1]")
		os.Exit(1)
	}

	// flag.Parse stops at the first positional argument, so a -p1 written
	// after the root address is picked up here.
	for _, arg := range flag.Args()[1:] {
		if arg == "-p1" {
			*p1 = true
		}
	}

	root := net.ParseIP(rootArg)
	if root == nil {
		fmt.Fprintf(os.Stderr, "invalid root server address %q\n", rootArg)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	rc := resolver.New(root, log)
	rc.SingleQuery = *p1

	repl.New(rc, os.Stdout, os.Stderr).Run(os.Stdin)
}
