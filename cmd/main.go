// Command spicesim reads a netlist file, runs whichever of OP/DC/TRAN it
// requests, and writes one CSV table per executed analysis to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/edp1096/mna-spice/pkg/engine"
	"github.com/edp1096/mna-spice/pkg/netlist"
	"github.com/edp1096/mna-spice/pkg/result"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		io.Pfred("usage: spicesim <netlist-file>\n")
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		io.Pfred("spicesim: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading netlist: %w", err)
	}

	ckt, err := netlist.Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing netlist: %w", err)
	}

	eng := engine.New(ckt)
	if err := eng.Check(); err != nil {
		return fmt.Errorf("checking netlist: %w", err)
	}

	io.Pfcyan("running %s\n", ckt.Title)
	res, err := eng.Run()
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	for _, tbl := range []*result.Table{res.OP, res.DC, res.Tran} {
		if tbl == nil {
			continue
		}
		if err := tbl.WriteCSV(os.Stdout); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}

	return nil
}
