// Command tracedump prints the events of a trace directory, in
// either wire format, auto-detected from the files present.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/metacraft-labs/runtime-tracing-go/traceio"
	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

func main() {
	var (
		flagDir    = flag.String("dir", ".", "trace `directory` (must contain trace.json or trace.bin)")
		flagEvents = flag.Int("events", -1, "if >= 0, print only Event records with this EventLogKind ordinal")
		flagColor  = flag.Bool("color", true, "colorize event kind labels")
	)
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	format, path, err := traceio.DetectFormat(*flagDir)
	if err != nil {
		log.Fatal(err)
	}

	events, err := traceio.LoadTraceEvents(path, format)
	truncated := errors.Is(err, traceio.ErrTruncated)
	if err != nil && !truncated {
		log.Fatal(err)
	}

	label := fmt.Sprintf
	if *flagColor {
		label = color.New(color.FgCyan).SprintfFunc()
	}

	for i, e := range events {
		if *flagEvents >= 0 {
			ev, ok := e.(tracetypes.EventLogEvent)
			if !ok || int(ev.EventKind) != *flagEvents {
				continue
			}
		}
		fmt.Printf("%6d %s %+v\n", i, label("%-20s", e.Kind()), e)
	}

	if truncated {
		fmt.Fprintf(os.Stderr, "warning: trace is truncated; %d events recovered from complete blocks\n", len(events))
	}
}
