package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"schedsim/internal/input"
	"schedsim/internal/report"
	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

func main() {
	var (
		configPath = flag.String("config", "config.yml", "YAML options file")
		demo       = flag.Bool("demo", false, "run the built-in sample batch instead of an input file")
		tracePath  = flag.String("trace", "", "write the event trace as CSV to this file")
		chartPath  = flag.String("chart", "", "write a PNG comparison chart to this file")
		parallel   = flag.Bool("parallel", false, "run the three algorithms concurrently")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.txt>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Read the options; flags win over the file
	opts, err := sched.LoadOptions(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *tracePath != "" {
		opts.TraceCSV = *tracePath
	}
	if *chartPath != "" {
		opts.ChartPNG = *chartPath
	}
	if *parallel {
		opts.Parallel = true
	}

	// Load the batch
	var (
		procs []sched.Process
		cfg   sched.RunConfig
	)
	switch {
	case *demo:
		procs, cfg = workload.Sample()
	case flag.NArg() == 1:
		procs, cfg, err = input.Load(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	results, err := sched.SimulateAll(procs, cfg, opts)
	if err != nil {
		log.Fatal(err)
	}
	report.WriteAll(os.Stdout, results)

	if opts.TraceCSV != "" {
		if err := sched.SaveTraceCSV(opts.TraceCSV, results); err != nil {
			log.Fatal(err)
		}
		log.Println("trace written to", opts.TraceCSV)
	}
	if opts.ChartPNG != "" {
		if err := report.SaveChart(opts.ChartPNG, results); err != nil {
			log.Fatal(err)
		}
		log.Println("chart written to", opts.ChartPNG)
	}
}
