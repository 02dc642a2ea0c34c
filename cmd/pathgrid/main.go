// Command pathgrid answers a single path query read as JSON from a file or
// stdin and prints the JSON response. It exits with status 1 when the response
// reports an error.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/pathgrid/dijkstra"
	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/playfield"
	"github.com/katalvlaran/pathgrid/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathgrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "Request file (default stdin)")
	maxWidth := fs.Int("max-width", playfield.DefaultMaxWidth, "Largest accepted grid width")
	maxHeight := fs.Int("max-height", playfield.DefaultMaxHeight, "Largest accepted grid height")
	strict := fs.Bool("strict", false, "Use strict relaxation (always cheapest path)")
	dump := fs.Bool("dump", false, "Print the grid to stderr before searching")
	verify := fs.Bool("verify", false, "Log the optimal cost next to the returned one")
	verbose := fs.Bool("v", false, "Log search details to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New()
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *maxWidth <= 0 || *maxHeight <= 0 {
		logger.Errorf("limits must be positive: %dx%d", *maxWidth, *maxHeight)
		return 2
	}

	src := stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			logger.WithError(err).Error("open request")
			return 1
		}
		defer f.Close()
		src = f
	}

	limits := playfield.Limits{MaxWidth: *maxWidth, MaxHeight: *maxHeight}
	opts := []pathfinder.Option{
		pathfinder.WithLimits(limits),
		pathfinder.WithLogger(logger),
	}
	if *strict {
		opts = append(opts, pathfinder.WithRelaxation(pathfinder.RelaxStrict))
	}

	var resp wire.Response
	req, err := wire.DecodeRequest(src)
	if err != nil {
		logger.WithError(err).Debug("decode request")
		resp = wire.Failure(wire.Kind(err))
	} else {
		if *dump {
			dumpRequest(req, limits, stderr, logger)
		}
		resp = wire.Handle(req, opts...)
		if *verify && resp.OK() {
			verifyResponse(req, resp, limits, logger)
		}
	}

	b, err := wire.Marshal(resp)
	if err != nil {
		logger.WithError(err).Error("encode response")
		return 1
	}
	fmt.Fprintln(stdout, string(b))
	if !resp.OK() {
		return 1
	}
	return 0
}

// newPlayfield builds a fresh grid for req, or nil when req is invalid.
func newPlayfield(req wire.Request, limits playfield.Limits) *playfield.Playfield {
	q, err := req.Query()
	if err != nil {
		return nil
	}
	pf, err := playfield.New(q.Width, q.Height, q.Start, q.Destination, q.Penalties, playfield.WithLimits(limits))
	if err != nil {
		return nil
	}
	return pf
}

// dumpRequest prints the initial grid state of req when it is valid.
func dumpRequest(req wire.Request, limits playfield.Limits, w io.Writer, logger log.FieldLogger) {
	pf := newPlayfield(req, limits)
	if pf == nil {
		return
	}
	if err := pf.Dump(w); err != nil {
		logger.WithError(err).Warn("dump grid")
	}
}

// verifyResponse compares the cost of the returned path with the heap-based
// optimum for the same grid.
func verifyResponse(req wire.Request, resp wire.Response, limits playfield.Limits, logger log.FieldLogger) {
	pf := newPlayfield(req, limits)
	if pf == nil {
		return
	}
	dist, _, err := dijkstra.Distances(pf)
	if err != nil {
		logger.WithError(err).Warn("verify")
		return
	}
	cost := pf.PathCost(playfield.Path{Steps: resp.Path.Steps})
	optimal := dist[pf.ToIndex(pf.Destination())]
	if cost > optimal {
		logger.Warnf("verify: cost=%v optimal=%v", cost, optimal)
		return
	}
	logger.Infof("verify: cost=%v optimal=%v", cost, optimal)
}
