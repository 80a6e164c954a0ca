package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/lvlath-labs/pbtgroup/engine"
	"github.com/lvlath-labs/pbtgroup/hostchan"
	"github.com/lvlath-labs/pbtgroup/internal/obs"
	"github.com/lvlath-labs/pbtgroup/probinput"
	"github.com/lvlath-labs/pbtgroup/refiner"
	"github.com/lvlath-labs/pbtgroup/search"
	"github.com/lvlath-labs/pbtgroup/solutions"
)

// ErrBothChannels is returned when a caller supplies both a pipe pair
// and a port (spec §6 "Either (--inpipe, --outpipe) or --port; not
// both").
var ErrBothChannels = errors.New("pbtgroup: specify --inpipe/--outpipe or --port, not both")

// ErrHalfPipe is returned when only one of --inpipe/--outpipe is given.
var ErrHalfPipe = errors.New("pbtgroup: --inpipe and --outpipe must be given together")

// run wires the flags into a host channel (if any), parses the problem,
// drives the search to completion and reports the result. Every error
// it returns that reached a live host channel has already been sent as
// an ["error", message] frame (spec §7): the caller's only remaining
// job is to set a non-zero exit code.
func run(f flags) error {
	logger, err := obs.New(f.quiet, f.trace)
	if err != nil {
		return fmt.Errorf("pbtgroup: open trace sink: %w", err)
	}
	defer logger.Close()

	conn, err := dialHostChannel(f)
	if err != nil {
		return err
	}

	runErr := runProblem(f, logger, conn)
	if runErr != nil && conn != nil {
		conn.SendError(runErr.Error())
	}
	return runErr
}

// dialHostChannel opens the host channel per spec §6, or returns a nil
// *hostchan.Conn when neither a pipe pair nor a port was given (the
// engine then runs in local, host-less mode: opaque "Host" constraints
// and find_canonical are unavailable, matching probinput.ErrNoHostClient).
func dialHostChannel(f flags) (*hostchan.Conn, error) {
	havePipes := f.inpipe >= 0 || f.outpipe >= 0
	havePort := f.port != 0
	if havePipes && havePort {
		return nil, ErrBothChannels
	}
	if havePipes && (f.inpipe < 0 || f.outpipe < 0) {
		return nil, ErrHalfPipe
	}

	switch {
	case havePort:
		c, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", f.port))
		if err != nil {
			return nil, fmt.Errorf("pbtgroup: dial host port %d: %w", f.port, err)
		}
		return hostchan.New(c, c), nil
	case havePipes:
		r := os.NewFile(uintptr(f.inpipe), "inpipe")
		w := os.NewFile(uintptr(f.outpipe), "outpipe")
		return hostchan.New(r, w), nil
	default:
		return nil, nil
	}
}

// runProblem does the actual work once the channel (if any) is open.
func runProblem(f flags, logger *obs.Logger, conn *hostchan.Conn) error {
	problemSrc, err := openInput(f.input)
	if err != nil {
		return err
	}
	defer problemSrc.Close()

	line, err := io.ReadAll(problemSrc)
	if err != nil {
		return fmt.Errorf("pbtgroup: read problem: %w", err)
	}

	var host probinput.HostQuerier
	if conn != nil {
		host = conn
	}

	problem, err := probinput.Parse(line, host)
	if err != nil {
		return err
	}
	logger.Infow("problem parsed", "run_id", logger.RunID(), "points", problem.Points, "refiners", len(problem.Refiners))

	var canon solutions.CanonicalMinClient
	if problem.FindCanonical {
		if conn == nil {
			return fmt.Errorf("pbtgroup: find_canonical requires a host channel")
		}
		canon = conn
	}

	st := engine.New(problem.Points, problem.Refiners)
	driver := search.New(st, canon)
	driver.RootSearch = problem.RootSearch
	driver.FindSingle = problem.FindSingle
	driver.FullGraphRefine = problem.FullGraphRefine
	driver.Mode = searchMode(problem)

	if err := driver.Run(); err != nil {
		return fmt.Errorf("pbtgroup: search failed: %w", err)
	}
	logger.Infow("search complete", "run_id", logger.RunID(), "nodes", st.Stats.Nodes, "solutions", st.Stats.Solutions)

	report := buildReport(st, driver)
	if conn != nil {
		return conn.End(report)
	}
	return writeOutput(f.output, report)
}

func searchMode(p *probinput.Problem) search.Mode {
	switch {
	case p.FindCanonical:
		return search.Canonical
	case p.FindCoset:
		return search.Coset
	default:
		return search.Stabiliser
	}
}

func buildReport(st *engine.State, driver *search.Driver) hostchan.EndReport {
	gens := st.Sols.Generators()
	sols := make([][]int, len(gens))
	for i, g := range gens {
		sols[i] = to1Indexed(g.Images())
	}

	var canonical []int
	if rec := st.Sols.Canonical(); rec != nil {
		canonical = to1Indexed(rec.Perm.Images())
	}

	var fixOrder []int
	if rb := st.Store.RBase(); rb != nil {
		fixOrder = to1Indexed(rb.Partition.BaseFixedValues())
	}

	return hostchan.EndReport{
		Sols:           sols,
		Canonical:      canonical,
		SearchFixOrder: fixOrder,
		Stats:          st.Stats,
		RBaseBranches:  driver.RBaseBranches(),
	}
}

func to1Indexed(vs []int) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v + 1
	}
	return out
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pbtgroup: open input %s: %w", path, err)
	}
	return fh, nil
}

// writeOutput is the plain, host-less report path: spec §6 only defines
// the wire ["end", report] shape for the host channel, so a run with
// neither --inpipe/--outpipe nor --port writes the same EndReport body
// as one JSON document instead (SPEC_FULL.md §5, host-less CLI I/O).
func writeOutput(path string, report hostchan.EndReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("pbtgroup: encode output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var _ refiner.HostClient = (*hostchan.Conn)(nil)
