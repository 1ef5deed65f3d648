package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/pool"
	"github.com/joshuapare/memkit/pool/strategy"
)

var (
	simWords    int
	simWordSize int
	simStrategy string
	simDumpPath string
	simStats    bool
	simMmap     bool
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().IntVar(&simWords, "words", 1024, "Pool capacity in words (max 65535)")
	cmd.Flags().IntVar(&simWordSize, "word-size", 8, "Word size in bytes")
	cmd.Flags().StringVar(&simStrategy, "strategy", "best", "Initial placement strategy (best|worst)")
	cmd.Flags().StringVar(&simDumpPath, "dump", "", "Write the final memory map to this file")
	cmd.Flags().BoolVar(&simStats, "stats", false, "Print operation statistics")
	cmd.Flags().BoolVar(&simMmap, "mmap", false, "Back the pool with an anonymous memory mapping")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [trace-file]",
		Short: "Run an allocation trace against a pool",
		Long: `The simulate command initializes a pool and replays a trace of
allocation requests against it, then prints the resulting memory map,
hole list, and occupancy bitmap.

Trace grammar, one operation per line ('#' starts a comment):

  alloc <bytes>          allocate; the block is numbered in order (0, 1, ...)
  free <block-number>    release a previously allocated block
  strategy best|worst    swap the placement strategy

With no trace file, the trace is read from stdin.

Example:
  poolctl simulate --words 96 --word-size 8 trace.txt
  echo "alloc 64" | poolctl simulate --stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(args)
		},
	}
}

func parseStrategy(name string) (strategy.Func, error) {
	switch name {
	case "best":
		return strategy.BestFit, nil
	case "worst":
		return strategy.WorstFit, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want best or worst)", name)
	}
}

func runSimulate(args []string) error {
	fn, err := parseStrategy(simStrategy)
	if err != nil {
		return err
	}

	var opts []pool.Option
	if simMmap {
		opts = append(opts, pool.WithAnonStore())
	}
	m := pool.New(simWordSize, fn, opts...)
	if err := m.Initialize(simWords); err != nil {
		return err
	}
	defer m.Shutdown()

	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	if err := replayTrace(m, in); err != nil {
		return err
	}

	if simDumpPath != "" {
		if err := m.DumpMemoryMap(simDumpPath); err != nil {
			return err
		}
		printInfo("memory map written to %s\n", simDumpPath)
	}

	return printSummary(m)
}

// replayTrace applies trace operations to the pool. Allocated blocks are
// numbered in allocation order; freeing an unknown or already-freed number
// is reported but, like the pool itself, carries on.
func replayTrace(m *pool.Manager, in io.Reader) error {
	var blocks [][]byte

	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want '<op> <arg>', got %q", line, text)
		}
		op, arg := fields[0], fields[1]

		switch op {
		case "alloc":
			size, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("line %d: bad size %q", line, arg)
			}
			blk, err := m.Allocate(size)
			if err != nil {
				printInfo("#%d alloc %d -> %v\n", len(blocks), size, err)
				blocks = append(blocks, nil) // keep numbering stable
				continue
			}
			printInfo("#%d alloc %d -> %d bytes\n", len(blocks), size, len(blk))
			blocks = append(blocks, blk)

		case "free":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 || n >= len(blocks) {
				return fmt.Errorf("line %d: bad block number %q", line, arg)
			}
			m.Free(blocks[n])
			blocks[n] = nil
			printInfo("free #%d\n", n)

		case "strategy":
			fn, err := parseStrategy(arg)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			m.SetStrategy(fn)
			printInfo("strategy -> %s\n", arg)

		default:
			return fmt.Errorf("line %d: unknown op %q", line, op)
		}
	}
	return scanner.Err()
}

// simSummary is the JSON shape of the final report.
type simSummary struct {
	MemoryMap string      `json:"memory_map"`
	Holes     []holeJSON  `json:"holes"`
	Bitmap    string      `json:"bitmap_hex"`
	Stats     *pool.Stats `json:"stats,omitempty"`
}

type holeJSON struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

func printSummary(m *pool.Manager) error {
	holes := format.DecodeHoleList(m.HoleList())

	// A zero-word pool exports nothing; report an empty bitmap.
	bitmap := m.BitmapBytes()
	if len(bitmap) < format.BitmapPrefixSize {
		bitmap = make([]byte, format.BitmapPrefixSize)
	}

	if jsonOut {
		s := simSummary{
			MemoryMap: format.FormatHoleMap(holes),
			Holes:     make([]holeJSON, 0, len(holes)),
			Bitmap:    fmt.Sprintf("%x", bitmap[format.BitmapPrefixSize:]),
		}
		for _, h := range holes {
			s.Holes = append(s.Holes, holeJSON{Start: h.Start, Length: h.Length})
		}
		if simStats {
			st := m.Stats()
			s.Stats = &st
		}
		return printJSON(s)
	}

	printInfo("memory map: %s\n", format.FormatHoleMap(holes))
	printInfo("bitmap:     %x\n", bitmap[format.BitmapPrefixSize:])
	if simStats {
		st := m.Stats()
		printInfo("stats:      allocs=%d (failed %d) frees=%d (no-op %d) words: +%d/-%d\n",
			st.AllocCalls, st.AllocFails, st.FreeCalls, st.FreeNoOps,
			st.WordsAllocated, st.WordsFreed)
		printInfo("layout:     %d hole(s), %d partition(s)\n", st.Holes, st.Partitions)
	}
	return nil
}
