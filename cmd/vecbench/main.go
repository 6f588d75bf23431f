package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"vec"
)

// ---------------- Flags ---------------- //

var (
	ops      int
	seed     int64
	workload string
	reserve  bool
	tracked  bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:          "vecbench",
	Short:        "Drive vec workloads and report timings",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&ops, "ops", 1_000_000, "operations per workload")
	rootCmd.Flags().Int64Var(&seed, "seed", 42, "seed for generated payloads")
	rootCmd.Flags().StringVar(&workload, "workload", "append", "workload to run: append, churn or mixed")
	rootCmd.Flags().BoolVar(&reserve, "reserve", false, "reserve the final capacity up front")
	rootCmd.Flags().BoolVar(&tracked, "tracked", false, "attach counting element hooks")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "log at debug level")
}

// ---------------- Payloads ---------------- //

type payload struct {
	key  string
	hits int64
}

func makePayload() payload {
	return payload{
		key:  gofakeit.Username(),
		hits: int64(gofakeit.Number(0, 1<<30)),
	}
}

// hookTally counts element traffic when --tracked is set.
type hookTally struct {
	clones, transfers, disposes int
}

func (h *hookTally) funcs() vec.Funcs[payload] {
	return vec.Funcs[payload]{
		Clone: func(src *payload) (payload, error) {
			h.clones++
			return *src, nil
		},
		Transfer: func(src *payload) (payload, error) {
			h.transfers++
			e := *src
			*src = payload{}
			return e, nil
		},
		Dispose: func(src *payload) {
			h.disposes++
		},
	}
}

func newVector(tally *hookTally) *vec.Vector[payload] {
	if tracked {
		return vec.NewWith(tally.funcs())
	}
	return vec.New[payload]()
}

// ---------------- Workloads ---------------- //

func runAppend(v *vec.Vector[payload]) error {
	if reserve {
		if err := v.Reserve(ops); err != nil {
			return err
		}
	}
	for i := 0; i < ops; i++ {
		if _, err := v.Append(makePayload()); err != nil {
			return err
		}
	}
	return nil
}

// runChurn keeps a fixed-size window busy with front inserts and
// removals, the worst case for a contiguous sequence.
func runChurn(v *vec.Vector[payload]) error {
	const window = 4096
	for i := 0; i < window; i++ {
		if _, err := v.Append(makePayload()); err != nil {
			return err
		}
	}
	for i := 0; i < ops; i++ {
		pos := gofakeit.Number(0, 1<<20) % 8
		if _, err := v.Insert(pos, makePayload()); err != nil {
			return err
		}
		if err := v.Remove(gofakeit.Number(0, 1<<20) % 8); err != nil {
			return err
		}
	}
	return nil
}

// runMixed replays a randomized operation mix against a plain slice
// and fails on the first divergence.
func runMixed(v *vec.Vector[payload]) error {
	var ref []payload
	for i := 0; i < ops; i++ {
		switch gofakeit.Number(0, 9) {
		case 0, 1, 2, 3, 4:
			p := makePayload()
			if _, err := v.Append(p); err != nil {
				return err
			}
			ref = append(ref, p)
		case 5, 6:
			p := makePayload()
			at := gofakeit.Number(0, 1<<20) % (len(ref) + 1)
			if _, err := v.Insert(at, p); err != nil {
				return err
			}
			ref = append(ref, payload{})
			copy(ref[at+1:], ref[at:])
			ref[at] = p
		case 7, 8:
			if len(ref) == 0 {
				continue
			}
			at := gofakeit.Number(0, 1<<20) % len(ref)
			if err := v.Remove(at); err != nil {
				return err
			}
			ref = append(ref[:at], ref[at+1:]...)
		case 9:
			if len(ref) == 0 {
				continue
			}
			got := v.Pop()
			if got != ref[len(ref)-1] {
				return fmt.Errorf("pop mismatch at op %d: got %q", i, got.key)
			}
			ref = ref[:len(ref)-1]
		}
		if v.Len() != len(ref) {
			return fmt.Errorf("length mismatch at op %d: vec %d, ref %d", i, v.Len(), len(ref))
		}
	}
	for i, want := range ref {
		if got := *v.At(i); got != want {
			return fmt.Errorf("element mismatch at %d: got %q, want %q", i, got.key, want.key)
		}
	}
	slog.Debug("mixed workload verified", "len", v.Len(), "cap", v.Cap())
	return nil
}

// ---------------- Main ---------------- //

func run(cmd *cobra.Command, args []string) error {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})))

	gofakeit.Seed(seed)
	slog.Info("starting workload", "workload", workload, "ops", ops, "seed", seed, "reserve", reserve, "tracked", tracked)

	var tally hookTally
	v := newVector(&tally)
	defer v.Release()

	start := time.Now()
	var err error
	switch workload {
	case "append":
		err = runAppend(v)
	case "churn":
		err = runChurn(v)
	case "mixed":
		err = runMixed(v)
	default:
		return errors.New("unknown workload: " + workload)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	slog.Info("workload done",
		"elapsed", elapsed,
		"ns_per_op", elapsed.Nanoseconds()/int64(max(ops, 1)),
		"len", v.Len(),
		"cap", v.Cap(),
	)
	if tracked {
		slog.Info("hook traffic",
			"clones", tally.clones,
			"transfers", tally.transfers,
			"disposes", tally.disposes,
		)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
