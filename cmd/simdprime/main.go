package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oisee/simdprime/internal/lane"
	"github.com/oisee/simdprime/internal/obslog"
	"github.com/oisee/simdprime/internal/sieveconfig"
	"github.com/oisee/simdprime/internal/smallprime"
	"github.com/oisee/simdprime/pkg/reduce"
	"github.com/oisee/simdprime/pkg/residue"
	"github.com/oisee/simdprime/pkg/result"
	"github.com/oisee/simdprime/pkg/sieve"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simdprime",
		Short: "Branch-free trial-division sieve for prime candidate generation",
	}

	// search command
	var (
		q0Hex      string
		modeStr    string
		count      int
		primesFlag int
		chunk      int
		checkpoint string
		output     string
		verbose    bool
	)
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search for prime candidates starting from Q0",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sieveconfig.Validate(); err != nil {
				return err
			}
			lane.LogFeatures(obslog.New(nil, verbose))
			mode, err := parseMode(modeStr)
			if err != nil {
				return err
			}
			if !sieveconfig.ModeEnabled(modeStr) {
				return fmt.Errorf("mode %q is not enabled in this build", modeStr)
			}

			size, err := tableSizeFromFlagOrEnv(primesFlag)
			if err != nil {
				return err
			}

			st, err := reduce.Init(reduce.HexString(q0Hex), mode, size)
			if err != nil {
				return fmt.Errorf("initializing search: %w", err)
			}
			defer st.Wipe()

			fmt.Printf("simdprime search\n")
			fmt.Printf("  Mode: %s\n", modeStr)
			fmt.Printf("  Table size: %d\n", size)
			fmt.Printf("  Target count: %d\n", count)
			fmt.Println()

			set := result.NewSet(count)
			examined, err := sieve.Search(context.Background(), st, set, count, chunk)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			fmt.Printf("Examined %d candidates, found %d\n", examined, set.Len())
			for _, v := range set.Values() {
				fmt.Printf("  %016x\n", v)
			}

			if checkpoint != "" {
				ck := result.Snapshot(st, set, examined, count)
				if err := result.SaveCheckpoint(checkpoint, ck); err != nil {
					return fmt.Errorf("saving checkpoint: %w", err)
				}
				fmt.Printf("Checkpoint written to %s\n", checkpoint)
			}
			if output != "" {
				if err := writeJSONL(output, set.Values()); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
				fmt.Printf("Written to %s\n", output)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&q0Hex, "q0", "", "Starting value Q0, hex-encoded")
	searchCmd.Flags().StringVar(&modeStr, "mode", "plain", "Search mode: plain, twin, safe")
	searchCmd.Flags().IntVar(&count, "count", 1, "Number of surviving candidates to collect")
	searchCmd.Flags().IntVar(&primesFlag, "primes", 0, "Table size override: 576, 1856 or 3456 (0 = PRIMES env or default)")
	searchCmd.Flags().IntVar(&chunk, "chunk", 0, "Candidates examined per cooperative-cancellation chunk (0 = default)")
	searchCmd.Flags().StringVar(&checkpoint, "checkpoint", "", "Write a resumable checkpoint to this file")
	searchCmd.Flags().StringVar(&output, "output", "", "Write surviving candidates as JSONL to this file")
	searchCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	searchCmd.MarkFlagRequired("q0")

	// verify command
	verifyCmd := &cobra.Command{
		Use:   "verify [jsonl file]",
		Short: "Re-check every candidate in a search's JSONL output by naive trial division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyJSONL(args[0])
		},
	}

	// resume command
	resumeCmd := &cobra.Command{
		Use:   "resume [checkpoint file]",
		Short: "Resume a search from a checkpoint until it collects its original target count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resumeCheckpoint(args[0])
		},
	}

	rootCmd.AddCommand(searchCmd, verifyCmd, resumeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseMode(s string) (residue.Mode, error) {
	switch s {
	case "plain":
		return residue.Plain, nil
	case "twin":
		return residue.Twin, nil
	case "safe":
		return residue.Safe, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: want plain, twin or safe", s)
	}
}

func tableSizeFromFlagOrEnv(flagVal int) (smallprime.Size, error) {
	if flagVal != 0 {
		sz := smallprime.Size(flagVal)
		if !sz.Valid() {
			return 0, fmt.Errorf("unsupported --primes value %d", flagVal)
		}
		for _, enabled := range sieveconfig.EnabledSizes {
			if sz == enabled {
				return sz, nil
			}
		}
		return 0, fmt.Errorf("--primes value %d is not an enabled table size (have %v)", flagVal, sieveconfig.EnabledSizes)
	}
	return sieveconfig.TableSizeFromEnv()
}

func writeJSONL(path string, values []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, v := range values {
		if err := enc.Encode(struct {
			LSB64 string `json:"lsb64"`
		}{LSB64: hex.EncodeToString(uint64ToBytes(v))}); err != nil {
			return err
		}
	}
	return nil
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func resumeCheckpoint(path string) error {
	ck, err := result.LoadCheckpoint(path)
	if err != nil {
		return fmt.Errorf("loading checkpoint: %w", err)
	}
	st, set, err := ck.Restore()
	if err != nil {
		return fmt.Errorf("restoring checkpoint: %w", err)
	}
	defer st.Wipe()
	fmt.Printf("Resumed checkpoint: mode=%v size=%v already examined=%d already found=%d/%d\n",
		st.Mode, st.Size, ck.Completed, set.Len(), ck.Target)

	examined, err := sieve.Search(context.Background(), st, set, ck.Target, 0)
	if err != nil {
		return fmt.Errorf("resumed search: %w", err)
	}
	fmt.Printf("Examined %d more candidates, now have %d/%d\n", examined, set.Len(), ck.Target)
	for _, v := range set.Values() {
		fmt.Printf("  %016x\n", v)
	}
	return nil
}
