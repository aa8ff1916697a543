package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/loader"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
	"github.com/arnavshah/roster-api-go/pkg/sink"
	"github.com/arnavshah/roster-api-go/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagSlots  int
	flagSeed   int64
	flagOutput string
	flagJSON   bool
	flagOpen   bool
	flagQuiet  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Build a rotating duty roster from a sign-up sheet",
		Long: `Roster reads a sign-up sheet exported as CSV (name, age, language), splits the
participants into language tracks and age bands, and draws a rotation in which
everyone in a band serves once before anyone repeats.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Roster YAML config (default $ROSTER_CONFIG)")
	rootCmd.PersistentFlags().IntVarP(&flagSlots, "slots", "s", 0, "Duty slots per day (prompted when unset)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <signup.csv>",
		Short: "Generate the schedule and write it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, participants, slots, err := prepareRun(cmd, args[0])
			if err != nil {
				return err
			}

			seed := time.Now().UnixNano()
			if cmd.Flags().Changed("seed") {
				seed = flagSeed
			}

			sched := scheduler.NewScheduler(rf.Tracks, slots, rand.New(rand.NewSource(seed)),
				scheduler.WithMaxDrawAttempts(rf.MaxDrawAttempts))
			grid, err := sched.Generate(participants)
			if err != nil {
				return err
			}
			grid.Seed = seed

			if err := sink.WriteFile(flagOutput, grid); err != nil {
				return err
			}
			log.Printf("Wrote %d days to %s (seed %d)", len(grid.Days), flagOutput, seed)

			switch {
			case flagJSON:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(grid); err != nil {
					return fmt.Errorf("encode schedule: %w", err)
				}
			case !flagQuiet:
				ui.PrintGrid(os.Stdout, grid)
			}

			if flagOpen {
				if err := openFile(flagOutput); err != nil {
					log.Printf("could not open %s: %v", flagOutput, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed for a reproducible schedule")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "AltarServiceSchedule.csv", "Output CSV path")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print the schedule as JSON instead of a table")
	cmd.Flags().BoolVar(&flagOpen, "open", false, "Open the written file with the system viewer")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not print the schedule")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <signup.csv>",
		Short: "Report cohorts and age bands without drawing a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, participants, slots, err := prepareRun(cmd, args[0])
			if err != nil {
				return err
			}

			sched := scheduler.NewScheduler(rf.Tracks, slots, nil)
			if err := sched.Prepare(participants); err != nil {
				return err
			}
			ui.PrintSummaries(os.Stdout, rf.Tracks, sched.Summaries(), sched.RotationCount())
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default roster YAML config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultRosterYAML)
			return err
		},
	}
}

// prepareRun loads the roster config and sign-up sheet, then settles the slot count
func prepareRun(cmd *cobra.Command, path string) (*config.RosterFile, []models.Participant, int, error) {
	config.LoadDotEnv()

	rf, err := loadRosterConfig()
	if err != nil {
		return nil, nil, 0, err
	}

	log.Printf("Reading %s...", path)
	participants, err := loader.LoadFile(path, rf.Tracks)
	if err != nil {
		return nil, nil, 0, err
	}
	log.Printf("Loaded %d participants", len(participants))

	slots, err := resolveSlots(cmd.Flags().Changed("slots"), flagSlots, rf.Slots, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, 0, err
	}
	return rf, participants, slots, nil
}

func loadRosterConfig() (*config.RosterFile, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("ROSTER_CONFIG")
	}
	if path == "" {
		rf := config.DefaultRoster()
		return &rf, nil
	}
	return config.LoadRosterFile(path)
}
