package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/torisat/torisat"
)

var startTime time.Time

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "debug,d",
			Usage: "Debug mode",
		},
		cli.BoolTFlag{
			Name:  "verbosity,verb",
			Usage: "Verbosity mode",
		},
		cli.StringFlag{
			Name:  "input-file, in",
			Usage: "Input cnf file for solving (required)",
			Value: "None",
		},
		cli.IntFlag{
			Name:  "cpu-time-limit",
			Usage: "Limit on wall-clock running time allowed in seconds",
			Value: -1,
		},
		cli.StringFlag{
			Name:  "result-output-file, out",
			Usage: "Output file",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "JSON options file; flags override its values",
		},
	}
}

func validateFlags(c *cli.Context) error {
	if c.String("input-file") == "None" {
		return fmt.Errorf("input-file is required")
	}
	return nil
}

func buildOptions(c *cli.Context) (torisat.Options, error) {
	options := torisat.DefaultOptions()
	if path := c.String("config"); path != "" {
		loaded, err := torisat.LoadOptions(path)
		if err != nil {
			return options, err
		}
		options = loaded
	}
	if c.IsSet("debug") {
		options.Debug = c.Bool("debug")
	}
	if c.IsSet("verbosity") {
		options.Verbosity = c.BoolT("verbosity")
	}
	return options, nil
}

func printProblemStatistics(s *torisat.Solver) {
	fmt.Printf("c ============================[ Problem Statistics ]=============================\n")
	fmt.Printf("c |                                                                             |\n")
	fmt.Printf("c |  Number of variables:  %12d                                         |\n", s.NumVars())
	fmt.Printf("c |  Number of clauses:    %12d                                         |\n", s.Statistics.NumClauses)
	fmt.Printf("c ================================================================================\n")
}

func printStatistics(s *torisat.Solver) {
	elapsedSeconds := time.Since(startTime).Seconds()
	fmt.Printf("c ================================================================================\n")
	fmt.Printf("c conflicts: %12d (%.02f / sec)\n", s.Statistics.ConflictCount, float64(s.Statistics.ConflictCount)/elapsedSeconds)
	fmt.Printf("c decisions: %12d (%.02f / sec)\n", s.Statistics.DecisionCount, float64(s.Statistics.DecisionCount)/elapsedSeconds)
	fmt.Printf("c propagations: %12d (%.02f / sec)\n", s.Statistics.PropagationCount, float64(s.Statistics.PropagationCount)/elapsedSeconds)
	fmt.Printf("c learnt clauses: %12d\n", s.Statistics.NumLearnts)
	fmt.Printf("c cpu time: %12f\n", elapsedSeconds)
}

func setTimeout(s *torisat.Solver, limitSeconds int, verbose bool) {
	if limitSeconds <= 0 {
		return
	}
	go func() {
		<-time.After(time.Duration(limitSeconds) * time.Second)
		fmt.Println("c TIMEOUT")
		if verbose {
			printStatistics(s)
		}
		fmt.Println("\ns INDETERMINATE")
		os.Exit(0)
	}()
}

func setInterrupt(s *torisat.Solver, verbose bool) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("c INTERRUPT")
		if verbose {
			printStatistics(s)
		}
		fmt.Println("\ns INDETERMINATE")
		os.Exit(0)
	}()
}

func resultLines(s *torisat.Solver, status torisat.LitBool) string {
	if status != torisat.LitBoolTrue {
		return "s UNSATISFIABLE\n"
	}
	literals := lo.Map(s.ModelLiterals(), func(literal int, _ int) string {
		return strconv.Itoa(literal)
	})
	return "s SATISFIABLE\nv " + strings.Join(append(literals, "0"), " ") + "\n"
}

func init() {
	startTime = time.Now()
}

func main() {
	app := cli.NewApp()
	app.Name = "torisat"
	app.Usage = "A CDCL SAT solver written in Go"
	app.Flags = getFlags()

	app.Action = func(c *cli.Context) error {
		if err := validateFlags(c); err != nil {
			fmt.Println(err)
			cli.ShowAppHelpAndExit(c, 2)
		}
		options, err := buildOptions(c)
		if err != nil {
			return err
		}

		fp, err := os.Open(c.String("input-file"))
		if err != nil {
			return err
		}
		defer fp.Close()

		cnf, err := torisat.ParseDimacs(bufio.NewScanner(fp))
		if err != nil {
			return err
		}
		solver, err := cnf.NewSolver(options)
		if err != nil {
			return err
		}
		setTimeout(solver, c.Int("cpu-time-limit"), options.Verbosity)
		setInterrupt(solver, options.Verbosity)

		if options.Verbosity {
			printProblemStatistics(solver)
		}
		status := solver.Solve()
		if options.Verbosity {
			printStatistics(solver)
		}

		result := resultLines(solver, status)
		fmt.Print("\n" + result)
		if out := c.String("result-output-file"); out != "" {
			if err := os.WriteFile(out, []byte(result), 0644); err != nil {
				return err
			}
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
