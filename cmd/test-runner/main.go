// Package main - test-runner
// Plays the end-to-end countdown scenarios and exits non-zero on failure.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/test"
)

func main() {
	app := cli.NewApp()
	app.Name = "test-runner"
	app.Usage = "run the countdown scenarios against an in-process engine"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "show engine logs",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logger.Discard()
	if c.Bool("verbose") {
		log = logger.New(logger.Options{Level: "debug", Output: os.Stderr})
	}

	fmt.Println("COUNTDOWN SCENARIO SUITE")
	fmt.Println(strings.Repeat("=", 60))

	results := test.RunAll(log)
	passed, failed := 0, 0
	for _, r := range results {
		mark := "PASS"
		if r.Passed {
			passed++
		} else {
			failed++
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %-45s %s\n", mark, r.ScenarioName, r.Reason)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Passed: %d\n", passed)
	fmt.Printf("   Failed: %d\n", failed)

	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d scenario(s) failed", failed), 1)
	}
	return nil
}
