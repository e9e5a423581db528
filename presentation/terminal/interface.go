// Package terminal is the interactive front end: a read-eval loop over
// scenario names and the confirmation prompt for scenarios that change
// data on the live sites.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pom_automation/application/scenarios"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ScenarioRunner executes a batch of scenarios
type ScenarioRunner interface {
	Run(ctx context.Context, list []scenarios.Scenario) (*entities.RunReport, error)
}

type TerminalInterface struct {
	runner ScenarioRunner
	guard  interfaces.ScenarioGuard
	logger logrus.FieldLogger
	reader *bufio.Reader
	out    io.Writer
}

func NewTerminalInterface(runner ScenarioRunner, guard interfaces.ScenarioGuard, logger logrus.FieldLogger, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		runner: runner,
		guard:  guard,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run - reads commands until quit, EOF or ctx ends
func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Page object test shell")
	fmt.Fprintln(t.out, "======================")
	fmt.Fprintln(t.out, "Enter scenario or site names, 'list', or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if strings.TrimSpace(input) == "" {
				fmt.Fprintln(t.out)
				return nil
			}
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(t.out, "Bye!")
			return nil
		case "list", "ls":
			PrintScenarios(t.out, t.guard, scenarios.All())
			continue
		case "help", "?":
			fmt.Fprintln(t.out, "Commands: list, quit, <scenario|site> ...")
			continue
		}

		list, err := scenarios.Find(strings.Fields(input)...)
		if err != nil {
			fmt.Fprintf(t.out, "%v\n\n", err)
			continue
		}
		list, err = Approve(ctx, t.guard, t.reader, t.out, list)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(t.out, "Nothing to run")
			continue
		}

		fmt.Fprintf(t.out, "\nRunning %d scenario(s)\n\n", len(list))
		report, err := t.runner.Run(ctx, list)
		if err != nil {
			t.logger.Errorf("Run failed: %v", err)
		}
		if report != nil && !report.OK() {
			fmt.Fprintf(t.out, "\n%d scenario(s) failed\n\n", report.Failed)
		} else {
			fmt.Fprintf(t.out, "\nDone\n\n")
		}
	}
}

// Approve asks about every scenario the guard flags and returns the ones
// the user agreed to, in order. Anything but y or yes declines, and so
// does end of input.
func Approve(ctx context.Context, guard interfaces.ScenarioGuard, reader *bufio.Reader, out io.Writer, list []scenarios.Scenario) ([]scenarios.Scenario, error) {
	approved := make([]scenarios.Scenario, 0, len(list))
	for _, sc := range list {
		if !guard.RequiresApproval(ctx, sc.ScenarioInfo) {
			approved = append(approved, sc)
			continue
		}
		fmt.Fprintf(out, "%s writes to the live site (%s risk): %s\n", sc.Name, guard.GetRiskLevel(ctx, sc.ScenarioInfo), sc.Description)
		fmt.Fprint(out, "Run it? [y/N] ")

		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			approved = append(approved, sc)
		default:
			fmt.Fprintf(out, "Skipping %s\n", sc.Name)
		}
	}
	return approved, nil
}

// PrintScenarios writes one line per scenario: name, risk, description
func PrintScenarios(out io.Writer, guard interfaces.ScenarioGuard, list []scenarios.Scenario) {
	ctx := context.Background()
	width := 0
	for _, sc := range list {
		width = max(width, len(sc.Name))
	}
	for _, sc := range list {
		fmt.Fprintf(out, "  %-*s  %-6s  %s\n", width, sc.Name, guard.GetRiskLevel(ctx, sc.ScenarioInfo), sc.Description)
	}
}
