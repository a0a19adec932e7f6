// Package cmd implements the CLI application to manage the portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/lruedas/cartera"
	"github.com/lruedas/cartera/config"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "operations")
	c.Register(&sellCmd{}, "operations")
	c.Register(&rmCmd{}, "operations")
	c.Register(&opsCmd{}, "operations")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
	c.Register(&calendarCmd{}, "reports")

	c.Register(&rateCmd{}, "market")
	c.Register(&updateCmd{}, "market")

	c.Register(&topicCmd{}, "help")
}

// CommandNames lists the registered subcommands, for shell completion.
func CommandNames() []string {
	return []string{
		"buy", "sell", "rm", "ops",
		"holding", "summary", "chart", "calendar",
		"rate", "update", "topic",
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultPath(), "Path to the configuration file")
var ledgerFile = flag.String("ledger-file", "", "Path to the operations file (JSONL format), overrides the configuration")

// LoadConfig reads the app configuration, falling back to defaults when the
// file does not exist.
func LoadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// ledgerPath resolves the operations file: flag first, then configuration.
func ledgerPath() (string, error) {
	if *ledgerFile != "" {
		return *ledgerFile, nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.LedgerFile, nil
}

// DecodeLedger loads the operations file into a ledger. A missing file is an
// empty ledger, not an error.
func DecodeLedger() (*cartera.Ledger, error) {
	path, err := ledgerPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, operations file %q does not exist, starting empty", path)
		return cartera.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open operations file %q: %w", path, err)
	}
	defer f.Close()
	return cartera.DecodeLedger(f)
}

// AppendOperation appends a single operation to the app operations file.
func AppendOperation(op cartera.Operation) subcommands.ExitStatus {
	path, err := ledgerPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening operations file %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := cartera.EncodeOperation(f, op); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to operations file %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s operation to %s\n", op.What(), path)
	return subcommands.ExitSuccess
}

// RewriteLedger persists the whole ledger, replacing the operations file.
// Used after deletions, where append-only is not enough.
func RewriteLedger(ledger *cartera.Ledger) error {
	path, err := ledgerPath()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot rewrite operations file %q: %w", path, err)
	}
	defer f.Close()
	return cartera.EncodeLedger(f, ledger)
}
