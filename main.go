package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"project/target-expander/cidr"
	"project/target-expander/config"
	"project/target-expander/dns"
	"project/target-expander/formatter"
	"project/target-expander/target"

	"github.com/akamensky/argparse"
	"github.com/charmbracelet/log"
)

var errNoExpressions = errors.New("no target expressions given (use -t or the config file's expressions)")

// options are the command line values, already merged over the config file.
type options struct {
	cfg   *config.Config
	check bool
}

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		log.Fatal("target expansion failed", "error", err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	// 1. Expand every expression in order
	parser := &target.Parser{MaxExpansion: opts.cfg.Limit()}
	targets, err := parser.ParseAll(opts.cfg.Expressions)
	if err != nil {
		return err
	}
	log.Info("expanded targets", "expressions", len(opts.cfg.Expressions), "targets", len(targets))

	// 2. Deduplicate and sort
	if opts.cfg.Unique {
		addrs := cidr.ParseTargets(targets)
		if opts.cfg.Sort {
			addrs = cidr.DeduplicateAndSort(addrs)
		} else {
			addrs = cidr.Deduplicate(addrs)
		}
		log.Debug("removed duplicate targets", "before", len(targets), "after", len(addrs))
		targets = addrs.Targets()
	}

	// 3. Optional sanity check of every target
	if opts.check {
		invalid := checkTargets(targets)
		log.Info("checked targets", "invalid", invalid)
	}

	// 4. Format output
	lines, skipped, err := formatter.Format(opts.cfg.Format, targets, opts.cfg.SegmentLength)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		log.Warn("no reverse name for target", "target", s)
	}

	w := bufio.NewWriter(stdout)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}

func parseArgs(args []string) (*options, error) {
	parser := argparse.NewParser("target-expander", "Expand target expressions (lists, ip ranges, CIDR) into concrete targets")

	configArg := parser.String("c", "config", &argparse.Options{
		Required: false,
		Help:     "YAML configuration file (default: " + config.DefaultFile + " if present)",
	})
	targetArg := parser.StringList("t", "target", &argparse.Options{
		Required: false,
		Help:     "Target expression, repeatable. Examples: 'a.com,b.com', '192.168.1.1-10:22', '10.0.0.0/24:[80]', '@targets.txt'",
	})
	formatArg := parser.Selector("f", "format", formatter.Modes, &argparse.Options{
		Required: false,
		Help:     "Output format",
	})
	maxArg := parser.Int("m", "max", &argparse.Options{
		Required: false,
		Help:     "Largest CIDR expansion allowed",
	})
	noLimitArg := parser.Flag("n", "no-limit", &argparse.Options{Help: "Expand CIDR blocks of any size"})
	uniqueArg := parser.Flag("u", "unique", &argparse.Options{Help: "Drop duplicate targets"})
	sortArg := parser.Flag("s", "sort", &argparse.Options{Help: "Sort targets numerically (implies --unique)"})
	checkArg := parser.Flag("k", "check", &argparse.Options{Help: "Warn about targets that are neither IP addresses nor hostnames"})
	verboseArg := parser.Flag("v", "verbose", &argparse.Options{Help: "Debug logging"})

	if err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("%w\n%s", err, parser.Usage(nil))
	}

	if *verboseArg {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(*configArg)
	if err != nil {
		return nil, err
	}

	// Command line values override the file
	cfg.Expressions = append(cfg.Expressions, *targetArg...)
	if *formatArg != "" {
		cfg.Format = *formatArg
	}
	if *maxArg > 0 {
		cfg.MaxExpansion = *maxArg
	}
	if *noLimitArg {
		cfg.MaxExpansion = -1
	}
	if *uniqueArg {
		cfg.Unique = true
	}
	if *sortArg {
		cfg.Sort = true
		cfg.Unique = true
	}

	if len(cfg.Expressions) == 0 {
		return nil, fmt.Errorf("%w\n%s", errNoExpressions, parser.Usage(nil))
	}

	return &options{cfg: cfg, check: *checkArg}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		log.Debug("configuration loaded", "path", path)
		return cfg, nil
	}

	cfg, found, err := config.LoadOptional(config.DefaultFile)
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug("configuration loaded", "path", config.DefaultFile)
	}
	return cfg, nil
}

// checkTargets logs every target that is neither an IP address nor a hostname
// and returns how many there were.
func checkTargets(targets []string) int {
	invalid := 0
	for _, t := range targets {
		kind := dns.Classify(t)
		if kind == dns.KindInvalid {
			log.Warn("target is not an IP address or hostname", "target", t)
			invalid++
			continue
		}
		log.Debug("checked target", "target", t, "kind", kind)
	}
	return invalid
}
