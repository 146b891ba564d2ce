package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind"
	"github.com/erraggy/oasbind/binder"
	"github.com/erraggy/oasbind/internal/mcpserver"
	"github.com/erraggy/oasbind/spec"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasbind v%s\n", oasbind.Version())
	case "help", "-h", "--help":
		printUsage()
	case "describe":
		if err := handleDescribe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// describeFlags contains flags for the describe command
type describeFlags struct {
	format            string
	typePrefix        string
	includeDeprecated bool
	verbose           bool
}

func setupDescribeFlags() (*flag.FlagSet, *describeFlags) {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	flags := &describeFlags{}

	fs.StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	fs.StringVar(&flags.typePrefix, "type-prefix", "Api", "prefix for type names that shadow basic-type tokens")
	fs.BoolVar(&flags.includeDeprecated, "include-deprecated", false, "bind deprecated schemas and operations")
	fs.BoolVar(&flags.verbose, "verbose", false, "log binding progress to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasbind describe [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Bind an API description document and print its descriptor set.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasbind describe openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasbind describe --format json --include-deprecated openapi.yaml\n")
	}

	return fs, flags
}

func handleDescribe(args []string) error {
	fs, flags := setupDescribeFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("describe command requires exactly one file path")
	}

	var loadOpts []spec.Option
	bindOpts := []binder.Option{binder.WithTypePrefix(flags.typePrefix)}
	if flags.verbose {
		logger := spec.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		loadOpts = append(loadOpts, spec.WithLogger(logger))
		bindOpts = append(bindOpts, binder.WithLogger(logger))
	}
	if flags.includeDeprecated {
		bindOpts = append(bindOpts, binder.WithIncludeDeprecated())
	}

	doc, err := spec.Load(fs.Arg(0), loadOpts...)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	set, err := binder.Bind(doc, bindOpts...)
	if err != nil {
		return fmt.Errorf("binding document: %w", err)
	}

	for _, issue := range set.Issues {
		fmt.Fprintln(os.Stderr, issue.String())
	}

	var data []byte
	switch flags.format {
	case "json":
		data, err = json.MarshalIndent(set, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(set)
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", flags.format)
	}
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))

	if set.HasCriticalIssues() {
		return fmt.Errorf("binding finished with %d critical issue(s)", set.CriticalCount)
	}
	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	fmt.Println("oasbind - API description binding for code generation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  oasbind <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  describe   Bind a document and print its descriptor set")
	fmt.Println("  mcp        Run the MCP server over stdio")
	fmt.Println("  version    Show version information")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Run 'oasbind <command> --help' for command-specific flags.")
}
