package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/depdist/render"
)

// Option structs for subcommands that have flags
type ParseOptions struct {
	Out    string
	Title  string
	Labels []string
}

type MddOptions struct {
	Granularity string
	Format      string
	NoColor     bool
	DocPath     string
}

type DocOptions struct {
	Start   int
	Count   int
	DocPath string
}

type SentenceOptions struct {
	DocPath string
}

type ImportDocOptions struct {
	From string
	To   string
}

type ExportDocOptions struct {
	From string
	To   string
}

type QueryOptions struct {
	Granularity string
	Format      string
	DocPath     string
}

var granularities = []string{"sentence", "document"}

// stringSliceFlag implements flag.Value for multi-value strings
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// enumFlag implements flag.Value for restricted strings
type enumFlag struct {
	allowed []string
	value   *string
}

func (e *enumFlag) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumFlag) Set(value string) error {
	for _, a := range e.allowed {
		if a == value {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.allowed, ", "))
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("depdist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

func parseParseArgs(args []string, ui UI) (ParseOptions, string, error) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ParseOptions
	fs.StringVar(&opts.Out, "out", "", "Write the JSON document to this file instead of stdout")
	fs.StringVar(&opts.Out, "o", "", "alias for -out")

	fs.StringVar(&opts.Title, "title", "", "Document title (defaults to the input file name)")

	labels := (*stringSliceFlag)(&opts.Labels)
	fs.Var(labels, "label", "Attach a label to the document (repeatable)")
	fs.Var(labels, "l", "alias for -label")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s parse [options] <file.conllu>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Parse a CoNLL-U file into a JSON token table document.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if fs.NArg() != 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("parse command needs exactly one argument: <file.conllu>")
	}

	return opts, fs.Arg(0), nil
}

func parseMddArgs(args []string, ui UI) (MddOptions, string, string, error) {
	fs := flag.NewFlagSet("mdd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts MddOptions

	opts.Granularity = "document"
	granFlag := &enumFlag{allowed: granularities, value: &opts.Granularity}
	fs.Var(granFlag, "granularity", "Aggregate per document or per sentence")
	fs.Var(granFlag, "g", "alias for -granularity")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Output format: table, csv or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.BoolVar(&opts.NoColor, "no-color", false, "Show the table without formatting (color)")
	fs.BoolVar(&opts.NoColor, "c", false, "alias for -no-color")

	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("DEPDIST_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("DEPDIST_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s mdd [options] <source> [sentenceId]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Compute mean dependency distance. <source> can be a .conllu file,\n")
		_, _ = fmt.Fprintf(fs.Output(), "  a JSON doc file or a DB ID. With [sentenceId] only that sentence\n")
		_, _ = fmt.Fprintf(fs.Output(), "  is aggregated.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", "", err
	}

	if fs.NArg() == 0 || fs.NArg() > 2 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", "", errors.New("mdd command needs one or two arguments: <source> [sentenceId]")
	}

	source := fs.Arg(0)
	sentId := ""
	if fs.NArg() == 2 {
		sentId = fs.Arg(1)
	}

	if !isFile(source) {
		if !isDigits(source) {
			return opts, "", "", fmt.Errorf("source not found and not a valid DB ID: %s", source)
		}
		if opts.DocPath == "" {
			return opts, "", "", errors.New("Doc path must be specified via -d or DEPDIST_DOC_PATH when not reading from a file")
		}
	}

	return opts, source, sentId, nil
}

func parseDocArgs(args []string, ui UI) (DocOptions, string, error) {
	fs := flag.NewFlagSet("doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DocOptions
	fs.IntVar(&opts.Start, "start", 0, "Index of the first sentence to show")
	fs.IntVar(&opts.Count, "n", -1, "Number of sentences to show (-1 for all)")
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("DEPDIST_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("DEPDIST_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s doc [options] [file_path|db_id]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show contents of a document file or DB entry.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if fs.NArg() > 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("doc command accepts at most one argument")
	}

	arg := fs.Arg(0)

	// Validation
	if arg != "" && !isFile(arg) && !isDigits(arg) {
		return opts, "", fmt.Errorf("file not found and not a valid DB ID: %s", arg)
	}

	if !isFile(arg) && opts.DocPath == "" {
		return opts, "", errors.New("Doc path must be specified via -d or DEPDIST_DOC_PATH when not reading from a file")
	}

	return opts, arg, nil
}

func parseSentenceArgs(args []string, ui UI) (SentenceOptions, string, string, error) {
	fs := flag.NewFlagSet("sentence", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SentenceOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("DEPDIST_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("DEPDIST_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s sentence <source> <sentenceId>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show a specific sentence's token table. <source> can be a file path or a DB ID.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", "", err
	}

	if fs.NArg() != 2 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", "", errors.New("sentence command needs exactly two arguments: <source> <sentenceId>")
	}

	source := fs.Arg(0)
	if !isFile(source) {
		if !isDigits(source) {
			return opts, "", "", fmt.Errorf("source not found and not a valid DB ID: %s", source)
		}
		if opts.DocPath == "" {
			return opts, "", "", errors.New("Doc path must be specified via -d or DEPDIST_DOC_PATH when not reading from a file")
		}
	}

	return opts, source, fs.Arg(1), nil
}

func parseImportDocArgs(args []string, ui UI) (ImportDocOptions, error) {
	fs := flag.NewFlagSet("import-doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ImportDocOptions
	fs.StringVar(&opts.From, "from", "", "Source directory with JSON docs")
	fs.StringVar(&opts.To, "to", "", "Target SQLite database file")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s import-doc --from <dir> --to <sqlite_file>\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("--from and --to are required")
	}

	return opts, nil
}

func parseExportDocArgs(args []string, ui UI) (ExportDocOptions, error) {
	fs := flag.NewFlagSet("export-doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ExportDocOptions
	fs.StringVar(&opts.From, "from", "", "Source SQLite database file")
	fs.StringVar(&opts.To, "to", "", "Target directory for JSON docs")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s export-doc --from <sqlite_file> --to <dir>\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.From == "" || opts.To == "" {
		return opts, errors.New("--from and --to are required")
	}

	return opts, nil
}

func parseQueryArgs(args []string, ui UI) (QueryOptions, error) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts QueryOptions

	opts.Granularity = "document"
	granFlag := &enumFlag{allowed: granularities, value: &opts.Granularity}
	fs.Var(granFlag, "granularity", "Aggregate per document or per sentence")
	fs.Var(granFlag, "g", "alias for -granularity")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Output format: table, csv or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("DEPDIST_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("DEPDIST_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s query [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive query mode.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.DocPath == "" {
		return opts, errors.New("Doc path must be specified via -d or DEPDIST_DOC_PATH")
	}

	if _, err := os.Stat(opts.DocPath); err != nil {
		return opts, fmt.Errorf("Doc path not found: %s", opts.DocPath)
	}

	return opts, nil
}

func parseBashArgs(args []string, ui UI) error {
	fs := flag.NewFlagSet("bash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s bash\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Output bash completion script.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}
	return nil
}

func parseCompleteArgs(args []string, ui UI) ([]string, error) {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return fs.Args(), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
