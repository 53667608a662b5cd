package cli

import (
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thanhnguyen2187/mt-dti/ui"
)

type (
	Args struct {
		Verbose  bool         `arg:"-v" help:"print debug logs"`
		Tree     *TreeCmd     `arg:"subcommand:tree" help:"print the type hierarchy"`
		Inspect  *InspectCmd  `arg:"subcommand:inspect" help:"print every field of one type"`
		Inherits *InheritsCmd `arg:"subcommand:inherits" help:"check whether a type inherits from another"`
		Convert  *ConvertCmd  `arg:"subcommand:convert" help:"convert between manifests and binary tables"`
		Browse   *BrowseCmd   `arg:"subcommand:browse" help:"browse the hierarchy interactively"`
	}
	TreeCmd struct {
		File string `arg:"required" help:"manifest or binary table" placeholder:"types.yaml"`
		JSON bool   `arg:"--json" help:"print nested JSON instead of text"`
	}
	InspectCmd struct {
		File string `arg:"required" help:"manifest or binary table" placeholder:"types.yaml"`
		Type string `arg:"positional,required" help:"type name, or hash with a 0x prefix" placeholder:"TYPE"`
	}
	InheritsCmd struct {
		File     string `arg:"required" help:"manifest or binary table" placeholder:"types.yaml"`
		Type     string `arg:"positional,required" help:"type name, or hash with a 0x prefix" placeholder:"TYPE"`
		Ancestor string `arg:"positional,required" help:"ancestor name, or hash with a 0x prefix" placeholder:"ANCESTOR"`
	}
	ConvertCmd struct {
		From  string `arg:"required" help:"path to source file" placeholder:"types.yaml"`
		To    string `arg:"required" help:"path to destination file" placeholder:"types.dti"`
		Force bool   `help:"overwrite the destination file"`
	}
	BrowseCmd struct {
		File string `arg:"required" help:"manifest or binary table" placeholder:"types.yaml"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A CLI utility to inspect type descriptor forests:",
			"hierarchies of types with their sizes, allocators and identity hashes,",
			"kept either as YAML/TOML manifests or as binary tables.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func SetupLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetOutput(os.Stderr)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Run executes the chosen subcommand, writing results to stdout.
func Run(args Args, stdout io.Writer) error {
	switch {
	case args.Tree != nil:
		return RunTree(*args.Tree, stdout)
	case args.Inspect != nil:
		return RunInspect(*args.Inspect, stdout)
	case args.Inherits != nil:
		return RunInherits(*args.Inherits, stdout)
	case args.Convert != nil:
		return RunConvert(*args.Convert, stdout)
	case args.Browse != nil:
		forest, err := LoadForest(args.Browse.File)
		if err != nil {
			return err
		}
		return ui.Start(forest)
	default:
		return errors.New("no command given, see --help")
	}
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	SetupLogging(args.Verbose)

	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stdout)
		os.Exit(2)
	}
	if err := Run(args, os.Stdout); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
