package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type Args struct {
	MigrationsDir string

	// Pages is the number of listing pages the preloader fetches.
	Pages int
}

func ParseArgs() *Args {
	return parseArgs(pflag.CommandLine, os.Args[1:])
}

func parseArgs(fs *pflag.FlagSet, arguments []string) *Args {
	args := &Args{}

	fs.StringVarP(&args.MigrationsDir, "migrations", "m", "", "Path to database migrations directory (embedded migrations when empty)")
	fs.IntVar(&args.Pages, "pages", 5, "Number of listing pages to preload")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fs.PrintDefaults()
	}

	// Errors are reported by the flag set itself.
	_ = fs.Parse(arguments)

	return args
}
