package config

import (
	"flag"
)

// parses CLI flags for the tui subcommand
func ParseTUIFlags(args []string) Flags {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "base URL of the code service")
	lang := fs.String("lang", "", "initial language (python, javascript)")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{APIURL: *apiURL, Language: *lang, Args: fs.Args()}
}

// parses CLI flags for the generate subcommand
func ParseGenerateFlags(args []string) Flags {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "base URL of the code service")
	lang := fs.String("lang", "", "target language (python, javascript)")
	optimize := fs.Bool("optimize", false, "optimize the generated code as well")
	copyFlag := fs.Bool("copy", false, "copy the final code to the clipboard")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{
		APIURL:   *apiURL,
		Language: *lang,
		Optimize: *optimize,
		Copy:     *copyFlag,
		Args:     fs.Args(),
	}
}

// parses CLI flags for the optimize subcommand
func ParseOptimizeFlags(args []string) Flags {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "base URL of the code service")
	lang := fs.String("lang", "", "language of the code (python, javascript)")
	file := fs.String("file", "-", "file with the code to optimize, - for stdin")
	copyFlag := fs.Bool("copy", false, "copy the optimized code to the clipboard")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{
		APIURL:   *apiURL,
		Language: *lang,
		File:     *file,
		Copy:     *copyFlag,
		Args:     fs.Args(),
	}
}
