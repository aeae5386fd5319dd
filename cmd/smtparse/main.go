/*
Smtparse parses an SMT-LIB v2 script and prints its parse tree.

It reads a script from a file given with -f, or from stdin if -f is omitted.
When stdin is a terminal and no file was given, it instead starts an
interactive session that parses one script at a time as it is typed,
using GNU Readline-style line editing.

Usage:

	smtparse [flags]

The flags are:

	-v, --version
		Print the current version of smtparse and exit.

	-f, --file FILE
		Parse the given file instead of reading from stdin.

	-o, --format tree|compact
		Select how the parse result is printed. Defaults to "tree".

	-c, --config FILE
		Load cache and service settings from the given TOML config file.

	--cache
		Look up and store results in the on-disk parse cache named by the
		config file's [cache] section (or its default location).
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/dekarrin/smtparse"
	"github.com/dekarrin/smtparse/internal/config"
	"github.com/dekarrin/smtparse/internal/parsecache"
	"github.com/dekarrin/smtparse/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates the input was not a well-formed script.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue setting up the parser's environment (bad flags, unreadable
	// config or input file).
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Print the current version and exit")
	inputFile   *string = pflag.StringP("file", "f", "", "Parse the given file instead of stdin")
	format      *string = pflag.StringP("format", "o", "tree", "Output format: tree or compact")
	configFile  *string = pflag.StringP("config", "c", "", "Load settings from the given TOML config file")
	useCache    *bool   = pflag.Bool("cache", false, "Look up and store results in the on-disk parse cache")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	var cache *parsecache.Cache
	if *useCache {
		cache, err = parsecache.Open(cfg.Cache.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer cache.Close()
	}

	if *inputFile == "" && readline.IsTerminal(int(os.Stdin.Fd())) {
		runInteractive(cache)
		return
	}

	src, name, err := readSource(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if err := parseAndPrint(name, src, cache); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		returnCode = ExitParseError
		return
	}
}

func readSource(path string) (src string, name string, err error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

func parseAndPrint(name, src string, cache *parsecache.Cache) error {
	ctx := context.Background()

	if cache != nil {
		if elements, ok, err := cache.Get(ctx, src); err == nil && ok {
			printResult(smtparse.NewParseResult(elements...))
			return nil
		}
	}

	p := smtparse.NewParser()
	result, err := p.Parse(name, src)
	if err != nil {
		return err
	}

	if cache != nil {
		_ = cache.Put(ctx, src, result.Elements())
	}

	printResult(result)
	return nil
}

func printResult(result *smtparse.ParseResult) {
	if *format == "compact" {
		fmt.Println(result.String())
		return
	}
	fmt.Println(result.Dump())
}

func runInteractive(cache *parsecache.Cache) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "smt> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return
		}
		if line == "" {
			continue
		}
		if err := parseAndPrint("<stdin>", line, cache); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		}
	}
}
