package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mergeconfig/cli/cmd"
	"github.com/ardnew/mergeconfig/lang"
	"github.com/ardnew/mergeconfig/pkg"
)

// CLI is the top-level command-line interface for mergeconfig.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	cmd.Options `embed:""`

	Version kong.VersionFlag `help:"Print version and exit" short:"v"`

	Process cmd.Process `cmd:"" default:"withargs" help:"Resolve files into a single configuration"`
	Tokens  cmd.Tokens  `cmd:""                    help:"Dump tokens (interactive when no input)"`
	Tree    cmd.Tree    `cmd:""                    help:"Dump the statement tree (interactive when no input)"`
	Deps    cmd.Deps    `cmd:""                    help:"Print the files the inputs depend on"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the mergeconfig CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(configFile)

	vars := kong.Vars{
		"version":                configVersion(),
		cmd.ConfigIdentifier:     configFilePath,
		cmd.CacheIdentifier:      cacheDir(),
		cmd.DumpFormatIdentifier: strings.Join(lang.DumpFormats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that the logger is configured before
	// kong parses anything, regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli.Options)
}

func configVersion() string {
	return pkg.Name + " " + pkg.Version
}
