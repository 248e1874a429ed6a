package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/videonormalizer/cmd"
	"github.com/lepinkainen/videonormalizer/config"
	"github.com/lepinkainen/videonormalizer/logging"
	"github.com/lepinkainen/videonormalizer/types"
)

var Version = "dev"

type CLI struct {
	Config   kong.ConfigFlag  `help:"Load flag defaults from this TOML or YAML file" placeholder:"FILE"`
	LogFile  string           `help:"Rotating log file, empty to disable" type:"path" default:"${log_file}"`
	LogLevel string           `help:"Log level" enum:"trace,debug,info,warn,error" default:"info"`
	LogJSON  bool             `name:"log-json" help:"Write the log file as JSON lines"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Convert cmd.ConvertCmd `cmd:"" default:"withargs" help:"Convert a video library to H.265 MP4"`
	Watch   cmd.WatchCmd   `cmd:"" help:"Convert a library and keep converting new files as they arrive"`
	Verify  cmd.VerifyCmd  `cmd:"" help:"Check that files contain an H.265 video stream"`
	History cmd.HistoryCmd `cmd:"" help:"Show recorded conversion runs"`
	Check   cmd.CheckCmd   `cmd:"" help:"Check ffmpeg/ffprobe and the available encoder backends"`
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name(config.AppName),
		kong.Description("Normalize a video library to H.265 in MP4, one file at a time."),
		kong.UsageOnError(),
		kong.Configuration(config.Loader, config.DefaultPaths()...),
		kong.Vars{
			"version":  Version,
			"log_file": config.DefaultLogPath(),
		},
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, closer, err := logging.New(logging.Options{
		Name:  config.AppName,
		Level: cli.LogLevel,
		File:  cli.LogFile,
		JSON:  cli.LogJSON,
	})
	ctx.FatalIfErrorf(err)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx.BindTo(runCtx, (*context.Context)(nil))

	appCtx := &types.AppContext{Version: Version, Logger: logger, Out: os.Stdout}
	err = ctx.Run(appCtx)

	stop()
	_ = closer.Close()
	ctx.FatalIfErrorf(err)
}
