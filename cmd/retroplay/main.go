// Zaparoo Retroplay
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Retroplay.
//
// Zaparoo Retroplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Retroplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Retroplay.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/ZaparooProject/retroplay/pkg/cli"
	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/ZaparooProject/retroplay/pkg/helpers/command"
	"github.com/ZaparooProject/retroplay/pkg/launch"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const usage = config.AppName + " ROM_FILE [OPTIONS]"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newRootCmd(env cli.Env) *cobra.Command {
	var flags *cli.Flags

	root := &cobra.Command{
		Use:   usage,
		Short: "Run RetroArch games from the command line",
		Long: `Run RetroArch games from the command line.

Content is collected from arguments, --game, a RetroArch playlist, --dir and
piped stdin, narrowed down by filters and sorting, and one entry is run with
the core matched by the filetype rules in the settings file.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := helpers.InitLogging(helpers.LogDir(), flags.Verbose, nil)
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			log.Debug().Strs("args", args).Msg("retroplay started")
			return cli.Run(cmd.Context(), flags, args, env)
		},
	}
	root.Flags().SortFlags = false
	flags = cli.SetupFlags(root.Flags())
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return launch.Fail(launch.ExitEnvironment, "%v", err)
	})

	return root
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, usage)
		return launch.ExitOK
	}

	root := newRootCmd(cli.Env{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  helpers.StdinFile{File: os.Stdin},
		Exec:   &command.RealExecutor{},
		Fs:     afero.NewOsFs(),
		Clock:  clockwork.NewRealClock(),
	})
	expanded, err := cli.ExpandArgs(root.Flags(), args)
	if err != nil {
		log.Error().Err(err).Msg("invalid arguments")
		if !slices.Contains(args, "-Q") && !slices.Contains(args, "--quiet") {
			_, _ = fmt.Fprintln(stderr, err)
		}
		return launch.ExitEnvironment
	}
	root.SetArgs(expanded)

	err = root.ExecuteContext(ctx)
	if err == nil {
		return launch.ExitOK
	}

	quiet, _ := root.Flags().GetBool("quiet")
	if exitErr, ok := cli.IsExitError(err); ok {
		log.Error().Int("code", exitErr.Code).Msg(exitErr.Msg)
		if !quiet {
			_, _ = fmt.Fprintln(stderr, exitErr.Msg)
		}
		return exitErr.Code
	}

	log.Error().Err(err).Msg("retroplay failed")
	_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
	return launch.ExitFailure
}
