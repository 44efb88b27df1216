package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/rigup/pkg/bootstrap"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/style"
	"github.com/spf13/cobra"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newBootstrapCmd(g *globalOptions) *cobra.Command {
	var opts bootstrap.Options

	cmd := &cobra.Command{
		Use:     "bootstrap",
		Short:   MsgBootstrapShort,
		Long:    MsgBootstrapLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.bootstrap")

			if !g.dryRun && os.Geteuid() != 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNotRoot)
			}

			env, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			ctx, cancel := signalContext(cmd)
			defer cancel()

			logger.Info().
				Bool("dryRun", g.dryRun).
				Bool("skipDotfiles", opts.SkipDotfiles).
				Bool("skipTweaks", opts.SkipTweaks).
				Msg("Starting bootstrap")

			result, err := bootstrap.Run(ctx, env.deps(), opts)
			if result != nil && result.Summary.Total > 0 {
				style.Setup(os.Stdout)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.RenderSummary(result.Summary))
			}
			if g.dryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.SkipDotfiles, "skip-dotfiles", false, MsgFlagSkipDotfiles)
	cmd.Flags().BoolVar(&opts.SkipTweaks, "skip-tweaks", false, MsgFlagSkipTweaks)

	return cmd
}
