package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/rigup/pkg/bootstrap"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/style"
	"github.com/spf13/cobra"
)

func newInstallCmd(g *globalOptions) *cobra.Command {
	var (
		opts   bootstrap.InstallOptions
		strict bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.install")

			env, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if strict {
				env.config.Pipeline.Strict = true
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			logger.Info().
				Str("user", opts.User).
				Str("manifest", opts.Manifest).
				Bool("dryRun", g.dryRun).
				Msg("Starting install")

			summary, err := bootstrap.Install(ctx, env.deps(), opts)
			if summary.Total > 0 {
				style.Setup(os.Stdout)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.RenderSummary(summary))
			}
			if g.dryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			if err != nil {
				return err
			}
			if n := len(summary.Failed); n > 0 {
				logger.Warn().Strs("failed", summary.FailedIdentifiers()).Msgf(MsgFailedRecordsNote, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.User, "user", "u", "", MsgFlagUser)
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", MsgFlagManifest)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)

	return cmd
}
