package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newManifestCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manifest",
		Short:   MsgManifestShort,
		GroupID: "misc",
	}

	check := &cobra.Command{
		Use:   "check [path or url]",
		Short: MsgManifestCheckShort,
		Long: `Check loads a manifest exactly like an installation would and lists every
record with the installer its tag selects. Malformed lines are marked and
make the check fail; an installation reports them as failed records and
carries on. Nothing is installed. Without an argument the configured
manifest is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := &manifest.Source{FS: afero.NewOsFs(), Fetcher: manifest.HTTPFetcher{}}
			if len(args) == 1 {
				if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
					src.URL = args[0]
				} else {
					src.Local = args[0]
				}
			} else {
				cfg, err := g.loadConfig(paths.New())
				if err != nil {
					return err
				}
				src.Local = cfg.Manifest.Local
				src.URL = cfg.Manifest.URL
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			m, err := src.Load(ctx)
			if err != nil {
				return err
			}
			style.Setup(os.Stdout)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.RenderManifest(m))
			if invalid := m.Invalid(); len(invalid) > 0 {
				// installs would report these lines as failed records
				return invalid[0].Err
			}
			return nil
		},
	}

	cmd.AddCommand(check)
	return cmd
}
