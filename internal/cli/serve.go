package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketsheet/internal/server"
)

// serveCommand creates the serve command, which renders tickets on demand
// over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   *configFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve ticket previews over HTTP",
		Long: `Serve validates the configuration once and renders ticket previews on demand:

  GET /tickets/{number}/front.png
  GET /tickets/{number}/back.png
  GET /config
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(cmd)
			if err != nil {
				return err
			}
			c.applyDebug(cfg)
			job, err := c.newRunner(noCache).Prepare(cfg)
			if err != nil {
				return err
			}

			printInfo(c.Out, "Previews at http://%s/tickets/%s/front.png", addr, job.Number(cfg.Range.Start))
			printNextStep(c.Out, "Stop with", "ctrl+c")
			return server.New(addr, job, c.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "decode the main image on every request")
	flags = addConfigFlags(cmd)
	return cmd
}
