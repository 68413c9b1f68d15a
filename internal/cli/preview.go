package cli

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/pipeline"
)

// previewCommand creates the preview command, which writes a single ticket
// side as PNG. The number need not lie in the configured range.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags *configFlags
		side  string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "preview NUMBER",
		Short: "Write one side of one ticket as PNG",
		Example: `  ticketsheet preview 42
  ticketsheet preview 42 --side back --out back.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := errors.ParseNumber(args[0])
			if err != nil {
				return err
			}
			s, err := pipeline.ParseSide(side)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --side")
			}
			cfg, _, err := flags.load(cmd)
			if err != nil {
				return err
			}
			c.applyDebug(cfg)

			job, err := c.newRunner(false).Prepare(cfg)
			if err != nil {
				return err
			}
			img := job.Ticket(n, s)

			path := out
			if path == "" {
				path = filepath.Join(cfg.Output.Dir, fmt.Sprintf("ticket_%s_%s.png", job.Number(n), s))
			}
			if err := imaging.Save(img, path); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
			}
			printSuccess(c.Out, "Ticket %s (%s)", StyleNumber.Render(job.Number(n)), s)
			printFile(c.Out, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&side, "side", string(pipeline.SideFront), "ticket side: front or back")
	cmd.Flags().StringVar(&out, "out", "", "output file (default <out-dir>/ticket_<number>_<side>.png)")
	flags = addConfigFlags(cmd)
	return cmd
}
