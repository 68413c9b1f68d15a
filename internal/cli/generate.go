package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// generateCommand creates the generate command, the main entry point that
// draws the whole range and writes the fronts and backs documents.
func (c *CLI) generateCommand() *cobra.Command {
	var flags *configFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the ticket sheets for a number range",
		Long: `Generate draws the front and back of every ticket in the configured range
and tiles them onto printable sheets. Fronts and backs go to two documents
so they can be printed duplex.`,
		Example: `  ticketsheet generate --start 1 --end 200 --image poster.jpg
  ticketsheet generate -c gala.toml --format png -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.load(cmd)
			if err != nil {
				return err
			}
			c.applyDebug(cfg)
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}

			runner := c.newRunner(false)
			var spinner *Spinner
			if !c.verbose() {
				spinner = newSpinner(cmd.Context(), os.Stderr, "Composing tickets...")
				runner.Progress = func(done, total int) {
					spinner.SetMessage(fmt.Sprintf("Composing tickets %d/%d...", done, total))
				}
				spinner.Start()
			}

			prog := newProgress(c.Logger)
			res, err := runner.Execute(cmd.Context(), cfg)
			if spinner != nil {
				if err != nil {
					spinner.StopWithError("Generation failed")
				} else {
					spinner.Stop()
				}
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Wrote %d files", len(res.Artifacts)))

			printSummary(c.Out, res)
			for _, a := range res.Artifacts {
				printFile(c.Out, a.Path)
			}
			return nil
		},
	}

	flags = addConfigFlags(cmd)
	return cmd
}
