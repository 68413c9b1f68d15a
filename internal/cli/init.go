package cli

import (
	"bytes"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/errors"
)

// initCommand creates the init command, which asks for the run settings and
// writes them as a TOML config file.
func (c *CLI) initCommand() *cobra.Command {
	var force, defaults bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a config file interactively",
		Long: `Init asks for the ticket range, image, title and stub color and writes a
config file. Without a file argument the user config file is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initPath(args)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if !defaults {
				p := tea.NewProgram(NewSetupModel(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr()))
				final, err := p.Run()
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "setup wizard")
				}
				m := final.(SetupModel)
				if !m.Done() {
					printWarning(c.Out, "Setup aborted, nothing written")
					return nil
				}
				if cfg, err = m.Config(); err != nil {
					return err
				}
			}

			if err := writeConfig(path, cfg); err != nil {
				return err
			}
			printSuccess(c.Out, "Wrote config")
			printFile(c.Out, path)
			printNextStep(c.Out, "Generate tickets", "ticketsheet generate -c "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "write the defaults without asking")
	return cmd
}

func initPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	path, err := defaultConfigPath()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config directory")
	}
	return path, nil
}

func writeConfig(path string, cfg config.Config) error {
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
