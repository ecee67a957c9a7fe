package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/hackassist/internal/app"
	"github.com/doeshing/hackassist/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	In      io.Reader
	Out     io.Writer
}

// NewRootCmd wires the cobra root command. Running it without a subcommand
// starts an interactive session.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	appOpts := app.Options{Verbose: opts.Verbose}
	build := func() *app.Container {
		return app.BuildContainer(appOpts)
	}

	root := &cobra.Command{
		Use:   "hackassist",
		Short: "HackAssist - AI assistant for the terminal",
		Long: "HackAssist turns natural-language requests into shell commands, " +
			"asks before running anything and feeds the output back into the conversation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container := build()
			defer func() { _ = container.Logger.Sync() }()

			prompter := NewPrompter(opts.In, opts.Out)
			loop, err := container.NewSessionLoop(cmd.Context(), app.Terminal{
				Input:     prompter,
				Confirmer: prompter,
				Presenter: NewRenderer(opts.Out),
			})
			if err != nil {
				return err
			}
			return loop.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)

	flags := root.PersistentFlags()
	flags.StringVar(&appOpts.ConfigPath, "config", "", "Config file (default $HACKASSIST_CONFIG or ~/.hackassist/config.yaml)")
	flags.StringVar(&appOpts.ModelID, "model-id", "", "Override the model identifier from config")
	flags.IntVar(&appOpts.HistoryLimit, "history-limit", 0, "Number of past exchanges sent with each request")
	flags.BoolVar(&appOpts.Verbose, "debug", opts.Verbose, "Enable verbose logging to stderr")

	root.AddCommand(commands.NewDoctorCommand(build))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
