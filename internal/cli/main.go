package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/config"
	"github.com/pubkit/pubkit/internal/logging"
)

const (
	shortTimeout = 3 * time.Hour
	apiTimeout   = 30 * time.Minute
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is what every command shares: configuration, the logger and the
// standard streams.
type app struct {
	cfg     config.Config
	in      io.Reader
	errOut  io.Writer
	verbose bool
	log     *log.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer, getenv func(string) string) *cobra.Command {
	a := &app{cfg: config.FromEnv(getenv), in: in, errOut: errOut}
	a.log = logging.New(errOut, false)

	root := &cobra.Command{
		Use:           "pubkit",
		Short:         "Cut shorts, fix subtitles and publish to YouTube, WordPress and LinkedIn",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logging.New(errOut, a.verbose)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newSrtCmd(a),
		newShortCmd(a),
		newOrganizeCmd(a),
		newYouTubeCmd(a),
		newWordPressCmd(a),
		newLinkedInCmd(a),
		newImageCmd(a),
		newArchiveCmd(a),
		newTranscriptCmd(a),
	)
	return root
}

func (a *app) logf() func(string, ...any) { return logging.Logf(a.log) }

func apiContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), apiTimeout)
}

// prompt shows msg on stderr and reads one line from stdin.
func (a *app) prompt(msg string) (string, error) {
	fmt.Fprintln(a.errOut, msg)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
