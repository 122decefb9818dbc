package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/pkg/annotation"
)

const replHistoryFile = ".maca_history"

// replSession is the state of one interactive session.
type replSession struct {
	tissue string
	r      *output.Renderer
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	var tissue string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Explain labels interactively",
		Long: `Start an interactive session. Every line is a label, optionally written as
"annotation::subannotation", and is explained against the current tissue.
Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if tissue == "" {
				tissue = cc.Cfg.Tissue
			}
			return runREPL(cmd, &replSession{tissue: tissue, r: cc.Renderer})
		},
	}

	cmd.Flags().StringVar(&tissue, "tissue", "", "Initial tissue")
	_ = cmd.RegisterFlagCompletionFunc("tissue", completeTissues)

	return cmd
}

func runREPL(cmd *cobra.Command, s *replSession) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, replHistoryFile)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.r.Println("maca annotation REPL")
	s.r.Println("Type .help for commands, .quit to exit")
	s.r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.handleLine(line) {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

func (s *replSession) prompt() string {
	if s.tissue == "" {
		return "maca> "
	}
	return "maca(" + s.tissue + ")> "
}

// handleLine runs one input line and reports whether the session should
// end.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		s.explain(line)
		return false
	}

	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".tissue":
		if len(parts) < 2 {
			if s.tissue == "" {
				s.r.Println("no tissue selected")
			} else {
				s.r.Println(s.tissue)
			}
			return false
		}
		if _, ok := annotation.Lookup(parts[1]); !ok {
			s.r.Warn("unknown tissue %q (available: %s)", parts[1], strings.Join(annotation.Tissues(), ", "))
			return false
		}
		s.tissue = parts[1]

	case ".tissues":
		if err := listTissues(s.r); err != nil {
			s.r.Warn("%v", err)
		}

	case ".steps":
		if s.tissue == "" {
			s.r.Warn("no tissue selected, use .tissue <name>")
			return false
		}
		if err := showTissue(s.r, s.tissue); err != nil {
			s.r.Warn("%v", err)
		}

	case ".explain":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(s.r.ErrWriter(), "Usage: .explain <label>")
			return false
		}
		s.explain(strings.TrimSpace(strings.TrimPrefix(line, parts[0])))

	default:
		_, _ = fmt.Fprintf(s.r.ErrWriter(), "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func (s *replSession) explain(label string) {
	if s.tissue == "" {
		s.r.Warn("no tissue selected, use .tissue <name>")
		return
	}
	if err := renderExplanations(s.r, []explanation{explainLabel(label, s.tissue)}); err != nil {
		s.r.Warn("%v", err)
	}
	s.r.Println()
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .tissue [name]    Show or select the current tissue
  .tissues          List all tissues
  .steps            Show the steps of the current tissue
  .explain <label>  Explain a label (same as typing the label)
  .quit / .exit     Exit the REPL

Labels:
  Fb_1                         annotation only
  granulocytes::Neutrophils    annotation and subannotation
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot commands and tissue names.
func newREPLCompleter() *readline.PrefixCompleter {
	tissueItems := func(string) []string { return annotation.Tissues() }
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".tissue", readline.PcItemDynamic(tissueItems)),
		readline.PcItem(".tissues"),
		readline.PcItem(".steps"),
		readline.PcItem(".explain"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
