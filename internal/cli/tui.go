package cli

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ticketsheet/pkg/config"
	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/render/sink"
	"github.com/matzehuels/ticketsheet/pkg/render/ticket"
)

var (
	wizardPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	wizardAnswerStyle = lipgloss.NewStyle().Foreground(colorCyan)
	wizardErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Questions
// =============================================================================

// question is one wizard step. An empty answer takes def. validate sees
// the answers given so far.
type question struct {
	prompt   string
	def      string
	validate func(answer string, prev []string) error
	apply    func(*config.Config, string)
}

// check adapts a single-value validator.
func check(f func(string) error) func(string, []string) error {
	return func(s string, _ []string) error { return f(s) }
}

func setupQuestions() []question {
	d := config.Default()
	return []question{
		{
			prompt:   "Starting ticket number",
			def:      strconv.Itoa(d.Range.Start),
			validate: check(validateInteger),
			apply:    func(c *config.Config, s string) { c.Range.Start, _ = strconv.Atoi(s) },
		},
		{
			prompt:   "Ending ticket number",
			def:      strconv.Itoa(d.Range.End),
			validate: validateEnd,
			apply:    func(c *config.Config, s string) { c.Range.End, _ = strconv.Atoi(s) },
		},
		{
			prompt:   "Zero-pad ticket numbers to width",
			def:      strconv.Itoa(d.Range.Padding),
			validate: check(validateNumber),
			apply:    func(c *config.Config, s string) { c.Range.Padding, _ = strconv.Atoi(s) },
		},
		{
			prompt:   "Main-body image (empty for none)",
			validate: check(errors.ValidateImagePath),
			apply:    func(c *config.Config, s string) { c.Ticket.Image = s },
		},
		{
			prompt: "Image placement (cover, contain, none)",
			def:    d.Ticket.ImagePolicy,
			validate: check(func(s string) error {
				_, err := ticket.ParseImagePolicy(s)
				return err
			}),
			apply: func(c *config.Config, s string) { c.Ticket.ImagePolicy = strings.ToLower(s) },
		},
		{
			prompt: "Event title",
			def:    d.Ticket.Title,
			apply:  func(c *config.Config, s string) { c.Ticket.Title = s },
		},
		{
			prompt: "Stub color (R,G,B or #hex)",
			def:    d.Ticket.StubColor,
			validate: check(func(s string) error {
				_, err := config.ParseColor(s)
				return err
			}),
			apply: func(c *config.Config, s string) { c.Ticket.StubColor = s },
		},
		{
			prompt: "Output format (" + strings.Join(sink.Formats(), ", ") + ")",
			def:    d.Output.Format,
			validate: check(func(s string) error {
				if !sink.Supported(strings.ToLower(s)) {
					return errors.New(errors.ErrCodeNoBackend, "unsupported format %q", s)
				}
				return nil
			}),
			apply: func(c *config.Config, s string) { c.Output.Format = strings.ToLower(s) },
		},
	}
}

func validateInteger(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "enter a whole number, got %q", s)
	}
	return nil
}

func validateNumber(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "enter a non-negative whole number, got %q", s)
	}
	return nil
}

// validateEnd checks the end answer against the start answer before it.
func validateEnd(s string, prev []string) error {
	if err := validateInteger(s); err != nil {
		return err
	}
	if len(prev) == 0 {
		return nil
	}
	start, _ := strconv.Atoi(prev[0])
	end, _ := strconv.Atoi(s)
	return errors.ValidateRange(start, end, 0)
}

// =============================================================================
// SetupModel - Interactive configuration
// =============================================================================

// SetupModel is the bubbletea model of the init wizard.
type SetupModel struct {
	questions []question
	Answers   []string
	Index     int
	Input     []rune
	Err       error
	Aborted   bool
}

// NewSetupModel creates the wizard with the default questions.
func NewSetupModel() SetupModel {
	return SetupModel{questions: setupQuestions()}
}

// Done reports whether every question was answered.
func (m SetupModel) Done() bool {
	return !m.Aborted && m.Index >= len(m.questions)
}

// Config applies the answers on top of [config.Default] and validates the
// result.
func (m SetupModel) Config() (config.Config, error) {
	cfg := config.Default()
	for i, a := range m.Answers {
		m.questions[i].apply(&cfg, a)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.Done() {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	case tea.KeySpace:
		m.Input = append(m.Input, ' ')
	case tea.KeyRunes:
		m.Input = append(m.Input, key.Runes...)
	}
	return m, nil
}

func (m SetupModel) submit() (tea.Model, tea.Cmd) {
	q := m.questions[m.Index]
	answer := strings.TrimSpace(string(m.Input))
	if answer == "" {
		answer = q.def
	}
	if q.validate != nil {
		if err := q.validate(answer, m.Answers); err != nil {
			m.Err = err
			return m, nil
		}
	}
	m.Answers = append(m.Answers, answer)
	m.Index++
	m.Input = nil
	m.Err = nil
	if m.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ticketsheet Setup"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ accept  esc quit  empty answer keeps the default"))
	b.WriteString("\n\n")

	for i, a := range m.Answers {
		shown := a
		if shown == "" {
			shown = "(none)"
		}
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.questions[i].prompt + ": " + wizardAnswerStyle.Render(shown) + "\n")
	}
	if m.Done() || m.Aborted {
		return b.String()
	}

	q := m.questions[m.Index]
	b.WriteString(wizardPromptStyle.Render(q.prompt))
	if q.def != "" {
		b.WriteString(StyleDim.Render(" [" + q.def + "]"))
	}
	b.WriteString(": " + string(m.Input) + "█\n")
	if m.Err != nil {
		b.WriteString(wizardErrorStyle.Render(errors.UserMessage(m.Err)) + "\n")
	}
	return b.String()
}
