package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned by a Prompter when the user backs out of a prompt
// (Ctrl-C or Esc). The session treats it as "return to the previous menu".
var ErrCancelled = errors.New("cancelled")

// Choice is one selectable option. Label is shown, Value is returned.
type Choice struct {
	Label string
	Value string
}

// Prompter asks the user for input.
type Prompter interface {
	// Select asks the user to pick one of choices and returns its Value.
	// When selected matches a Value, that choice is highlighted initially.
	Select(ctx context.Context, title string, choices []Choice, selected string) (string, error)

	// Input asks for free text, prefilled with value.
	Input(ctx context.Context, title, value string) (string, error)

	// Confirm asks a yes/no question. The default answer is no.
	Confirm(ctx context.Context, title string) (bool, error)
}

// HuhPrompter prompts on a terminal using huh forms. When the input is not a
// terminal it falls back to huh's line-based accessible mode, so sessions can
// be scripted through a pipe.
type HuhPrompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

// NewHuhPrompter creates a prompter reading from in and drawing to out.
func NewHuhPrompter(in io.Reader, out io.Writer) *HuhPrompter {
	return &HuhPrompter{
		in:         in,
		out:        out,
		accessible: !isTerminal(in),
	}
}

// Select implements Prompter.
func (p *HuhPrompter) Select(ctx context.Context, title string, choices []Choice, selected string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("nothing to select for %q", title)
	}

	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}

	value := selected
	field := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&value)

	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(ctx context.Context, title, value string) (string, error) {
	field := huh.NewInput().
		Title(title).
		Value(&value)

	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	var confirm bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := p.run(ctx, field); err != nil {
		return false, err
	}
	return confirm, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithInput(p.in).
		WithOutput(p.out).
		WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
