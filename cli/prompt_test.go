package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// step is one scripted answer. title is matched as a prefix of the prompt title.
type step struct {
	kind   string // "select", "input" or "confirm"
	title  string
	value  string
	ok     bool
	cancel bool
}

func sel(title, value string) step { return step{kind: "select", title: title, value: value} }
func in(title, value string) step  { return step{kind: "input", title: title, value: value} }
func yes(title string) step        { return step{kind: "confirm", title: title, ok: true} }
func no(title string) step         { return step{kind: "confirm", title: title} }
func cancel(kind string) step      { return step{kind: kind, cancel: true} }

// prompted records what a prompt showed.
type prompted struct {
	title    string
	labels   []string
	selected string // Select: highlighted value; Input: prefilled value
}

// scriptedPrompter answers prompts from a fixed script and fails the test on
// any unexpected prompt.
type scriptedPrompter struct {
	t     *testing.T
	steps []step
	seen  []prompted
}

func newScript(t *testing.T, steps ...step) *scriptedPrompter {
	return &scriptedPrompter{t: t, steps: steps}
}

func (p *scriptedPrompter) next(kind, title string) (step, error) {
	p.t.Helper()
	if len(p.steps) == 0 {
		p.t.Errorf("unexpected %s prompt %q: script exhausted", kind, title)
		return step{}, fmt.Errorf("script exhausted at %q", title)
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	if s.kind != kind {
		p.t.Errorf("prompt %q: expected a %s prompt, got %s", title, s.kind, kind)
		return step{}, fmt.Errorf("wrong prompt kind at %q", title)
	}
	if s.title != "" && !strings.HasPrefix(title, s.title) {
		p.t.Errorf("expected prompt %q, got %q", s.title, title)
	}
	if s.cancel {
		return s, ErrCancelled
	}
	return s, nil
}

func (p *scriptedPrompter) Select(ctx context.Context, title string, choices []Choice, selected string) (string, error) {
	p.t.Helper()
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	p.seen = append(p.seen, prompted{title: title, labels: labels, selected: selected})

	s, err := p.next("select", title)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if c.Value == s.value {
			return s.value, nil
		}
	}
	p.t.Errorf("prompt %q has no choice %q (choices: %v)", title, s.value, labels)
	return "", fmt.Errorf("no choice %q", s.value)
}

func (p *scriptedPrompter) Input(ctx context.Context, title, value string) (string, error) {
	p.t.Helper()
	p.seen = append(p.seen, prompted{title: title, selected: value})

	s, err := p.next("input", title)
	if err != nil {
		return "", err
	}
	return s.value, nil
}

func (p *scriptedPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	p.t.Helper()
	p.seen = append(p.seen, prompted{title: title})

	s, err := p.next("confirm", title)
	if err != nil {
		return false, err
	}
	return s.ok, nil
}

// done asserts the whole script was consumed.
func (p *scriptedPrompter) done() {
	p.t.Helper()
	assert.Equal(p.t, 0, len(p.steps), "unused script steps: %v", p.steps)
}

// shown returns the prompt recorded with the given title prefix.
func (p *scriptedPrompter) shown(title string) prompted {
	p.t.Helper()
	for _, s := range p.seen {
		if strings.HasPrefix(s.title, title) {
			return s
		}
	}
	p.t.Fatalf("prompt %q was never shown", title)
	return prompted{}
}

func TestNewHuhPrompterAccessibleWithoutTerminal(t *testing.T) {
	p := NewHuhPrompter(strings.NewReader("Test Bank\n"), &strings.Builder{})
	assert.True(t, p.accessible)
	assert.False(t, isTerminal(strings.NewReader("")))
}
