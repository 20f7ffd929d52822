package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/learner"
	"github.com/ripperk-go/ripperk/internal/model"
)

// runLearn drives l.Fit to completion, either through a bubbletea
// progress view (interactive terminals) or as plain log lines
// (piped output, or when the caller disabled the view).
func runLearn(ctx context.Context, l *learner.Learner, instances []dataset.Instance, events <-chan learner.ProgressEvent, showProgress bool) *model.Model {
	if !showProgress || !colorEnabled {
		return drainPlain(ctx, l, instances, events)
	}
	return drainProgram(ctx, l, instances, events)
}

// drainPlain runs Fit while printing one line per event, for non-TTY
// output where a redrawing progress bar would just produce noise.
func drainPlain(ctx context.Context, l *learner.Learner, instances []dataset.Instance, events <-chan learner.ProgressEvent) *model.Model {
	done := make(chan *model.Model, 1)
	go func() {
		done <- l.Fit(ctx, instances)
	}()
	for {
		select {
		case ev := <-events:
			fmt.Printf("[%s] class=%s rules=%d dl=%.1f\n", ev.Phase, ev.Class, ev.Rules, ev.DL)
		case m := <-done:
			// Fit has returned, so every event it emitted is already buffered.
			for {
				select {
				case ev := <-events:
					fmt.Printf("[%s] class=%s rules=%d dl=%.1f\n", ev.Phase, ev.Class, ev.Rules, ev.DL)
				default:
					return m
				}
			}
		}
	}
}

// progressMsg carries one learner.ProgressEvent into the bubbletea
// update loop.
type progressMsg learner.ProgressEvent

// progressDoneMsg signals that Fit has returned (or that the events
// channel closed).
type progressDoneMsg struct{}

type progressProgram struct {
	bar    progress.Model
	events <-chan learner.ProgressEvent
	class  string
	rules  int
	done   bool
}

func waitForEvent(events <-chan learner.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return progressDoneMsg{}
		}
		return progressMsg(ev)
	}
}

func (m progressProgram) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m progressProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case progressMsg:
		m.class = msg.Class
		m.rules = msg.Rules
		if msg.Phase == learner.PhaseClassDone {
			m.bar.SetPercent(0)
		}
		return m, waitForEvent(m.events)
	case progressDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressProgram) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("learning %s (%d rules so far)\n%s\n", m.class, m.rules, m.bar.View())
}

// drainProgram runs Fit in the background while a bubbletea program
// renders live progress; it returns once the learner finishes.
func drainProgram(ctx context.Context, l *learner.Learner, instances []dataset.Instance, events <-chan learner.ProgressEvent) *model.Model {
	p := tea.NewProgram(progressProgram{bar: progress.New(progress.WithDefaultGradient()), events: events})

	done := make(chan *model.Model, 1)
	go func() {
		m := l.Fit(ctx, instances)
		p.Send(progressDoneMsg{})
		done <- m
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("progress view error: %v\n", err)
	}
	return <-done
}
