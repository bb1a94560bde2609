// Package tui implements the interactive migration UI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marshallshelly/snapcart/migrations"
	"github.com/marshallshelly/snapcart/pkg/migration"
)

// MigrateMode represents the current mode of the migration UI
type MigrateMode int

const (
	ModeLoading MigrateMode = iota
	ModeConfirm
	ModeExecuting
	ModeComplete
	ModeError
)

// MigrateModel is the Bubbletea model for interactive migrations
type MigrateModel struct {
	mode     MigrateMode
	spinner  spinner.Model
	dbURL    string
	pool     *pgxpool.Pool
	executor *migration.Executor
	pending  []migration.Migration
	applied  []string
	err      error
}

// NewMigrateModel creates a new migration UI model
func NewMigrateModel(dbURL string) MigrateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return MigrateModel{
		mode:    ModeLoading,
		spinner: s,
		dbURL:   dbURL,
	}
}

// RunMigrateUI starts the interactive migration program.
func RunMigrateUI(dbURL string) error {
	model := NewMigrateModel(dbURL)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(MigrateModel); ok {
		if m.pool != nil {
			m.pool.Close()
		}
		if m.err != nil {
			return m.err
		}
	}
	return nil
}

type connectedMsg struct {
	pool     *pgxpool.Pool
	executor *migration.Executor
	pending  []migration.Migration
}

type appliedMsg struct {
	version string
}

type errMsg struct {
	err error
}

func (m MigrateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, connect(m.dbURL))
}

func connect(dbURL string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return errMsg{fmt.Errorf("failed to connect to database: %w", err)}
		}

		migs, err := migration.Load(migrations.Files)
		if err != nil {
			pool.Close()
			return errMsg{err}
		}

		executor := migration.NewExecutor(pool)
		if err := executor.Initialize(ctx); err != nil {
			pool.Close()
			return errMsg{err}
		}

		pending, err := executor.Pending(ctx, migs)
		if err != nil {
			pool.Close()
			return errMsg{err}
		}
		return connectedMsg{pool: pool, executor: executor, pending: pending}
	}
}

func apply(executor *migration.Executor, mig migration.Migration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := executor.Lock(ctx); err != nil {
			return errMsg{err}
		}
		defer func() { _ = executor.Unlock(ctx) }()

		if err := executor.Apply(ctx, mig); err != nil {
			return errMsg{err}
		}
		return appliedMsg{version: mig.Version}
	}
}

func (m MigrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.mode != ModeExecuting {
				return m, tea.Quit
			}
		case "y", "enter":
			if m.mode == ModeConfirm {
				m.mode = ModeExecuting
				return m, tea.Batch(m.spinner.Tick, apply(m.executor, m.pending[0]))
			}
			if m.mode == ModeComplete {
				return m, tea.Quit
			}
		case "n":
			if m.mode == ModeConfirm {
				return m, tea.Quit
			}
		}

	case connectedMsg:
		m.pool = msg.pool
		m.executor = msg.executor
		m.pending = msg.pending
		if len(m.pending) == 0 {
			m.mode = ModeComplete
		} else {
			m.mode = ModeConfirm
		}
		return m, nil

	case appliedMsg:
		m.applied = append(m.applied, msg.version)
		m.pending = m.pending[1:]
		if len(m.pending) == 0 {
			m.mode = ModeComplete
			return m, nil
		}
		return m, apply(m.executor, m.pending[0])

	case errMsg:
		m.err = msg.err
		m.mode = ModeError
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m MigrateModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Snapcart Migrations"))
	b.WriteString("\n")

	switch m.mode {
	case ModeLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" connecting...\n")

	case ModeConfirm:
		b.WriteString(fmt.Sprintf("%d pending migration(s):\n\n", len(m.pending)))
		for _, mig := range m.pending {
			b.WriteString(warningStyle.Render("  ○ "))
			b.WriteString(fmt.Sprintf("%s %s\n", mig.Version, mig.Name))
		}
		b.WriteString(helpStyle.Render("apply? y/n"))
		b.WriteString("\n")

	case ModeExecuting:
		for _, version := range m.applied {
			b.WriteString(successStyle.Render("  ✓ "))
			b.WriteString(version)
			b.WriteString("\n")
		}
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" applying %s...\n", m.pending[0].Version))

	case ModeComplete:
		if len(m.applied) == 0 {
			b.WriteString(mutedStyle.Render("database is up to date"))
		} else {
			for _, version := range m.applied {
				b.WriteString(successStyle.Render("  ✓ "))
				b.WriteString(version)
				b.WriteString("\n")
			}
			b.WriteString(successStyle.Render("all migrations applied"))
		}
		b.WriteString(helpStyle.Render("\npress q to exit"))
		b.WriteString("\n")

	case ModeError:
		b.WriteString(dangerStyle.Render("✗ " + m.err.Error()))
		b.WriteString(helpStyle.Render("\npress q to exit"))
		b.WriteString("\n")
	}

	return b.String()
}
