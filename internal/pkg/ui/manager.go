// Package ui provides terminal output and prompts for GitMuse.
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
}

// Manager defines the interface for UI operations.
type Manager interface {
	DisplayMessage(message string)
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	ShowInfo(message string)
	PromptConfirm(message string) (bool, error)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	colorEnabled bool
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	message    lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	info       lipgloss.Style
}

// NewDefaultManager creates a new DefaultManager.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := &DefaultManager{colorEnabled: colorEnabled}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			title:      lipgloss.NewStyle(),
			message:    lipgloss.NewStyle(),
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			info:       lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		message: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
	}
}

// DisplayMessage displays the generated commit message.
func (m *DefaultManager) DisplayMessage(message string) {
	fmt.Println()
	fmt.Println(m.styles.title.Render("Generated Commit Message"))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println(m.styles.message.Render(message))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println()
}

// ShowSpinner creates and returns a spinner for loading states.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// ShowError displays an error message.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Println(m.styles.errorStyle.Render("Error: " + err.Error()))
}

// ShowSuccess displays a success message.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Println(m.styles.success.Render("[OK] " + message))
}

// ShowInfo displays an informational message.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Println(m.styles.info.Render(message))
}

// PromptConfirm prompts the user for a yes/no confirmation.
func (m *DefaultManager) PromptConfirm(message string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// NonInteractiveManager implements Manager for the --yes flow: plain
// output, no animation, every confirmation auto-accepted.
type NonInteractiveManager struct {
	colorEnabled bool
	styles       *styles
}

// NewNonInteractiveManager creates a NonInteractiveManager.
func NewNonInteractiveManager(colorEnabled bool) *NonInteractiveManager {
	d := NewDefaultManager(colorEnabled)
	return &NonInteractiveManager{colorEnabled: colorEnabled, styles: d.styles}
}

// DisplayMessage displays the generated commit message.
func (m *NonInteractiveManager) DisplayMessage(message string) {
	fmt.Println(m.styles.message.Render(message))
}

// ShowSpinner returns a no-op spinner.
func (m *NonInteractiveManager) ShowSpinner(text string) Spinner {
	return noopSpinner{}
}

// ShowError displays an error message.
func (m *NonInteractiveManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Println(m.styles.errorStyle.Render("Error: " + err.Error()))
}

// ShowSuccess displays a success message.
func (m *NonInteractiveManager) ShowSuccess(message string) {
	fmt.Println(m.styles.success.Render("[OK] " + message))
}

// ShowInfo displays an informational message.
func (m *NonInteractiveManager) ShowInfo(message string) {
	fmt.Println(m.styles.info.Render(message))
}

// PromptConfirm always confirms in non-interactive mode.
func (m *NonInteractiveManager) PromptConfirm(message string) (bool, error) {
	return true, nil
}

// noopSpinner is a Spinner that does nothing.
type noopSpinner struct{}

func (noopSpinner) Start() {}
func (noopSpinner) Stop()  {}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
	program *tea.Program
	model   *spinnerModel
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for the spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &bubbleSpinner{
		text: text,
		model: &spinnerModel{
			spinner: s,
			text:    text,
		},
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = tea.NewProgram(s.model)
	go func() {
		_, _ = s.program.Run()
	}()
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerQuitMsg{})
		time.Sleep(50 * time.Millisecond)
	}
}
