package tui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/lanscan/internal/scan"
)

// Controller is the slice of the scan session the watch screen drives.
type Controller interface {
	Start() error
	Stop() error
	IsScanning() bool
}

// Messages delivered by the session notifier
type deviceFoundMsg struct{ device scan.Device }
type scanTickMsg struct{ secondsLeft int }
type scanStoppedMsg struct{}
type startFailedMsg struct{ err error }

// Notifier feeds scan notifications into a running watch program. Create it
// first, hand it to the session, then attach the program before running.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

var _ scan.Notifier = (*Notifier)(nil)

// Attach binds the notifier to a program. Notifications before Attach are
// discarded.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.p = p
}

func (n *Notifier) send(msg tea.Msg) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (n *Notifier) DeviceFound(device scan.Device) error {
	n.send(deviceFoundMsg{device: device})
	return nil
}

func (n *Notifier) Tick(secondsLeft int) error {
	n.send(scanTickMsg{secondsLeft: secondsLeft})
	return nil
}

func (n *Notifier) Stopped() error {
	n.send(scanStoppedMsg{})
	return nil
}

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Stop   key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stop, k.Rescan, k.Quit},
	}
}

// Model is the watch screen state.
type Model struct {
	ctrl        Controller
	scanSeconds int

	scanning    bool
	secondsLeft int
	devices     []scan.Device
	err         error

	width   int
	spinner spinner.Model
	bar     progress.Model
	help    help.Model
	keys    watchKeyMap
}

// NewModel creates the watch screen model for a session counting down from
// scanSeconds.
func NewModel(ctrl Controller, scanSeconds int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	keys := watchKeyMap{
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop scan"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return Model{
		ctrl:        ctrl,
		scanSeconds: scanSeconds,
		secondsLeft: scanSeconds,
		spinner:     s,
		bar:         bar,
		help:        help.New(),
		keys:        keys,
	}
}

// Init starts the scan session and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startScan, m.spinner.Tick)
}

func (m Model) startScan() tea.Msg {
	if err := m.ctrl.Start(); err != nil {
		return startFailedMsg{err: err}
	}
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case startFailedMsg:
		m.scanning = false
		m.err = msg.err

	case deviceFoundMsg:
		m.upsertDevice(msg.device)

	case scanTickMsg:
		m.scanning = true
		m.secondsLeft = msg.secondsLeft

	case scanStoppedMsg:
		m.scanning = false
		m.secondsLeft = 0

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Best effort; the session stop is idempotent.
		_ = m.ctrl.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Stop):
		return m, func() tea.Msg {
			_ = m.ctrl.Stop()
			return nil
		}

	case key.Matches(msg, m.keys.Rescan):
		if !m.scanning {
			m.devices = nil
			m.err = nil
			m.secondsLeft = m.scanSeconds
			return m, tea.Batch(m.startScan, m.spinner.Tick)
		}
	}
	return m, nil
}

// upsertDevice replaces the record for the device's address or appends it.
func (m *Model) upsertDevice(device scan.Device) {
	for i := range m.devices {
		if m.devices[i].IP == device.IP {
			m.devices[i] = device
			return
		}
	}
	m.devices = append(m.devices, device)
	sort.Slice(m.devices, func(i, j int) bool {
		return m.devices[i].IP < m.devices[j].IP
	})
}

// View renders the watch screen
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = TerminalWidth()
	}

	var b strings.Builder

	if m.scanning {
		b.WriteString(TitleStyle.Render(fmt.Sprintf("%s SCANNING", m.spinner.View())))
		b.WriteString("\n\n")

		done := float64(m.scanSeconds-m.secondsLeft) / float64(m.scanSeconds)
		b.WriteString(m.bar.ViewAs(done))
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %ds left", m.secondsLeft)))
		b.WriteString("\n\n")
	} else if m.err != nil {
		b.WriteString(ErrStyle.Render(fmt.Sprintf("Scan failed: %v", m.err)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(StoppedStyle.Render("SCAN FINISHED"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderDevices())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (m Model) renderDevices() string {
	if len(m.devices) == 0 {
		return SubtitleStyle.Render("  No devices found yet") + "\n"
	}

	var b strings.Builder
	for _, device := range m.devices {
		b.WriteString("  ")
		b.WriteString(DeviceNameStyle.Render(device.Name))
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %s  discovered at %dms", device.IP, device.DiscoveryTimeMs)))
		b.WriteString("\n")
		for _, svc := range device.Services {
			b.WriteString(fmt.Sprintf("      %-22s port %-5d %s\n", svc.ServiceType, svc.Port, svc.DeviceType))
		}
	}
	return b.String()
}

// Run drives a full watch session: it builds the program, attaches the
// notifier, and blocks until the user quits.
func Run(ctrl Controller, notifier *Notifier, scanSeconds int) error {
	p := tea.NewProgram(NewModel(ctrl, scanSeconds), tea.WithAltScreen())
	notifier.Attach(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch UI failed: %w", err)
	}
	return nil
}
