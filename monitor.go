// monitor.go - Live status TUI (optional, --monitor).
//
// Grounded on hejops-gone's Bubble Tea model/update/view shape — the only
// TUI dependency anywhere in the retrieval pack. Subscribes to the tick
// driver's snapshot channel rather than touching Machine state directly, so
// it never competes with the single-threaded core (SPEC_FULL.md §2.3, §6).

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Snapshot is a point-in-time view of the emulator, published once per tick.
type Snapshot struct {
	Ticks        uint64
	InterruptLvl int
	GoldcodeN    int
	ClockN       int
	UARTAAttached bool
	UARTBAttached bool
}

var (
	monitorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	monitorLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	monitorOkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	monitorAbsentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// monitorModel is the Bubble Tea model for the live status view.
type monitorModel struct {
	snapshots <-chan Snapshot
	latest    Snapshot
	haveOne   bool
}

// NewMonitorProgram builds a *tea.Program that renders snapshots as they
// arrive on ch until the user quits (q / ctrl+c).
func NewMonitorProgram(ch <-chan Snapshot) *tea.Program {
	return tea.NewProgram(monitorModel{snapshots: ch})
}

type snapshotMsg Snapshot

func (m monitorModel) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m monitorModel) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.snapshots
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case snapshotMsg:
		m.latest = Snapshot(msg)
		m.haveOne = true
		return m, m.waitForSnapshot()
	}
	return m, nil
}

func (m monitorModel) View() string {
	if !m.haveOne {
		return monitorTitleStyle.Render("datatrak-emulator") + "\n" + monitorLabelStyle.Render("waiting for first tick...") + "\n"
	}

	attached := func(ok bool) string {
		if ok {
			return monitorOkStyle.Render("attached")
		}
		return monitorAbsentStyle.Render("absent")
	}

	return fmt.Sprintf(
		"%s\n\n%s %d\n%s %d\n%s %d\n%s %d\n%s %s   %s %s\n\n%s\n",
		monitorTitleStyle.Render("datatrak-emulator"),
		monitorLabelStyle.Render("ticks:"), m.latest.Ticks,
		monitorLabelStyle.Render("irq level:"), m.latest.InterruptLvl,
		monitorLabelStyle.Render("goldcode_n:"), m.latest.GoldcodeN,
		monitorLabelStyle.Render("clock_n:"), m.latest.ClockN,
		monitorLabelStyle.Render("uart a:"), attached(m.latest.UARTAAttached),
		monitorLabelStyle.Render("uart b:"), attached(m.latest.UARTBAttached),
		monitorLabelStyle.Render("q to quit"),
	)
}
