package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/chapmanb/biosqlweb/internal/config"
	"github.com/chapmanb/biosqlweb/internal/diagram"
	"github.com/chapmanb/biosqlweb/internal/genbank"
)

// Colors for modern design
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	surfaceColor = lipgloss.Color("#1F2937") // Dark gray
	textColor    = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor   = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor  = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	hiddenTag  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Render("hidden")
)

// featureEntry is one normalized feature with the record it came from.
type featureEntry struct {
	record  string
	feature *diagram.Feature
	seq     string
}

type listItem struct {
	entry featureEntry
}

func (i listItem) FilterValue() string {
	return i.entry.feature.Name + " " + i.entry.feature.Type
}

func (i listItem) Title() string {
	// feature name drawn in its own color
	return lipgloss.NewStyle().Foreground(i.entry.feature.Color).Bold(true).Render(i.entry.feature.Name)
}

func (i listItem) Description() string {
	f := i.entry.feature
	desc := fmt.Sprintf("%s  %d..%d  %s", f.Type, f.Start, f.End, strandSymbol(f.Strand))
	if f.Hide {
		desc += "  " + hiddenTag
	}
	return desc
}

func strandSymbol(s int) string {
	switch s {
	case 1:
		return "+"
	case -1:
		return "-"
	}
	return "."
}

type mode int

const (
	modeLocations mode = iota
	modeQualifiers
	modeSequence
)

func (m mode) String() string {
	switch m {
	case modeLocations:
		return "Locations"
	case modeQualifiers:
		return "Qualifiers"
	case modeSequence:
		return "Sequence"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	entries       []featureEntry
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	selectedIndex int
}

func newModel(title string, entries []featureEntry) model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = listItem{entry: e}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:        l,
		entries:     entries,
		currentMode: modeLocations,
	}
}

// loadEntries reads a GenBank file and normalizes every feature. Features
// that fail normalization are logged and left out.
func loadEntries(path string, cfg *config.Config, logger *log.Logger) ([]featureEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := genbank.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var entries []featureEntry
	for _, rec := range recs {
		feats, skipped := diagram.FromRecord(rec, cfg.Diagram())
		for _, s := range skipped {
			if s.Err != nil {
				logger.Warn("skipping feature", "record", rec.Name, "type", s.Type, "err", s.Err)
			}
		}
		for _, feat := range feats {
			entries = append(entries, featureEntry{record: rec.Name, feature: feat, seq: rec.Sequence})
		}
	}
	return entries, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// left panel takes 1/3 of width
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			return m.cycleMode(), nil
		case "1":
			m.currentMode = modeLocations
			return m, nil
		case "2":
			m.currentMode = modeQualifiers
			return m, nil
		case "3":
			m.currentMode = modeSequence
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpModal()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLeftPanel(), m.renderRightPanel())
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	panel := containerStyle.
		Width(m.width*2/3 - 2).
		Height(m.height - 4)

	if len(m.entries) == 0 {
		return panel.Render("No features available")
	}
	selected := m.list.SelectedItem()
	if selected == nil {
		return panel.Render("No item selected")
	}
	return panel.Render(strings.Join(m.buildRightLines(selected.(listItem).entry), "\n"))
}

// textWidth is the usable width inside the right panel.
func (m model) textWidth() int {
	w := m.width*2/3 - 6
	if w < 10 {
		w = 10
	}
	return w
}

// buildRightLines renders the detail panel for e in the current mode.
func (m model) buildRightLines(e featureEntry) []string {
	f := e.feature
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s - %s (%s)", f.Name, f.Type, e.record)),
		labelStyle.Render("Strand: ") + strandSymbol(f.Strand) +
			labelStyle.Render("    Span: ") + fmt.Sprintf("%d..%d", f.Start, f.End) +
			labelStyle.Render("    Color: ") + lipgloss.NewStyle().Foreground(f.Color).Render(string(f.Color)),
		"",
		keyStyle.Render(m.currentMode.String() + ":"),
	}

	switch m.currentMode {
	case modeLocations:
		for i, loc := range f.Locations {
			lines = append(lines, fmt.Sprintf("  %2d  %d..%d", i+1, loc.Start, loc.End))
		}
		if f.Hide {
			lines = append(lines, labelStyle.Render("  between-base location, hidden from drawings"))
		}
	case modeQualifiers:
		quals := f.Source().FeatureQualifiers()
		keys := make([]string, 0, len(quals))
		for k := range quals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			lines = append(lines, labelStyle.Render("  No qualifiers"))
		}
		for _, k := range keys {
			for _, v := range quals[k] {
				lines = append(lines, wrap(fmt.Sprintf("/%s=%s", k, v), m.textWidth())...)
			}
		}
	case modeSequence:
		seq, err := featureSequence(e)
		switch {
		case err != nil:
			lines = append(lines, labelStyle.Render("  "+err.Error()))
		case seq == "":
			lines = append(lines, labelStyle.Render("  No sequence available"))
		default:
			lines = append(lines, wrap(seq, m.textWidth())...)
		}
	}
	return lines
}

func featureSequence(e featureEntry) (string, error) {
	if e.seq == "" {
		return "", nil
	}
	sf, ok := diagram.SeqFeature(e.feature.Source())
	if !ok {
		return "", nil
	}
	return sf.Extract(e.seq)
}

// wrap cuts s into lines of at most width bytes.
func wrap(s string, width int) []string {
	var out []string
	for len(s) > width {
		out = append(out, s[:width])
		s = s[width:]
	}
	return append(out, s)
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d features", m.selectedIndex+1, len(m.entries))
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode)
	rightInfo := "Press 'h' for help • 'q' to quit"

	spacing := m.width - lipgloss.Width(leftInfo) - lipgloss.Width(centerInfo) - lipgloss.Width(rightInfo) - 6
	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		statusContent = leftInfo + strings.Repeat(" ", leftSpacing) + centerInfo + strings.Repeat(" ", spacing-leftSpacing) + rightInfo
	} else {
		// narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}
	return statusBarStyle.Width(m.width).Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `Feature Browser - Help

Navigation:
  ↑/↓, j/k     Navigate list
  /            Filter features

View Modes:
  Tab          Cycle modes
  1            Locations
  2            Qualifiers
  3            Sequence

General:
  h            Toggle this help
  q, Ctrl+C    Quit application

Current Mode: ` + m.currentMode.String() + `
Total Features: ` + fmt.Sprintf("%d", len(m.entries)) + `
`
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Render(helpContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func main() {
	inputFlag := flag.String("in", "", "GenBank file to browse")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	flag.Parse()

	logger := log.New(os.Stderr)
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	if *inputFlag != "" {
		cfg.Input = *inputFlag
	}
	if cfg.Input == "" {
		logger.Fatal("no input file; use -in")
	}
	entries, err := loadEntries(cfg.Input, cfg, logger)
	if err != nil {
		logger.Fatal("failed to load features", "path", cfg.Input, "err", err)
	}

	p := tea.NewProgram(newModel("Features: "+cfg.Input, entries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
