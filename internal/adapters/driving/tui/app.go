package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clipsight-labs/clipsight-cli/internal/core/domain"
)

// maxSuggestions caps the autocomplete dropdown height.
const maxSuggestions = 6

// searchCompletedMsg delivers finished search results to Update.
type searchCompletedMsg struct {
	result *domain.SearchResult
}

// suggestionsMsg delivers autocomplete candidates to Update.
type suggestionsMsg struct {
	prefix string
	items  []domain.Suggestion
}

// errorMsg delivers an operation failure to Update.
type errorMsg struct {
	err error
}

// channelsMsg delivers the tracked channel list to Update.
type channelsMsg struct {
	channels []domain.Channel
}

// insightsMsg delivers channel insights for the selected result.
type insightsMsg struct {
	insights *domain.ChannelInsights
}

// App is the ClipSight TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *Styles
	input  textinput.Model

	// suggestions is the current autocomplete dropdown; sugIndex is the
	// highlighted row, -1 when nothing is highlighted.
	suggestions []domain.Suggestion
	sugIndex    int

	// result is the last search outcome; resIndex is the highlighted
	// video hit.
	result   *domain.SearchResult
	resIndex int

	// channels lists tracked channels for the idle screen.
	channels []domain.Channel

	// insights is the channel breakdown for the highlighted hit, loaded
	// on demand.
	insights *domain.ChannelInsights

	searching bool
	err       error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Search brands, products, sponsors..."
	input.Focus()
	input.CharLimit = 120

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   DefaultStyles(),
		input:    input,
		sugIndex: -1,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tea.SetWindowTitle("clipsight"),
	}
	if a.ports.Channels != nil {
		cmds = append(cmds, a.loadChannelsCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case searchCompletedMsg:
		a.searching = false
		a.result = msg.result
		a.resIndex = 0
		a.insights = nil
		a.err = nil
		return a, nil

	case suggestionsMsg:
		// Drop stale responses from earlier keystrokes
		if msg.prefix == a.input.Value() {
			a.suggestions = msg.items
			a.sugIndex = -1
		}
		return a, nil

	case channelsMsg:
		a.channels = msg.channels
		return a, nil

	case insightsMsg:
		a.insights = msg.insights
		return a, nil

	case errorMsg:
		a.searching = false
		a.err = msg.err
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "q":
		// Quit only when not typing a query containing "q"
		if !a.input.Focused() {
			return a, tea.Quit
		}

	case "esc":
		if len(a.suggestions) > 0 {
			a.suggestions = nil
			a.sugIndex = -1
			return a, nil
		}
		if !a.input.Focused() {
			a.input.Focus()
			return a, textinput.Blink
		}
		a.input.SetValue("")
		a.result = nil
		a.insights = nil
		a.err = nil
		return a, nil

	case "up":
		if len(a.suggestions) > 0 {
			if a.sugIndex > 0 {
				a.sugIndex--
			}
			return a, nil
		}
		if a.result != nil && a.resIndex > 0 {
			a.resIndex--
			a.insights = nil
		}
		return a, nil

	case "down":
		if len(a.suggestions) > 0 {
			if a.sugIndex < len(a.suggestions)-1 {
				a.sugIndex++
			}
			return a, nil
		}
		if a.result != nil && a.resIndex < len(a.result.Videos)-1 {
			a.resIndex++
			a.insights = nil
		}
		return a, nil

	case "ctrl+o":
		if a.ports.Insights == nil || a.result == nil || a.resIndex >= len(a.result.Videos) {
			return a, nil
		}
		hit := a.result.Videos[a.resIndex]
		if hit.Video.ChannelID == "" {
			return a, nil
		}
		return a, a.insightsCmd(hit.Video.ChannelID)

	case "tab":
		if a.sugIndex >= 0 && a.sugIndex < len(a.suggestions) {
			a.input.SetValue(a.suggestions[a.sugIndex].Text)
			a.input.CursorEnd()
			a.suggestions = nil
			a.sugIndex = -1
		}
		return a, nil

	case "enter":
		query := strings.TrimSpace(a.input.Value())
		if a.sugIndex >= 0 && a.sugIndex < len(a.suggestions) {
			query = a.suggestions[a.sugIndex].Text
			a.input.SetValue(query)
			a.input.CursorEnd()
		}
		if query == "" {
			return a, nil
		}
		a.suggestions = nil
		a.sugIndex = -1
		a.searching = true
		a.input.Blur()
		return a, a.searchCmd(query)
	}

	// Any other key edits the query; refresh suggestions as it changes
	if a.input.Focused() {
		var cmd tea.Cmd
		before := a.input.Value()
		a.input, cmd = a.input.Update(msg)
		if a.input.Value() != before {
			return a, tea.Batch(cmd, a.suggestCmd(a.input.Value()))
		}
		return a, cmd
	}

	return a, nil
}

// searchCmd runs a search off the update loop.
func (a *App) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Search.Search(a.ctx, query, domain.SearchOptions{Limit: 10})
		if err != nil {
			return errorMsg{err: err}
		}
		return searchCompletedMsg{result: result}
	}
}

// loadChannelsCmd fetches the tracked channel list for the idle screen.
func (a *App) loadChannelsCmd() tea.Cmd {
	return func() tea.Msg {
		channels, err := a.ports.Channels.List(a.ctx)
		if err != nil {
			return channelsMsg{}
		}
		return channelsMsg{channels: channels}
	}
}

// insightsCmd fetches the channel breakdown for the highlighted hit.
func (a *App) insightsCmd(channelID string) tea.Cmd {
	return func() tea.Msg {
		insights, err := a.ports.Insights.ChannelInsights(a.ctx, channelID)
		if err != nil {
			return errorMsg{err: err}
		}
		return insightsMsg{insights: insights}
	}
}

// suggestCmd fetches autocomplete candidates off the update loop.
func (a *App) suggestCmd(prefix string) tea.Cmd {
	return func() tea.Msg {
		items, err := a.ports.Search.Suggest(a.ctx, prefix, maxSuggestions)
		if err != nil {
			// Autocomplete failures stay silent; search still works.
			return suggestionsMsg{prefix: prefix}
		}
		return suggestionsMsg{prefix: prefix, items: items}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("ClipSight"))
	b.WriteString(a.styles.Muted.Render("  transcript insights"))
	b.WriteString("\n\n")

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")

	for i, s := range a.suggestions {
		line := fmt.Sprintf("  %s (%s)", s.Text, s.Type)
		if i == a.sugIndex {
			b.WriteString(a.styles.Selected.Render(line))
		} else {
			b.WriteString(a.styles.Suggestion.Render(line))
		}
		b.WriteString("\n")
	}

	switch {
	case a.err != nil:
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.searching:
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("Searching..."))
		b.WriteString("\n")
	case a.result != nil:
		b.WriteString(a.renderResult())
	case len(a.channels) > 0:
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render("Tracked channels"))
		b.WriteString("\n")
		for _, ch := range a.channels {
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %s  %s", ch.ID, ch.Title)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := "enter search · tab accept · ↑/↓ navigate · esc clear · ctrl+c quit"
	if a.ports.Insights != nil {
		help = "enter search · tab accept · ↑/↓ navigate · ctrl+o channel insights · esc clear · ctrl+c quit"
	}
	b.WriteString(a.styles.Help.Render(help))
	return b.String()
}

func (a *App) renderResult() string {
	var b strings.Builder

	if a.result.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("No results."))
		b.WriteString("\n")
		return b.String()
	}

	if a.result.Answer != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Answer.Render(a.result.Answer))
		b.WriteString("\n")
	}

	if len(a.result.Videos) > 0 {
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render("Videos"))
		b.WriteString("\n")
		for i, hit := range a.result.Videos {
			line := fmt.Sprintf("  %s - %s", hit.Video.Title, hit.Video.ChannelName)
			if i == a.resIndex {
				b.WriteString(a.styles.Selected.Render(line))
			} else {
				b.WriteString(a.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}

		if a.resIndex < len(a.result.Videos) {
			selected := a.result.Videos[a.resIndex].Video
			if selected.Summary != "" {
				b.WriteString("\n")
				b.WriteString(a.styles.Muted.Render("  " + selected.Summary))
				b.WriteString("\n")
			}
		}

		if a.insights != nil {
			b.WriteString("\n")
			b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("Channel: %s", a.insights.Channel.Title)))
			b.WriteString("\n")
			b.WriteString(a.styles.Normal.Render(fmt.Sprintf("  %d videos ingested", a.insights.VideosIngested)))
			b.WriteString("\n")
			for _, e := range a.insights.TopBrands {
				b.WriteString(a.styles.Normal.Render(fmt.Sprintf("  %s (%d mentions)", e.Entity.Name, e.Mentions)))
				b.WriteString("\n")
			}
		}
	}

	if len(a.result.Segments) > 0 {
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render("Transcript segments"))
		b.WriteString("\n")
		for _, hit := range a.result.Segments {
			b.WriteString(a.styles.Normal.Render(
				fmt.Sprintf("  [%s @ %.0fs] %s", hit.VideoID, hit.Segment.Start, hit.Segment.Text)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
