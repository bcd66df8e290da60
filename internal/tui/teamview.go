// internal/tui/teamview.go
//
// The team builder screen. The user names a team, then types species names;
// each one is looked up through the dex client in a background tea.Cmd and
// added to the roster when it resolves. Teams save to .stockroom/teams/.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stockroom/internal/dex"
	"github.com/kingrea/stockroom/internal/team"
)

type teamPhase int

const (
	teamPhaseName   teamPhase = iota // choosing a team name (or loading)
	teamPhaseRoster                  // adding members
)

type lookupResultMsg struct {
	creature dex.Creature
	err      error
}

type teamView struct {
	app     *App
	phase   teamPhase
	team    *team.Team
	input   textinput.Model
	status  string
	pending bool
	saved   []string
}

func newTeamView(app *App) *teamView {
	input := textinput.New()
	input.Placeholder = "team name (or an existing one to load)"
	input.CharLimit = 64
	input.Width = 36
	input.Focus()
	view := &teamView{
		app:   app,
		phase: teamPhaseName,
		input: input,
	}
	view.refreshSaved()
	return view
}

func (v *teamView) refreshSaved() {
	slugs, err := v.app.teams.List()
	if err != nil {
		v.status = fmt.Sprintf("Could not list saved teams: %v", err)
		return
	}
	v.saved = slugs
}

func (v *teamView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case lookupResultMsg:
		v.pending = false
		if m.err != nil {
			if errors.Is(m.err, dex.ErrUnknownCreature) {
				v.status = fmt.Sprintf("No such species: %v", m.err)
			} else {
				v.status = fmt.Sprintf("Lookup failed: %v", m.err)
			}
			v.app.logWarn("Dex lookup failed: %v", m.err)
			return nil
		}
		if err := v.team.Add(m.creature); err != nil {
			v.status = err.Error()
			v.app.logWarn("Roster rejected %s: %v", m.creature.Name, err)
			return nil
		}
		v.status = fmt.Sprintf("Added %s (%d/%d)", m.creature.Name, len(v.team.Members), team.MaxMembers)
		v.app.logInfo("Team %s · added %s", v.team.Name, m.creature.Name)
		return nil

	case tea.KeyMsg:
		switch m.String() {
		case "enter":
			return v.handleEnter()
		case "ctrl+s":
			return v.saveTeam()
		case "ctrl+d":
			v.dropLastMember()
			return nil
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *teamView) handleEnter() tea.Cmd {
	value := strings.TrimSpace(v.input.Value())
	if value == "" {
		return nil
	}
	switch v.phase {
	case teamPhaseName:
		return v.startTeam(value)
	case teamPhaseRoster:
		return v.lookupSpecies(value)
	}
	return nil
}

func (v *teamView) startTeam(name string) tea.Cmd {
	// An existing slug loads the saved team; anything else starts fresh.
	if loaded, err := v.app.teams.Load(name); err == nil {
		v.team = loaded
		v.status = fmt.Sprintf("Loaded %s (%d members)", loaded.Name, len(loaded.Members))
		v.app.logInfo("Team %s loaded", loaded.Name)
	} else if !errors.Is(err, team.ErrNotFound) {
		v.status = fmt.Sprintf("Could not load team: %v", err)
		v.app.logError("Team load failed: %v", err)
		return nil
	} else {
		fresh, newErr := team.New(name)
		if newErr != nil {
			v.status = newErr.Error()
			return nil
		}
		v.team = fresh
		v.status = fmt.Sprintf("New team %s · type a species name to add members", fresh.Name)
		v.app.logInfo("Team %s created", fresh.Name)
	}
	v.phase = teamPhaseRoster
	v.input.SetValue("")
	v.input.Placeholder = "species name"
	return nil
}

func (v *teamView) lookupSpecies(species string) tea.Cmd {
	if v.pending {
		v.status = "Still looking up the previous species..."
		return nil
	}
	if len(v.team.Members) >= team.MaxMembers {
		v.status = fmt.Sprintf("Roster is full (%d members)", team.MaxMembers)
		return nil
	}
	v.pending = true
	v.status = fmt.Sprintf("Looking up %s...", species)
	v.input.SetValue("")
	client := v.app.dexClient
	timeout := v.app.config.DexTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		creature, err := client.Lookup(ctx, species)
		return lookupResultMsg{creature: creature, err: err}
	}
}

func (v *teamView) saveTeam() tea.Cmd {
	if v.phase != teamPhaseRoster || v.team == nil {
		return nil
	}
	path, err := v.app.teams.Save(v.team)
	if err != nil {
		v.status = fmt.Sprintf("Save failed: %v", err)
		v.app.logError("Team save failed: %v", err)
		return nil
	}
	v.status = fmt.Sprintf("Saved %s", path)
	v.app.logInfo("Team %s saved to %s", v.team.Name, path)
	v.refreshSaved()
	return nil
}

func (v *teamView) dropLastMember() {
	if v.phase != teamPhaseRoster || v.team == nil || len(v.team.Members) == 0 {
		return
	}
	last := v.team.Members[len(v.team.Members)-1]
	if err := v.team.RemoveMember(last.Name); err != nil {
		v.status = err.Error()
		return
	}
	v.status = fmt.Sprintf("Dropped %s", last.Name)
	v.app.logInfo("Team %s · dropped %s", v.team.Name, last.Name)
}

func (v *teamView) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("TEAM BUILDER")
	var lines []string
	lines = append(lines, title, "")

	switch v.phase {
	case teamPhaseName:
		lines = append(lines, "Name your team:", v.input.View())
		if len(v.saved) > 0 {
			lines = append(lines, "", fmt.Sprintf("Saved teams: %s", strings.Join(v.saved, ", ")))
		}
	case teamPhaseRoster:
		header := fmt.Sprintf("%s · %d/%d members", v.team.Name, len(v.team.Members), team.MaxMembers)
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(header))
		if len(v.team.Members) == 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No members yet."))
		}
		for _, m := range v.team.Members {
			lines = append(lines, "  "+m.Label())
		}
		lines = append(lines, "", v.input.View())
	}

	if v.status != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(v.status))
	}
	hint := "Enter → add species    Ctrl+S → save    Ctrl+D → drop last    Esc → back"
	if v.phase == teamPhaseName {
		hint = "Enter → create or load    Esc → back"
	}
	lines = append(lines, lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(hint))
	return strings.Join(lines, "\n")
}
