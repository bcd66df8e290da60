// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for stockroom.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stockroom/internal/catalog"
	"github.com/kingrea/stockroom/internal/config"
	"github.com/kingrea/stockroom/internal/dex"
	"github.com/kingrea/stockroom/internal/inventory"
	"github.com/kingrea/stockroom/internal/journal"
	"github.com/kingrea/stockroom/internal/team"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateMenu        appState = iota // Main menu
	stateBrowse                      // Product table with filtering
	stateAddProduct                  // Add form
	stateUpdateStock                 // Update-stock form
	stateRemove                      // Remove form
	stateSearch                      // Search form + results
	stateLowStock                    // Low-stock report
	stateTeamBuilder                 // Creature team builder
)

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state     appState
	config    *config.Config
	store     *inventory.Store
	journal   *journal.Journal
	dexClient *dex.Client
	teams     *team.Store

	// UI components
	mainMenu list.Model
	browse   list.Model
	form     *form
	teamView *teamView

	// Results of the last search / low-stock query
	results    []inventory.Product
	resultNote string

	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithDexClient overrides the creature-lookup client used by the team builder.
func WithDexClient(client *dex.Client) AppOption {
	return func(a *App) {
		if client != nil {
			a.dexClient = client
		}
	}
}

// menuItem implements list.Item for our menu entries.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// productItem wraps a product for the browse list.
type productItem struct {
	product inventory.Product
}

func (i productItem) Title() string { return fmt.Sprintf("#%d %s", i.product.ID, i.product.Name) }
func (i productItem) Description() string {
	return fmt.Sprintf("%s · $%.2f · %d in stock", i.product.Category, i.product.Price, i.product.Stock)
}
func (i productItem) FilterValue() string { return i.product.Name + " " + i.product.Category }

// NewApp loads the configuration, seeds the in-memory store from the
// catalog and builds the UI components.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}

	store := inventory.New(inventory.WithLowStockThreshold(cfg.LowStockThreshold()))
	entries, err := catalog.Load(cfg.CatalogPath())
	if err != nil {
		return nil, err
	}
	added, skipped := catalog.Seed(store, entries)

	jn, jErr := journal.New(cfg.JournalPath())
	if jErr == nil {
		jn.Info("Session opened · %d products seeded from catalog", added)
		for _, skip := range skipped {
			jn.Warn("%v", skip)
		}
	}

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "▣ STOCKROOM"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	browse := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	browse.Title = "Inventory"
	browse.SetShowStatusBar(false)

	app := &App{
		state:     stateMenu,
		config:    cfg,
		store:     store,
		journal:   jn,
		dexClient: dex.NewClient(cfg.DexBaseURL(), dex.WithTimeout(cfg.DexTimeout())),
		teams:     team.NewStore(cfg.TeamsDir()),
		mainMenu:  mainMenu,
		browse:    browse,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Browse Inventory", desc: "All products with filtering and total value"},
		menuItem{title: "Add Product", desc: "Validate and append a new product"},
		menuItem{title: "Update Stock", desc: "Overwrite the stock count of a product"},
		menuItem{title: "Remove Product", desc: "Delete a product by ID"},
		menuItem{title: "Search", desc: "Find products by name or category"},
		menuItem{title: "Low Stock Report", desc: "Products at or below the threshold"},
		menuItem{title: "Team Builder", desc: "Assemble a creature team via the dex"},
		menuItem{title: "Exit", desc: "Quit stockroom"},
	}
}

// Store exposes the inventory store, mainly so tests can inspect state.
func (a *App) Store() *inventory.Store {
	return a.store
}

func (a *App) logInfo(format string, args ...any) {
	a.journal.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	a.journal.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	a.journal.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.browse.SetSize(max(0, msg.Width/2), max(0, msg.Height-14))
		return a, nil

	case lookupResultMsg:
		if a.teamView != nil {
			return a, a.teamView.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMenu {
				a.logInfo("Session closed")
				return a, tea.Quit
			}
		case "esc":
			// The browse list uses esc itself while a filter is active.
			if a.state == stateBrowse && a.browse.FilterState() == list.Filtering {
				break
			}
			if a.state != stateMenu {
				return a.returnToMenu()
			}
		case "enter":
			if a.state == stateMenu {
				return a.handleMenuSelection()
			}
		}
	}

	return a.updateActiveScreen(msg)
}

func (a *App) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case stateBrowse:
		a.browse, cmd = a.browse.Update(msg)
	case stateAddProduct, stateUpdateStock, stateRemove, stateSearch, stateLowStock:
		if a.form == nil {
			return a, nil
		}
		var submitted bool
		cmd, submitted = a.form.Update(msg)
		if submitted {
			a.submitForm()
		}
	case stateTeamBuilder:
		if a.teamView != nil {
			cmd = a.teamView.Update(msg)
		}
	}
	return a, cmd
}

// handleMenuSelection processes menu item selection.
func (a *App) handleMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case "Browse Inventory":
		a.logInfo("Menu · Browse Inventory selected")
		return a.openBrowse()
	case "Add Product":
		a.logInfo("Menu · Add Product selected")
		return a.openForm(stateAddProduct, newForm("ADD PRODUCT",
			fieldSpec{label: "Name", placeholder: "e.g. Keyboard"},
			fieldSpec{label: "Price", placeholder: "e.g. 49.99", width: 12},
			fieldSpec{label: "Category", placeholder: "e.g. Electronics"},
			fieldSpec{label: "Stock", placeholder: "e.g. 25", width: 12},
		))
	case "Update Stock":
		a.logInfo("Menu · Update Stock selected")
		return a.openForm(stateUpdateStock, newForm("UPDATE STOCK",
			fieldSpec{label: "Product ID", placeholder: "e.g. 3", width: 12},
			fieldSpec{label: "New stock", placeholder: "e.g. 0", width: 12},
		))
	case "Remove Product":
		a.logInfo("Menu · Remove Product selected")
		return a.openForm(stateRemove, newForm("REMOVE PRODUCT",
			fieldSpec{label: "Product ID", placeholder: "e.g. 3", width: 12},
		))
	case "Search":
		a.logInfo("Menu · Search selected")
		return a.openForm(stateSearch, newForm("SEARCH",
			fieldSpec{label: "Query", placeholder: "name or category"},
		))
	case "Low Stock Report":
		a.logInfo("Menu · Low Stock Report selected")
		return a.openForm(stateLowStock, newForm("LOW STOCK REPORT",
			fieldSpec{label: "Threshold", value: fmt.Sprintf("%d", a.store.Threshold()), width: 12},
		))
	case "Team Builder":
		a.logInfo("Menu · Team Builder selected")
		a.state = stateTeamBuilder
		a.teamView = newTeamView(a)
		a.statusMsg = ""
		return a, nil
	case "Exit":
		a.logInfo("Session closed")
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) openBrowse() (tea.Model, tea.Cmd) {
	products := a.store.Products()
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p}
	}
	a.browse.SetItems(items)
	if a.width > 0 && a.height > 0 {
		a.browse.SetSize(max(0, a.width/2), max(0, a.height-14))
	}
	a.state = stateBrowse
	a.statusMsg = fmt.Sprintf("%d products · total value $%.2f", a.store.Len(), a.store.TotalValue())
	return a, nil
}

func (a *App) openForm(state appState, f *form) (tea.Model, tea.Cmd) {
	a.state = state
	a.form = f
	a.results = nil
	a.resultNote = ""
	a.statusMsg = ""
	return a, nil
}

// submitForm applies the active form to the store. Validation failures stay
// inline on the form; successes land in the status footer and the journal.
func (a *App) submitForm() {
	switch a.state {
	case stateAddProduct:
		a.submitAdd()
	case stateUpdateStock:
		a.submitUpdateStock()
	case stateRemove:
		a.submitRemove()
	case stateSearch:
		a.submitSearch()
	case stateLowStock:
		a.submitLowStock()
	}
}

func (a *App) submitAdd() {
	price, err := parseFloatField("Price", a.form.value(1))
	if err != nil {
		a.form.setError(err)
		return
	}
	stock, err := parseIntField("Stock", a.form.value(3))
	if err != nil {
		a.form.setError(err)
		return
	}
	p, err := a.store.Add(a.form.value(0), price, a.form.value(2), stock)
	if err != nil {
		a.form.setError(err)
		a.logWarn("Add rejected: %v", err)
		return
	}
	a.form.reset()
	a.statusMsg = fmt.Sprintf("Added %s", p.Label())
	a.logInfo("Product added: %s", p.Label())
}

func (a *App) submitUpdateStock() {
	id, err := parseIntField("Product ID", a.form.value(0))
	if err != nil {
		a.form.setError(err)
		return
	}
	stock, err := parseIntField("New stock", a.form.value(1))
	if err != nil {
		a.form.setError(err)
		return
	}
	if err := a.store.UpdateStock(id, stock); err != nil {
		a.form.setError(err)
		a.logWarn("Update stock rejected: %v", err)
		return
	}
	a.form.reset()
	a.statusMsg = fmt.Sprintf("Stock for #%d set to %d", id, stock)
	a.logInfo("Stock updated: #%d -> %d", id, stock)
}

func (a *App) submitRemove() {
	id, err := parseIntField("Product ID", a.form.value(0))
	if err != nil {
		a.form.setError(err)
		return
	}
	if err := a.store.Remove(id); err != nil {
		a.form.setError(err)
		a.logWarn("Remove rejected: %v", err)
		return
	}
	a.form.reset()
	a.statusMsg = fmt.Sprintf("Removed product #%d", id)
	a.logInfo("Product removed: #%d", id)
}

func (a *App) submitSearch() {
	query := a.form.value(0)
	if query == "" {
		a.form.setError(fmt.Errorf("query is required"))
		return
	}
	a.form.setError(nil)
	a.results = a.store.Search(query)
	if len(a.results) == 0 {
		note := fmt.Sprintf("No products match %q.", query)
		if suggestions := a.store.Suggest(query, 3); len(suggestions) > 0 {
			note += fmt.Sprintf(" Did you mean: %s?", strings.Join(suggestions, ", "))
		}
		a.resultNote = note
		a.logInfo("Search %q · no matches", query)
		return
	}
	a.resultNote = fmt.Sprintf("%d match(es) for %q", len(a.results), query)
	a.logInfo("Search %q · %d match(es)", query, len(a.results))
}

func (a *App) submitLowStock() {
	threshold, err := parseIntField("Threshold", a.form.value(0))
	if err != nil {
		a.form.setError(err)
		return
	}
	if threshold < 0 {
		a.form.setError(fmt.Errorf("threshold cannot be negative"))
		return
	}
	a.form.setError(nil)
	a.results = a.store.LowStock(threshold)
	if len(a.results) == 0 {
		a.resultNote = fmt.Sprintf("No products at or below %d in stock.", threshold)
	} else {
		a.resultNote = fmt.Sprintf("%d product(s) at or below %d in stock", len(a.results), threshold)
	}
	a.logInfo("Low stock report (threshold %d) · %d product(s)", threshold, len(a.results))
}

// returnToMenu transitions back to the main menu.
func (a *App) returnToMenu() (tea.Model, tea.Cmd) {
	a.state = stateMenu
	a.form = nil
	a.teamView = nil
	a.results = nil
	a.resultNote = ""
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(30, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}
	if a.state == stateMenu {
		a.mainMenu.SetSize(max(20, leftWidth-4), max(10, a.height-12))
	}

	var content string
	switch a.state {
	case stateMenu:
		content = a.mainMenu.View()
	case stateBrowse:
		content = a.renderBrowse()
	case stateAddProduct, stateUpdateStock, stateRemove:
		content = a.form.View()
	case stateSearch, stateLowStock:
		content = a.renderResults()
	case stateTeamBuilder:
		if a.teamView != nil {
			content = a.teamView.View()
		}
	}
	return a.renderChrome(content, leftWidth, rightWidth)
}

func (a *App) renderBrowse() string {
	total := lipgloss.NewStyle().
		Bold(true).
		MarginTop(1).
		Render(fmt.Sprintf("Total inventory value: $%.2f", a.store.TotalValue()))
	return lipgloss.JoinVertical(lipgloss.Left, a.browse.View(), total)
}

func (a *App) renderResults() string {
	sections := []string{a.form.View()}
	if a.resultNote != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(a.resultNote))
	}
	if len(a.results) > 0 {
		sections = append(sections, renderProductTable(a.results))
	}
	return strings.Join(sections, "\n")
}

// renderProductTable draws result rows as a fixed-width table with a styled
// header.
func renderProductTable(products []inventory.Product) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	rows := []string{
		headStyle.Render(fmt.Sprintf("%-5s %-22s %-14s %10s %7s", "ID", "NAME", "CATEGORY", "PRICE", "STOCK")),
	}
	for _, p := range products {
		rows = append(rows, fmt.Sprintf("%-5d %-22s %-14s %10.2f %7d", p.ID, p.Name, p.Category, p.Price, p.Stock))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderChrome(mainContent string, leftWidth, rightWidth int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("▣ STOCKROOM")
	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, leftWidth)).
		Render(a.renderMainArea(mainContent, leftWidth-4))
	var body string
	if rightWidth > 0 {
		rightBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(max(20, rightWidth)).
			Render(a.renderSummaryPanel(rightWidth - 4))
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	} else {
		body = leftBox
	}
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderMainArea(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		content = "Ready."
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(content)
}

// renderSummaryPanel shows the live inventory aggregates next to whatever
// screen is active.
func (a *App) renderSummaryPanel(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("SUMMARY")
	threshold := a.store.Threshold()
	lines := []string{
		title,
		fmt.Sprintf("Products: %d", a.store.Len()),
		fmt.Sprintf("Total value: $%.2f", a.store.TotalValue()),
		fmt.Sprintf("Low stock (≤%d): %d", threshold, len(a.store.LowStockDefault())),
	}
	if slugs, err := a.teams.List(); err == nil {
		lines = append(lines, fmt.Sprintf("Saved teams: %d", len(slugs)))
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	lines := a.journal.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("LOG · session.log")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
