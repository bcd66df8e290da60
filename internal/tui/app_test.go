package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/stockroom/internal/config"
	"github.com/kingrea/stockroom/internal/dex"
)

func newTestApp(t *testing.T, opts ...AppOption) *App {
	t.Helper()
	projectDir := t.TempDir()
	if err := config.InitStockroomDir(projectDir); err != nil {
		t.Fatalf("init stockroom dir: %v", err)
	}
	app, err := NewApp(projectDir, opts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func pressKey(t *testing.T, app *App, key tea.KeyMsg) *App {
	t.Helper()
	model, cmd := app.Update(key)
	return runCommands(t, model, cmd)
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		nextModel, nextCmd := app.Update(msg)
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		cmd = nextCmd
	}
	return app
}

func selectMenuItem(t *testing.T, app *App, title string) *App {
	t.Helper()
	for idx, item := range app.mainMenu.Items() {
		entry, ok := item.(menuItem)
		if !ok {
			continue
		}
		if entry.title == title {
			app.mainMenu.Select(idx)
			model, cmd := app.handleMenuSelection()
			return runCommands(t, model, cmd)
		}
	}
	t.Fatalf("menu item %q not found", title)
	return nil
}

func TestSeedCatalogPopulatesStore(t *testing.T) {
	app := newTestApp(t)
	// The default catalog materialized by InitStockroomDir holds 5 products.
	if got := app.Store().Len(); got != 5 {
		t.Fatalf("expected 5 seeded products, got %d", got)
	}
}

func TestAddProductThroughForm(t *testing.T) {
	app := newTestApp(t)
	before := app.Store().Len()
	app = selectMenuItem(t, app, "Add Product")
	if app.state != stateAddProduct {
		t.Fatalf("expected add form, got state %d", app.state)
	}
	app.form.inputs[0].SetValue("Keyboard")
	app.form.inputs[1].SetValue("49.99")
	app.form.inputs[2].SetValue("Electronics")
	app.form.inputs[3].SetValue("25")
	app.form.setFocus(3)
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if got := app.Store().Len(); got != before+1 {
		t.Fatalf("expected %d products after add, got %d", before+1, got)
	}
	if !strings.Contains(app.statusMsg, "Keyboard") {
		t.Fatalf("status should confirm the add, got %q", app.statusMsg)
	}
}

func TestAddFormRejectsBadPriceInPlace(t *testing.T) {
	app := newTestApp(t)
	before := app.Store().Len()
	app = selectMenuItem(t, app, "Add Product")
	app.form.inputs[0].SetValue("Widget")
	app.form.inputs[1].SetValue("free")
	app.form.inputs[2].SetValue("Misc")
	app.form.inputs[3].SetValue("3")
	app.form.setFocus(3)
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.form.errMsg == "" {
		t.Fatalf("expected inline validation error")
	}
	if got := app.Store().Len(); got != before {
		t.Fatalf("rejected product must not be added: %d vs %d", got, before)
	}
}

func TestUpdateStockAndRemoveThroughForms(t *testing.T) {
	app := newTestApp(t)
	app = selectMenuItem(t, app, "Update Stock")
	app.form.inputs[0].SetValue("1")
	app.form.inputs[1].SetValue("0")
	app.form.setFocus(1)
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	p, err := app.Store().Get(1)
	if err != nil {
		t.Fatalf("get product 1: %v", err)
	}
	if p.Stock != 0 {
		t.Fatalf("expected stock 0 after update, got %d", p.Stock)
	}

	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	app = selectMenuItem(t, app, "Remove Product")
	app.form.inputs[0].SetValue("1")
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if _, err := app.Store().Get(1); err == nil {
		t.Fatalf("product 1 should be gone after remove")
	}
}

func TestSearchOffersSuggestionsOnEmptyResult(t *testing.T) {
	app := newTestApp(t)
	app = selectMenuItem(t, app, "Search")
	app.form.inputs[0].SetValue("Laptp")
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if len(app.results) != 0 {
		t.Fatalf("expected no direct matches, got %v", app.results)
	}
	if !strings.Contains(app.resultNote, "Did you mean") {
		t.Fatalf("expected suggestions in %q", app.resultNote)
	}
}

func TestLowStockReportUsesConfiguredThreshold(t *testing.T) {
	app := newTestApp(t)
	app = selectMenuItem(t, app, "Low Stock Report")
	if got := app.form.value(0); got != "5" {
		t.Fatalf("threshold should be prefilled from config, got %q", got)
	}
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	// Phone (4) and Monitor (2) sit at or below the default threshold.
	if len(app.results) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(app.results))
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	app = selectMenuItem(t, app, "Search")
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.state != stateMenu {
		t.Fatalf("expected return to menu, got state %d", app.state)
	}
	if app.form != nil {
		t.Fatalf("form should be cleared on return to menu")
	}
}

func TestTeamBuilderLookupAddsMember(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/pikachu" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":25,"name":"pikachu","base_experience":112,"types":[{"type":{"name":"electric"}}]}`))
	}))
	defer server.Close()

	app := newTestApp(t, WithDexClient(dex.NewClient(server.URL)))
	app = selectMenuItem(t, app, "Team Builder")
	if app.state != stateTeamBuilder || app.teamView == nil {
		t.Fatalf("expected team builder view")
	}

	app.teamView.input.SetValue("Trail Team")
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.teamView.phase != teamPhaseRoster {
		t.Fatalf("expected roster phase after naming the team")
	}

	app.teamView.input.SetValue("pikachu")
	app = pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if len(app.teamView.team.Members) != 1 {
		t.Fatalf("expected one rostered member, got %d", len(app.teamView.team.Members))
	}
	if app.teamView.team.Members[0].Name != "pikachu" {
		t.Fatalf("unexpected member: %+v", app.teamView.team.Members[0])
	}
}

func TestViewRendersSummaryPanel(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)
	view := app.View()
	if !strings.Contains(view, "STOCKROOM") {
		t.Fatalf("view missing header:\n%s", view)
	}
	if !strings.Contains(view, "SUMMARY") {
		t.Fatalf("view missing summary panel:\n%s", view)
	}
	if !strings.Contains(view, "Products: 5") {
		t.Fatalf("summary should count seeded products:\n%s", view)
	}
}
