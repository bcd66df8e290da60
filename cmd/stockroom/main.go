// cmd/stockroom/main.go
//
// This is the entry point for the stockroom CLI.
// Running `stockroom` with no arguments launches the interactive TUI; the
// subcommands replay the same operations non-interactively and print their
// results, which is handy for scripts and quick checks.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/kingrea/stockroom/internal/catalog"
	"github.com/kingrea/stockroom/internal/config"
	"github.com/kingrea/stockroom/internal/inventory"
	"github.com/kingrea/stockroom/internal/tui"
)

func main() {
	app := &cli.App{
		Name:  "stockroom",
		Usage: "terminal inventory manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "project",
				Usage: "project directory (defaults to the current directory)",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "print the product table and total inventory value",
				Action: runReport,
			},
			{
				Name:  "low-stock",
				Usage: "list products at or below the stock threshold",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "threshold",
						Value: -1,
						Usage: "override the configured threshold",
					},
				},
				Action: runLowStock,
			},
			{
				Name:      "search",
				Usage:     "find products by name or category",
				ArgsUsage: "<query>",
				Action:    runSearch,
			},
			{
				Name:  "add",
				Usage: "validate and add a product, then print the resulting table",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Float64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "category", Required: true},
					&cli.IntFlag{Name: "stock", Required: true},
				},
				Action: runAdd,
			},
			{
				Name:      "remove",
				Usage:     "remove a product by ID, then print the resulting table",
				ArgsUsage: "<id>",
				Action:    runRemove,
			},
			{
				Name:      "update-stock",
				Usage:     "overwrite a product's stock count, then print the resulting table",
				ArgsUsage: "<id> <stock>",
				Action:    runUpdateStock,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(c *cli.Context) error {
	projectDir, err := resolveProject(c)
	if err != nil {
		return err
	}
	if err := config.InitStockroomDir(projectDir); err != nil {
		return fmt.Errorf("initialize %s: %w", config.StockroomDir, err)
	}
	app, err := tui.NewApp(projectDir)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// loadSession builds the in-memory store the way a TUI session would: init
// the dot dir, load the config and seed the store from the catalog. The
// store lives only for this command; mutating subcommands print the state
// they produced before exiting.
func loadSession(c *cli.Context) (*config.Config, *inventory.Store, error) {
	projectDir, err := resolveProject(c)
	if err != nil {
		return nil, nil, err
	}
	if err := config.InitStockroomDir(projectDir); err != nil {
		return nil, nil, fmt.Errorf("initialize %s: %w", config.StockroomDir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, nil, err
	}
	store := inventory.New(inventory.WithLowStockThreshold(cfg.LowStockThreshold()))
	entries, err := catalog.Load(cfg.CatalogPath())
	if err != nil {
		return nil, nil, err
	}
	_, skipped := catalog.Seed(store, entries)
	for _, skip := range skipped {
		fmt.Fprintf(os.Stderr, "warning: %v\n", skip)
	}
	return cfg, store, nil
}

func resolveProject(c *cli.Context) (string, error) {
	project := c.String("project")
	if project == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		project = cwd
	}
	return filepath.Abs(project)
}

func runReport(c *cli.Context) error {
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	fmt.Print(inventory.FormatReport(store.Products(), store.TotalValue()))
	return nil
}

func runLowStock(c *cli.Context) error {
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	threshold := c.Int("threshold")
	if threshold < 0 {
		threshold = store.Threshold()
	}
	low := store.LowStock(threshold)
	if len(low) == 0 {
		fmt.Printf("No products at or below %d in stock.\n", threshold)
		return nil
	}
	fmt.Printf("Products at or below %d in stock:\n", threshold)
	fmt.Print(inventory.FormatReport(low, store.TotalValue()))
	return nil
}

func runSearch(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return fmt.Errorf("usage: stockroom search <query>")
	}
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	matches := store.Search(query)
	if len(matches) == 0 {
		fmt.Printf("No products match %q.\n", query)
		if suggestions := store.Suggest(query, 3); len(suggestions) > 0 {
			fmt.Printf("Did you mean: %s?\n", joinComma(suggestions))
		}
		return nil
	}
	fmt.Print(inventory.FormatReport(matches, store.TotalValue()))
	return nil
}

func runAdd(c *cli.Context) error {
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	p, err := store.Add(c.String("name"), c.Float64("price"), c.String("category"), c.Int("stock"))
	if err != nil {
		return err
	}
	fmt.Printf("Added %s\n", p.Label())
	fmt.Print(inventory.FormatReport(store.Products(), store.TotalValue()))
	return nil
}

func runRemove(c *cli.Context) error {
	id, err := intArg(c, 0, "id")
	if err != nil {
		return err
	}
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	if err := store.Remove(id); err != nil {
		return err
	}
	fmt.Printf("Removed product #%d\n", id)
	fmt.Print(inventory.FormatReport(store.Products(), store.TotalValue()))
	return nil
}

func runUpdateStock(c *cli.Context) error {
	id, err := intArg(c, 0, "id")
	if err != nil {
		return err
	}
	stock, err := intArg(c, 1, "stock")
	if err != nil {
		return err
	}
	_, store, err := loadSession(c)
	if err != nil {
		return err
	}
	if err := store.UpdateStock(id, stock); err != nil {
		return err
	}
	fmt.Printf("Stock for #%d set to %d\n", id, stock)
	fmt.Print(inventory.FormatReport(store.Products(), store.TotalValue()))
	return nil
}

func intArg(c *cli.Context, idx int, label string) (int, error) {
	value := c.Args().Get(idx)
	if value == "" {
		return 0, fmt.Errorf("missing <%s> argument", label)
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("<%s> must be a whole number, got %q", label, value)
	}
	return n, nil
}

func joinComma(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
