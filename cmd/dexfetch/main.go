package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/stockroom/internal/config"
	"github.com/kingrea/stockroom/internal/dex"
	"github.com/kingrea/stockroom/internal/team"
)

// dexfetch looks up a single species against the configured dex endpoint and
// prints it, optionally rostering it onto a saved team. It exists so species
// data and team files can be poked at without opening the TUI.
func main() {
	name := flag.String("name", "", "species name to look up (e.g. pikachu)")
	teamName := flag.String("team", "", "saved team to add the species to (created if missing)")
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	noFilter := flag.Bool("no-filter", false, "skip the known-species filter and always hit the endpoint")
	flag.Parse()

	if strings.TrimSpace(*name) == "" {
		die("--name is required")
	}

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitStockroomDir(absoluteProject); err != nil {
		die("init %s: %v", config.StockroomDir, err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}

	opts := []dex.ClientOption{dex.WithTimeout(cfg.DexTimeout())}
	if *noFilter {
		opts = append(opts, dex.WithKnownSpecies(nil))
	}
	client := dex.NewClient(cfg.DexBaseURL(), opts...)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DexTimeout())
	defer cancel()
	creature, err := client.Lookup(ctx, *name)
	if err != nil {
		if errors.Is(err, dex.ErrUnknownCreature) {
			die("no such species: %s", dex.Normalize(*name))
		}
		die("lookup %s: %v", *name, err)
	}
	fmt.Println(creature.Label())

	if strings.TrimSpace(*teamName) == "" {
		return
	}
	teams := team.NewStore(cfg.TeamsDir())
	roster, err := teams.Load(*teamName)
	if errors.Is(err, team.ErrNotFound) {
		roster, err = team.New(*teamName)
	}
	if err != nil {
		die("open team %s: %v", *teamName, err)
	}
	if err := roster.Add(creature); err != nil {
		die("roster %s: %v", creature.Name, err)
	}
	path, err := teams.Save(roster)
	if err != nil {
		die("save team %s: %v", roster.Name, err)
	}
	fmt.Printf("%s rostered on %s (%d/%d) → %s\n",
		creature.Name, roster.Name, len(roster.Members), team.MaxMembers, path)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
