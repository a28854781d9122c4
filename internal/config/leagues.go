package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alias1177/OddsPredictor/models"
)

// Catalog is the on-disk league definition file
type Catalog struct {
	Leagues    []models.League `yaml:"leagues"`
	Bookmakers []string        `yaml:"bookmakers"`
}

var leagueAliases = map[string]string{
	"laliga":         "la_liga",
	"la-liga":        "la_liga",
	"premier_league": "epl",
	"premierleague":  "epl",
	"bundes":         "bundesliga",
}

// DefaultLeagues returns the built-in league catalog
func DefaultLeagues() []models.League {
	return []models.League{
		{Key: "bundesliga", Name: "Bundesliga", SportKey: "soccer_germany_bundesliga", Command: "bundesliga"},
		{Key: "epl", Name: "English Premier League", SportKey: "soccer_epl", Command: "epl"},
		{Key: "la_liga", Name: "La Liga", SportKey: "soccer_spain_la_liga", Command: "laliga"},
	}
}

// LoadCatalog reads a YAML league catalog
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse league catalog: %w", err)
	}

	if len(catalog.Leagues) == 0 {
		return nil, fmt.Errorf("league catalog %s defines no leagues", path)
	}
	seen := make(map[string]bool, len(catalog.Leagues))
	for i, l := range catalog.Leagues {
		if l.Key == "" || l.SportKey == "" {
			return nil, fmt.Errorf("league #%d in %s needs key and sport_key", i+1, path)
		}
		if seen[l.Key] {
			return nil, fmt.Errorf("league %q defined twice in %s", l.Key, path)
		}
		seen[l.Key] = true
		if l.Name == "" {
			catalog.Leagues[i].Name = l.Key
		}
		if l.Command == "" {
			catalog.Leagues[i].Command = strings.ReplaceAll(l.Key, "_", "")
		}
	}
	sort.Slice(catalog.Leagues, func(i, j int) bool {
		return catalog.Leagues[i].Key < catalog.Leagues[j].Key
	})

	return &catalog, nil
}

// FindLeague resolves a league key, alias or bot command
func FindLeague(leagues []models.League, key string) (models.League, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := leagueAliases[key]; ok {
		key = alias
	}
	for _, l := range leagues {
		if l.Key == key || l.Command == key {
			return l, true
		}
	}
	return models.League{}, false
}

// LeagueKeys lists the keys of the catalog in order
func LeagueKeys(leagues []models.League) []string {
	keys := make([]string, len(leagues))
	for i, l := range leagues {
		keys[i] = l.Key
	}
	return keys
}
