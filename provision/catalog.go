// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package provision

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is everything that exists before the first spin: the themes with
// their capacities and the teams with their credentials.
type Catalog struct {
	Themes []ThemeSpec `yaml:"themes"`
	Teams  []TeamSpec  `yaml:"teams"`
}

type ThemeSpec struct {
	Name     string `yaml:"name"`
	MaxCount int    `yaml:"max_count"`
}

type TeamSpec struct {
	LoginID  string `yaml:"login_id"`
	TeamName string `yaml:"team_name"`
	Password string `yaml:"password"`
}

// DefaultTeamCount is the size of the built-in team roster
const DefaultTeamCount = 21

// DefaultCatalog returns the built-in event catalog: ten themes, FinTech
// taking three teams and the rest two, and teams team01..team21.
func DefaultCatalog() Catalog {
	c := Catalog{
		Themes: []ThemeSpec{
			{Name: "FinTech", MaxCount: 3},
			{Name: "HealthTech", MaxCount: 2},
			{Name: "EdTech", MaxCount: 2},
			{Name: "CivicTech", MaxCount: 2},
			{Name: "GameTech", MaxCount: 2},
			{Name: "AI Systems", MaxCount: 2},
			{Name: "Blockchain Systems", MaxCount: 2},
			{Name: "AgriTech", MaxCount: 2},
			{Name: "Sustainability Tech", MaxCount: 2},
			{Name: "CareerTech", MaxCount: 2},
		},
	}

	for i := 1; i <= DefaultTeamCount; i++ {
		num := fmt.Sprintf("%02d", i)
		c.Teams = append(c.Teams, TeamSpec{
			LoginID:  "team" + num,
			TeamName: "Team " + num,
			Password: "play@T" + num,
		})
	}
	return c
}

// LoadCatalog reads a YAML catalog file and validates it.
//
//	themes:
//	  - name: FinTech
//	    max_count: 3
//	teams:
//	  - login_id: team01
//	    team_name: Team 01
//	    password: play@T01
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate trims names and rejects blanks, duplicates and negative
// capacities.
func (c *Catalog) Validate() error {
	themes := make(map[string]bool, len(c.Themes))
	for i := range c.Themes {
		t := &c.Themes[i]
		t.Name = strings.TrimSpace(t.Name)
		switch {
		case t.Name == "":
			return fmt.Errorf("%w: theme %d has no name", ErrInvalidCatalog, i+1)
		case t.MaxCount < 0:
			return fmt.Errorf("%w: theme %q has negative max_count", ErrInvalidCatalog, t.Name)
		case themes[t.Name]:
			return fmt.Errorf("%w: duplicate theme %q", ErrInvalidCatalog, t.Name)
		}
		themes[t.Name] = true
	}

	teams := make(map[string]bool, len(c.Teams))
	for i := range c.Teams {
		t := &c.Teams[i]
		t.LoginID = strings.TrimSpace(t.LoginID)
		t.TeamName = strings.TrimSpace(t.TeamName)
		switch {
		case t.LoginID == "":
			return fmt.Errorf("%w: team %d has no login_id", ErrInvalidCatalog, i+1)
		case t.Password == "":
			return fmt.Errorf("%w: team %q has no password", ErrInvalidCatalog, t.LoginID)
		case teams[t.LoginID]:
			return fmt.Errorf("%w: duplicate team %q", ErrInvalidCatalog, t.LoginID)
		}
		if t.TeamName == "" {
			t.TeamName = t.LoginID
		}
		teams[t.LoginID] = true
	}

	return nil
}
