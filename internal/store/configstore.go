package store

import (
	"context"
	"strings"

	"github.com/cowritehq/sprinter/internal/model"
)

// ConfigStore reads the session configuration tables: the project list
// (name, deadline) and the song alias table (formal name, short label).
// Both are read once per session; they are hand-edited, rarely.
type ConfigStore struct {
	projects RowStore
	aliases  RowStore
}

func NewConfigStore(projects, aliases RowStore) *ConfigStore {
	return &ConfigStore{projects: projects, aliases: aliases}
}

func (c *ConfigStore) Projects(ctx context.Context) ([]model.Project, error) {
	if c.projects == nil {
		return nil, nil
	}
	rows, err := c.projects.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0)
	for _, row := range skipHeader(rows) {
		name := strings.TrimSpace(cell(row, 1))
		if name == "" {
			continue
		}
		out = append(out, model.Project{
			Name:     name,
			Deadline: strings.TrimSpace(cell(row, 2)),
		})
	}
	return out, nil
}

func (c *ConfigStore) Aliases(ctx context.Context) (model.AliasMap, error) {
	if c.aliases == nil {
		return model.AliasMap{}, nil
	}
	rows, err := c.aliases.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := model.AliasMap{}
	for _, row := range skipHeader(rows) {
		formal := strings.TrimSpace(cell(row, 1))
		if formal == "" {
			continue
		}
		out[formal] = strings.TrimSpace(cell(row, 2))
	}
	return out, nil
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}
