package vcs

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var workItemReference = regexp.MustCompile(`(?i)\bAB#(\d+)\b`)

// WorkItem is one entry of the work item catalog.
type WorkItem struct {
	ID    int    `yaml:"id"`
	Type  string `yaml:"type"`
	Title string `yaml:"title,omitempty"`
}

// Catalog maps work item ids to their types. Commit messages only carry ids,
// so the type used for exclusion comes from here.
type Catalog struct {
	WorkItems []WorkItem `yaml:"workItems"`
}

// LoadCatalog reads a catalog file. A missing file yields an empty catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Catalog{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read work item catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse work item catalog %s: %w", path, err)
	}

	return &c, nil
}

// TypeOf returns the type of id, or an empty string if the catalog does not
// know it.
func (c *Catalog) TypeOf(id int) string {
	for _, w := range c.WorkItems {
		if w.ID == id {
			return w.Type
		}
	}
	return ""
}

// Filter drops the ids whose type matches one of excludedTypes, ignoring
// case. Order is preserved.
func (c *Catalog) Filter(ids []int, excludedTypes []string) []int {
	return lo.Filter(ids, func(id int, _ int) bool {
		t := c.TypeOf(id)
		if t == "" {
			return true
		}
		return !lo.ContainsBy(excludedTypes, func(excluded string) bool {
			return strings.EqualFold(strings.TrimSpace(excluded), t)
		})
	})
}

// ParseWorkItemReferences returns the AB#<id> references in message in the
// order they appear, without duplicates.
func ParseWorkItemReferences(message string) []int {
	var ids []int
	for _, m := range workItemReference.FindAllStringSubmatch(message, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return lo.Uniq(ids)
}

// FormatWorkItemReferences renders ids the way ParseWorkItemReferences reads
// them.
func FormatWorkItemReferences(ids []int) string {
	return strings.Join(lo.Map(ids, func(id int, _ int) string { return "AB#" + strconv.Itoa(id) }), " ")
}
