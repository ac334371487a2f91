// Package catalog seeds the species/stage/rule reference data from a
// spreadsheet so a fresh install starts with a usable catalog.
package catalog

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cultivapp/entities"
	speciesrepo "cultivapp/pkg/species/repository"
)

// Workbook layout: sheet "Species" (Name, ScientificName, Description),
// sheet "Stages" (Species, Name, Order, DurationDays), sheet "Rules"
// (Species, Stage, Category, Description, IntervalDays). Rules are stored
// through the species association, one row per stage they attach to.
type Loader struct {
	species speciesrepo.SpeciesRepository
}

func New(species speciesrepo.SpeciesRepository) *Loader {
	return &Loader{species: species}
}

// Seed imports the workbook at path. It is a no-op when the catalog already
// has species, so restarts never duplicate reference data.
func (l *Loader) Seed(path string) error {
	existing, err := l.species.FindAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("[catalog] %d species already present, skipping seed", len(existing))
		return nil
	}

	x, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer x.Close()

	byName, err := l.loadSpecies(x)
	if err != nil {
		return err
	}
	if err := l.loadStages(x, byName); err != nil {
		return err
	}
	if err := l.loadRules(x, byName); err != nil {
		return err
	}

	created := 0
	for _, sp := range byName {
		if err := l.species.Create(sp); err != nil {
			return fmt.Errorf("create species %s: %w", sp.Name, err)
		}
		created++
	}
	log.Printf("[catalog] seeded %d species from %s", created, path)
	return nil
}

func (l *Loader) loadSpecies(x *excelize.File) (map[string]*entities.Species, error) {
	rows, cols, err := sheetRows(x, "Species", "name", "scientificname", "description")
	if err != nil {
		return nil, err
	}
	out := map[string]*entities.Species{}
	for _, row := range rows {
		name := cell(row, cols["name"])
		if name == "" {
			continue
		}
		out[name] = &entities.Species{
			Name:           name,
			ScientificName: cell(row, cols["scientificname"]),
			Description:    cell(row, cols["description"]),
			Active:         true,
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("catalog has no species rows")
	}
	return out, nil
}

func (l *Loader) loadStages(x *excelize.File, byName map[string]*entities.Species) error {
	rows, cols, err := sheetRows(x, "Stages", "species", "name", "order", "durationdays")
	if err != nil {
		return err
	}
	for _, row := range rows {
		sp, ok := byName[cell(row, cols["species"])]
		if !ok {
			continue
		}
		order, err := strconv.Atoi(cell(row, cols["order"]))
		if err != nil || order < 1 {
			continue
		}
		stage := entities.Stage{Name: cell(row, cols["name"]), StageOrder: order}
		if days, err := strconv.Atoi(cell(row, cols["durationdays"])); err == nil && days > 0 {
			stage.DurationDays = &days
		}
		sp.Stages = append(sp.Stages, stage)
	}
	return nil
}

func (l *Loader) loadRules(x *excelize.File, byName map[string]*entities.Species) error {
	rows, cols, err := sheetRows(x, "Rules", "species", "stage", "category", "description", "intervaldays")
	if err != nil {
		return err
	}
	for _, row := range rows {
		sp, ok := byName[cell(row, cols["species"])]
		if !ok {
			continue
		}
		category := entities.RuleCategory(strings.ToUpper(cell(row, cols["category"])))
		switch category {
		case entities.RuleIrrigation, entities.RuleFertilization, entities.RuleMaintenance:
		default:
			log.Printf("[catalog] unknown rule category %q, skipping row", category)
			continue
		}
		interval, err := strconv.Atoi(cell(row, cols["intervaldays"]))
		if err != nil || interval < 1 {
			log.Printf("[catalog] rule %q has no valid interval, skipping row", cell(row, cols["description"]))
			continue
		}

		stageName := cell(row, cols["stage"])
		for i := range sp.Stages {
			if sp.Stages[i].Name != stageName {
				continue
			}
			sp.Stages[i].Rules = append(sp.Stages[i].Rules, entities.Rule{
				Category:     category,
				Description:  cell(row, cols["description"]),
				IntervalDays: &interval,
			})
		}
	}
	return nil
}

// sheetRows returns the data rows of a sheet plus a normalized-header to
// column-index map, tolerant of spacing and case in headers. Every header in
// required must be present so a malformed workbook errors instead of silently
// reading the wrong column.
func sheetRows(x *excelize.File, sheet string, required ...string) ([][]string, map[string]int, error) {
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[norm(h)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("sheet %s is missing header %q", sheet, name)
		}
	}
	return rows[1:], cols, nil
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
