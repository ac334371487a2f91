package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cultivapp/entities"
	croprepo "cultivapp/pkg/crop/repository"
	rulerepo "cultivapp/pkg/rule/repository"
	"cultivapp/pkg/species/repository"
)

// SpeciesCtrl manages the admin catalog: species with their ordered stages
// and each stage's rule set.
type SpeciesCtrl struct {
	species repository.SpeciesRepository
	rules   rulerepo.RuleRepository
	crops   croprepo.CropRepository
}

func New(species repository.SpeciesRepository, rules rulerepo.RuleRepository, crops croprepo.CropRepository) *SpeciesCtrl {
	return &SpeciesCtrl{species: species, rules: rules, crops: crops}
}

type stageReq struct {
	Name         string `json:"name"`
	StageOrder   int    `json:"stage_order"`
	DurationDays *int   `json:"duration_days"`
	RuleIDs      []uint `json:"rule_ids"`
}

type speciesReq struct {
	Name           string     `json:"name"`
	ScientificName string     `json:"scientific_name"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	Active         *bool      `json:"active"`
	Stages         []stageReq `json:"stages"`
}

func (h *SpeciesCtrl) Create(c echo.Context) error {
	var req speciesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	stages, err := h.buildStages(req.Stages)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sp := &entities.Species{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Active:         active,
		Stages:         stages,
	}
	if err := h.species.Create(sp); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, sp)
}

func (h *SpeciesCtrl) List(c echo.Context) error {
	out, err := h.species.FindAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SpeciesCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	sp, err := h.species.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if sp == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "species not found"})
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpeciesCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	sp, err := h.species.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if sp == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "species not found"})
	}

	var req speciesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name != "" {
		sp.Name = req.Name
	}
	sp.ScientificName = req.ScientificName
	sp.Description = req.Description
	sp.ImageURL = req.ImageURL
	if req.Active != nil {
		sp.Active = *req.Active
	}
	if req.Stages != nil {
		stages, err := h.buildStages(req.Stages)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		for i := range stages {
			stages[i].SpeciesID = sp.ID
		}
		sp.Stages = stages
	}
	if err := h.species.Save(sp); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpeciesCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	sp, err := h.species.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if sp == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "species not found"})
	}
	// species referenced by crops stays in the catalog
	inUse, err := h.crops.ExistsBySpecies(sp.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if inUse {
		return c.JSON(http.StatusConflict, map[string]string{"error": "species has crops and cannot be deleted"})
	}
	if err := h.species.Delete(sp); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// buildStages validates stage orders and resolves rule ids to stored rules.
func (h *SpeciesCtrl) buildStages(reqs []stageReq) ([]entities.Stage, error) {
	seen := map[int]bool{}
	var stages []entities.Stage
	for _, sr := range reqs {
		if sr.StageOrder < 1 {
			return nil, fmt.Errorf("stage %q: stage_order must be >= 1", sr.Name)
		}
		if seen[sr.StageOrder] {
			return nil, fmt.Errorf("duplicate stage_order %d", sr.StageOrder)
		}
		seen[sr.StageOrder] = true

		var rules []entities.Rule
		for _, rid := range sr.RuleIDs {
			rule, err := h.rules.FindByID(rid)
			if err != nil {
				return nil, err
			}
			if rule == nil {
				return nil, fmt.Errorf("rule %d not found", rid)
			}
			rules = append(rules, *rule)
		}
		stages = append(stages, entities.Stage{
			Name:         sr.Name,
			StageOrder:   sr.StageOrder,
			DurationDays: sr.DurationDays,
			Rules:        rules,
		})
	}
	return stages, nil
}
