package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cultivapp/entities"
	"cultivapp/pkg/rule/repository"
)

type RuleCtrl struct{ repo repository.RuleRepository }

func New(repo repository.RuleRepository) *RuleCtrl { return &RuleCtrl{repo} }

type ruleReq struct {
	Category     entities.RuleCategory `json:"category"`
	Description  string                `json:"description"`
	IntervalDays *int                  `json:"interval_days"`
}

// validate enforces the authoring contract: a known category and a positive
// interval. Rules without an interval would never expire and would regenerate
// on every pass, so they are rejected up front.
func (r ruleReq) validate() string {
	switch r.Category {
	case entities.RuleIrrigation, entities.RuleFertilization, entities.RuleMaintenance:
	default:
		return "category must be IRRIGATION, FERTILIZATION or MAINTENANCE"
	}
	if r.Description == "" {
		return "description is required"
	}
	if r.IntervalDays == nil || *r.IntervalDays < 1 {
		return "interval_days must be a positive number of days"
	}
	return ""
}

func (h *RuleCtrl) Create(c echo.Context) error {
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	rule := &entities.Rule{
		Category:     req.Category,
		Description:  req.Description,
		IntervalDays: req.IntervalDays,
	}
	if err := h.repo.Create(rule); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rule)
}

func (h *RuleCtrl) List(c echo.Context) error {
	category := entities.RuleCategory(c.QueryParam("category"))
	out, err := h.repo.FindAll(category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RuleCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	rule, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if rule == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "rule not found"})
	}
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	rule.Category = req.Category
	rule.Description = req.Description
	rule.IntervalDays = req.IntervalDays
	if err := h.repo.Save(rule); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rule)
}

func (h *RuleCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	rule, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if rule == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "rule not found"})
	}
	if err := h.repo.Delete(rule); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
