package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cultivapp/entities"
	"cultivapp/pkg/crop/service"
)

type CropCtrl struct{ svc service.CropService }

func New(svc service.CropService) *CropCtrl { return &CropCtrl{svc} }

type createReq struct {
	SpeciesID    uint    `json:"species_id"`
	Name         string  `json:"name"`
	AreaHectares float64 `json:"area_hectares"`
	PlantedAt    string  `json:"planted_at"` // YYYY-MM-DD, defaults to today
}

func (h *CropCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(uint)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name == "" || req.SpeciesID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and species_id are required"})
	}
	var plantedAt *time.Time
	if req.PlantedAt != "" {
		d, err := time.Parse("2006-01-02", req.PlantedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad planted_at, want YYYY-MM-DD"})
		}
		plantedAt = &d
	}
	crop, err := h.svc.Create(uid, req.SpeciesID, req.Name, req.AreaHectares, plantedAt)
	if err != nil {
		if errors.Is(err, service.ErrSpeciesNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *CropCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(uint)
	crops, err := h.svc.ListByUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, crops)
}

func (h *CropCtrl) Get(c echo.Context) error {
	crop, err := h.owned(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

type updateReq struct {
	Name         *string  `json:"name"`
	AreaHectares *float64 `json:"area_hectares"`
	YieldKg      *float64 `json:"yield_kg"`
}

func (h *CropCtrl) Update(c echo.Context) error {
	crop, err := h.owned(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Update(crop.ID, service.CropPatch{
		Name:         req.Name,
		AreaHectares: req.AreaHectares,
		YieldKg:      req.YieldKg,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) ToggleStatus(c echo.Context) error {
	crop, err := h.owned(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.svc.ToggleStatus(crop.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	crop, err := h.owned(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.svc.Delete(crop.ID); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// owned loads the crop from the :id param and hides other users' crops
// behind a not-found.
func (h *CropCtrl) owned(c echo.Context) (*entities.Crop, error) {
	id, _ := strconv.Atoi(c.Param("id"))
	crop, err := h.svc.Get(uint(id))
	if err != nil {
		return nil, err
	}
	uid, _ := c.Get("uid").(uint)
	role, _ := c.Get("role").(string)
	if crop.UserID != uid && role != string(entities.RoleAdmin) {
		return nil, service.ErrCropNotFound
	}
	return crop, nil
}

func (h *CropCtrl) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCropNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrArchived):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
