package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cultivapp/entities"
	cropservice "cultivapp/pkg/crop/service"
	"cultivapp/pkg/task/service"
)

type cropGetter interface {
	Get(id uint) (*entities.Crop, error)
}

type TaskCtrl struct {
	svc   service.TaskService
	crops cropGetter
}

func New(svc service.TaskService, crops cropGetter) *TaskCtrl {
	return &TaskCtrl{svc: svc, crops: crops}
}

func (h *TaskCtrl) ListByCrop(c echo.Context) error {
	cid, _ := strconv.Atoi(c.Param("id"))
	if err := h.owned(c, uint(cid)); err != nil {
		return h.fail(c, err)
	}
	tasks, err := h.svc.ListByCrop(uint(cid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskCtrl) Complete(c echo.Context) error {
	tid, _ := strconv.Atoi(c.Param("id"))
	task, err := h.svc.Get(uint(tid))
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.owned(c, task.CropID); err != nil {
		// the task exists but belongs to someone else's crop: same 404
		return h.fail(c, service.ErrTaskNotFound)
	}
	task, err = h.svc.Complete(uint(tid))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// owned rejects crops the caller does not own, unless the caller is an
// admin. Mirrors the crop controller's guard.
func (h *TaskCtrl) owned(c echo.Context, cropID uint) error {
	crop, err := h.crops.Get(cropID)
	if err != nil {
		return err
	}
	uid, _ := c.Get("uid").(uint)
	role, _ := c.Get("role").(string)
	if crop.UserID != uid && role != string(entities.RoleAdmin) {
		return cropservice.ErrCropNotFound
	}
	return nil
}

func (h *TaskCtrl) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, cropservice.ErrCropNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
