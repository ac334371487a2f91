package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cultivapp/pkg/notification/service"
)

type NotificationCtrl struct{ svc service.NotificationService }

func New(svc service.NotificationService) *NotificationCtrl { return &NotificationCtrl{svc} }

func (h *NotificationCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(uint)
	out, err := h.svc.ListByUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NotificationCtrl) MarkRead(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.MarkRead(uint(id)); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationCtrl) MarkAllRead(c echo.Context) error {
	uid, _ := c.Get("uid").(uint)
	if err := h.svc.MarkAllRead(uid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationCtrl) DeleteAll(c echo.Context) error {
	uid, _ := c.Get("uid").(uint)
	if err := h.svc.DeleteByUser(uid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
