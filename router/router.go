package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	authMW echo.MiddlewareFunc,
	adminMW echo.MiddlewareFunc,
	authCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
		WhoAmI(echo.Context) error
	},
	cropCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		ToggleStatus(echo.Context) error
		Delete(echo.Context) error
	},
	taskCtrl interface {
		ListByCrop(echo.Context) error
		Complete(echo.Context) error
	},
	speciesCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	ruleCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	notifCtrl interface {
		List(echo.Context) error
		MarkRead(echo.Context) error
		MarkAllRead(echo.Context) error
		Delete(echo.Context) error
		DeleteAll(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },

) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.POST("/auth/register", authCtrl.Register)
	e.POST("/auth/login", authCtrl.Login)

	api := e.Group("", authMW)
	api.GET("/whoami", authCtrl.WhoAmI)

	api.POST("/crops", cropCtrl.Create)
	api.GET("/crops", cropCtrl.List)
	api.GET("/crops/:id", cropCtrl.Get)
	api.PATCH("/crops/:id", cropCtrl.Update)
	api.POST("/crops/:id/status", cropCtrl.ToggleStatus)
	api.DELETE("/crops/:id", cropCtrl.Delete)

	api.GET("/crops/:id/tasks", taskCtrl.ListByCrop)
	api.POST("/tasks/:id/complete", taskCtrl.Complete)

	api.GET("/notifications", notifCtrl.List)
	api.POST("/notifications/:id/read", notifCtrl.MarkRead)
	api.POST("/notifications/read-all", notifCtrl.MarkAllRead)
	api.DELETE("/notifications/:id", notifCtrl.Delete)
	api.DELETE("/notifications", notifCtrl.DeleteAll)

	// catalog reads are open to any signed-in user
	api.GET("/species", speciesCtrl.List)
	api.GET("/species/:id", speciesCtrl.Get)
	api.GET("/rules", ruleCtrl.List)

	admin := e.Group("", authMW, adminMW)
	admin.POST("/species", speciesCtrl.Create)
	admin.PUT("/species/:id", speciesCtrl.Update)
	admin.DELETE("/species/:id", speciesCtrl.Delete)
	admin.POST("/rules", ruleCtrl.Create)
	admin.PUT("/rules/:id", ruleCtrl.Update)
	admin.DELETE("/rules/:id", ruleCtrl.Delete)

	return e
}
