package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uac/cafeteria-api/internal/api/handler/v1/request"
	"github.com/uac/cafeteria-api/internal/api/handler/v1/response"
	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/service"
)

type MenuService interface {
	Create(day time.Time, t domain.MealTime, meat, fish, veggie, soup, dessert string) (*domain.Menu, error)
	Get(day time.Time, t domain.MealTime) (*domain.Menu, error)
	Delete(day time.Time, t domain.MealTime) error
}

type MenuHandler struct {
	svc MenuService
}

func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// HandleCreateMenu godoc
// @Summary      Publish a menu for one day and meal time (administrator)
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        request   body      request.CreateMenuRequest true "request body"
// @Success      201      {object}   response.Menu
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /menus [post]
func (h *MenuHandler) HandleCreateMenu(ctx *gin.Context) {
	var req request.CreateMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	menu, err := h.svc.Create(req.Date(), domain.MealTime(req.Time), req.Meat, req.Fish, req.Veggie, req.Soup, req.Dessert)
	if err != nil {
		h.renderMenuErr(ctx, "HandleCreateMenu", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewMenu(menu))
}

// HandleGetMenu godoc
// @Summary      Get the menu for a day and meal time
// @Tags         menus
// @Produce      json
// @Param        day   query       string true "day, formatted 2006-01-02"
// @Param        time  query       string true "meal time, Lunch or Dinner"
// @Success      200  {object}     response.Menu
// @Failure      400  {object}     response.Err
// @Failure      404  {object}     response.Err
// @Router       /menus [get]
func (h *MenuHandler) HandleGetMenu(ctx *gin.Context) {
	day, mealTime, ok := menuQuery(ctx)
	if !ok {
		return
	}

	menu, err := h.svc.Get(day, mealTime)
	if err != nil {
		h.renderMenuErr(ctx, "HandleGetMenu", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewMenu(menu))
}

// HandleDeleteMenu godoc
// @Summary      Withdraw a published menu (administrator)
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        day   query       string true "day, formatted 2006-01-02"
// @Param        time  query       string true "meal time, Lunch or Dinner"
// @Success      204  "no content"
// @Failure      400  {object}     response.Err
// @Failure      404  {object}     response.Err
// @Router       /menus [delete]
func (h *MenuHandler) HandleDeleteMenu(ctx *gin.Context) {
	day, mealTime, ok := menuQuery(ctx)
	if !ok {
		return
	}

	if err := h.svc.Delete(day, mealTime); err != nil {
		h.renderMenuErr(ctx, "HandleDeleteMenu", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *MenuHandler) renderMenuErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrMenuNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrMenuExists):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, domain.ErrMenuNoMainCourse), errors.Is(err, domain.ErrMenuMissingCourses):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func menuQuery(ctx *gin.Context) (time.Time, domain.MealTime, bool) {
	day, err := time.Parse("2006-01-02", ctx.Query("day"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid day, expected format 2006-01-02")))
		return time.Time{}, "", false
	}

	mealTime := domain.MealTime(ctx.Query("time"))
	if mealTime != domain.Lunch && mealTime != domain.Dinner {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid meal time, expected Lunch or Dinner")))
		return time.Time{}, "", false
	}

	return day, mealTime, true
}
