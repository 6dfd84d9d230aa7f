package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/uac/cafeteria-api/internal/api/handler/v1/request"
	"github.com/uac/cafeteria-api/internal/api/handler/v1/response"
	"github.com/uac/cafeteria-api/internal/api/middleware"
	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/service"
)

type AccountService interface {
	Authenticate(accountID int, pin string) (*domain.Account, error)
	BuyTicket(accountID int, meal domain.Meal, price decimal.Decimal) (domain.Transaction, error)
	Credit(accountID int, amount decimal.Decimal, administrator string) (domain.Transaction, error)
	ChangePin(accountID int, currentPin, newPin string) error
	Unlock(accountID int) error
}

type MealResolver interface {
	Meal(day time.Time, t domain.MealTime, dish domain.DishType) (domain.Meal, error)
}

type StudentFinder interface {
	Get(studentID int) (*domain.Student, error)
}

type AccountHandler struct {
	svc      AccountService
	menus    MealResolver
	students StudentFinder
	pricer   service.Pricer
}

func NewAccountHandler(svc AccountService, menus MealResolver, students StudentFinder, pricer service.Pricer) *AccountHandler {
	return &AccountHandler{
		svc:      svc,
		menus:    menus,
		students: students,
		pricer:   pricer,
	}
}

// HandleAuthenticate godoc
// @Summary      Authenticate against an account with its PIN
// @Tags         accounts
// @Produce      json
// @Param        accountID path      int true "account ID"
// @Param        request   body      request.AuthenticateRequest true "request body"
// @Success      200      {object}   response.Account
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /accounts/{accountID}/authenticate [post]
func (h *AccountHandler) HandleAuthenticate(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "accountID")
	if !ok {
		return
	}

	var req request.AuthenticateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	account, err := h.svc.Authenticate(accountID, req.Pin)
	if err != nil {
		h.renderAccountErr(ctx, "HandleAuthenticate", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewAccount(account, true))
}

// HandleBuyTicket godoc
// @Summary      Buy a meal ticket from the account balance
// @Tags         accounts
// @Produce      json
// @Param        accountID path      int true "account ID"
// @Param        request   body      request.BuyTicketRequest true "request body"
// @Success      201      {object}   response.Transaction
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /accounts/{accountID}/tickets [post]
func (h *AccountHandler) HandleBuyTicket(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "accountID")
	if !ok {
		return
	}

	var req request.BuyTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err := h.svc.Authenticate(accountID, req.Pin); err != nil {
		h.renderAccountErr(ctx, "HandleBuyTicket", err)
		return
	}

	meal, err := h.menus.Meal(req.Date(), domain.MealTime(req.MealTime), domain.DishType(req.DishType))
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) || errors.Is(err, domain.ErrMealNotServed) {
			response.RenderErr(ctx, response.ErrNotFound(err))
			return
		}
		err = fmt.Errorf("v1.HandleBuyTicket -> h.menus.Meal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	student, err := h.students.Get(accountID)
	if err != nil {
		err = fmt.Errorf("v1.HandleBuyTicket -> h.students.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	price := h.pricer.PriceOf(meal, student)
	t, err := h.svc.BuyTicket(accountID, meal, price)
	if err != nil {
		h.renderAccountErr(ctx, "HandleBuyTicket", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewTransaction(t))
}

// HandleCredit godoc
// @Summary      Top up an account balance (administrator)
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Param        accountID path      int true "account ID"
// @Param        request   body      request.CreditRequest true "request body"
// @Success      201      {object}   response.Transaction
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /accounts/{accountID}/credits [post]
func (h *AccountHandler) HandleCredit(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "accountID")
	if !ok {
		return
	}

	var req request.CreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	administrator := ctx.GetString(middleware.ContextKeyAdminUsername)
	t, err := h.svc.Credit(accountID, req.DecimalAmount(), administrator)
	if err != nil {
		h.renderAccountErr(ctx, "HandleCredit", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.NewTransaction(t))
}

// HandleChangePin godoc
// @Summary      Change the account PIN
// @Tags         accounts
// @Produce      json
// @Param        accountID path      int true "account ID"
// @Param        request   body      request.ChangePinRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /accounts/{accountID}/pin [put]
func (h *AccountHandler) HandleChangePin(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "accountID")
	if !ok {
		return
	}

	var req request.ChangePinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ChangePin(accountID, req.CurrentPin, req.NewPin); err != nil {
		h.renderAccountErr(ctx, "HandleChangePin", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUnlock godoc
// @Summary      Unlock a locked account (administrator)
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Param        accountID path      int true "account ID"
// @Success      204      "no content"
// @Failure      404      {object}   response.Err
// @Router       /accounts/{accountID}/unlock [post]
func (h *AccountHandler) HandleUnlock(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "accountID")
	if !ok {
		return
	}

	if err := h.svc.Unlock(accountID); err != nil {
		h.renderAccountErr(ctx, "HandleUnlock", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AccountHandler) renderAccountErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrAccountLocked):
		response.RenderErr(ctx, response.ErrForbidden(err))
	case errors.Is(err, service.ErrWrongPin):
		response.RenderErr(ctx, response.ErrUnauthorized(err))
	case errors.Is(err, service.ErrInsufficientFunds):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, domain.ErrInvalidAmount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func pathID(ctx *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v", name)))
		return 0, false
	}
	return id, true
}
