package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/uac/cafeteria-api/internal/api/handler/v1"
	"github.com/uac/cafeteria-api/internal/api/middleware"
	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/service"
)

type stubAccountService struct {
	account *domain.Account
	err     error

	creditedBy string
}

func (s *stubAccountService) Authenticate(accountID int, pin string) (*domain.Account, error) {
	return s.account, s.err
}

func (s *stubAccountService) BuyTicket(accountID int, meal domain.Meal, price decimal.Decimal) (domain.Transaction, error) {
	if s.err != nil {
		return domain.Transaction{}, s.err
	}
	return domain.Transaction{
		ID:     1,
		Kind:   domain.TransactionTicket,
		Amount: price.Neg(),
		Meal:   &meal,
	}, nil
}

func (s *stubAccountService) Credit(accountID int, amount decimal.Decimal, administrator string) (domain.Transaction, error) {
	if s.err != nil {
		return domain.Transaction{}, s.err
	}
	s.creditedBy = administrator
	return domain.Transaction{
		ID:            2,
		Kind:          domain.TransactionCredit,
		Amount:        amount,
		Administrator: administrator,
	}, nil
}

func (s *stubAccountService) ChangePin(accountID int, currentPin, newPin string) error {
	return s.err
}

func (s *stubAccountService) Unlock(accountID int) error {
	return s.err
}

type stubMealResolver struct {
	meal domain.Meal
	err  error

	day time.Time
}

func (s *stubMealResolver) Meal(day time.Time, t domain.MealTime, dish domain.DishType) (domain.Meal, error) {
	s.day = day
	return s.meal, s.err
}

type stubStudentFinder struct {
	student *domain.Student
}

func (s *stubStudentFinder) Get(studentID int) (*domain.Student, error) {
	return s.student, nil
}

func newAccountRouter(svc *stubAccountService, menus *stubMealResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := v1.NewAccountHandler(
		svc,
		menus,
		&stubStudentFinder{student: &domain.Student{ID: 20261234}},
		service.FlatPricer{Price: decimal.RequireFromString("2.40")},
	)

	r := gin.New()
	r.POST("/accounts/:accountID/authenticate", h.HandleAuthenticate)
	r.POST("/accounts/:accountID/tickets", h.HandleBuyTicket)
	r.POST("/accounts/:accountID/credits", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyAdminUsername, "admin")
		h.HandleCredit(ctx)
	})
	r.POST("/accounts/:accountID/unlock", h.HandleUnlock)
	r.PUT("/accounts/:accountID/pin", h.HandleChangePin)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandleAuthenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := domain.NewAccount(20261234, "1234")
		r := newAccountRouter(&stubAccountService{account: account}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/authenticate", gin.H{"pin": "1234"})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"balance":"0.00"`)
	})

	t.Run("WrongPin", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{err: service.ErrWrongPin}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/authenticate", gin.H{"pin": "0000"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("LockedAccount", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{err: service.ErrAccountLocked}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/authenticate", gin.H{"pin": "1234"})

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("MalformedPin", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/authenticate", gin.H{"pin": "12"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidAccountID", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPost, "/accounts/abc/authenticate", gin.H{"pin": "1234"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleBuyTicket(t *testing.T) {
	payload := gin.H{
		"pin":       "1234",
		"day":       "2026-09-14",
		"meal_time": "Lunch",
		"dish_type": "Meat",
	}

	t.Run("Success", func(t *testing.T) {
		account := domain.NewAccount(20261234, "1234")
		menus := &stubMealResolver{meal: domain.Meal{MainCourse: "Roast pork", Type: domain.Meat}}
		r := newAccountRouter(&stubAccountService{account: account}, menus)

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/tickets", payload)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"amount":"-2.40"`)
		assert.Contains(t, rr.Body.String(), "Roast pork")
		assert.Equal(t, time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC), menus.day)
	})

	t.Run("MalformedDay", func(t *testing.T) {
		account := domain.NewAccount(20261234, "1234")
		menus := &stubMealResolver{meal: domain.Meal{MainCourse: "Roast pork", Type: domain.Meat}}
		r := newAccountRouter(&stubAccountService{account: account}, menus)

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/tickets", gin.H{
			"pin":       "1234",
			"day":       "14/09/2026",
			"meal_time": "Lunch",
			"dish_type": "Meat",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.True(t, menus.day.IsZero())
	})

	t.Run("NoMenuPublished", func(t *testing.T) {
		account := domain.NewAccount(20261234, "1234")
		menus := &stubMealResolver{err: service.ErrMenuNotFound}
		r := newAccountRouter(&stubAccountService{account: account}, menus)

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/tickets", payload)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		// Authentication succeeds, the purchase itself fails.
		svc := &stubAccountService{account: domain.NewAccount(20261234, "1234")}
		menus := &stubMealResolver{meal: domain.Meal{MainCourse: "Roast pork"}}
		r := gin.New()
		h := v1.NewAccountHandler(
			&failingBuyService{stubAccountService: svc},
			menus,
			&stubStudentFinder{student: &domain.Student{ID: 20261234}},
			service.FlatPricer{Price: decimal.RequireFromString("2.40")},
		)
		r.POST("/accounts/:accountID/tickets", h.HandleBuyTicket)

		rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/tickets", payload)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

// failingBuyService authenticates fine but refuses the purchase.
type failingBuyService struct {
	*stubAccountService
}

func (s *failingBuyService) BuyTicket(accountID int, meal domain.Meal, price decimal.Decimal) (domain.Transaction, error) {
	return domain.Transaction{}, service.ErrInsufficientFunds
}

func TestHandleCredit(t *testing.T) {
	svc := &stubAccountService{}
	r := newAccountRouter(svc, &stubMealResolver{})

	rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/credits", gin.H{"amount": "5.00"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "admin", svc.creditedBy)
	assert.Contains(t, rr.Body.String(), `"administrator":"admin"`)
}

func TestHandleChangePin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPut, "/accounts/20261234/pin", gin.H{
			"current_pin": "1234",
			"new_pin":     "5678",
		})

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		r := newAccountRouter(&stubAccountService{err: service.ErrAccountNotFound}, &stubMealResolver{})

		rr := postJSON(t, r, http.MethodPut, "/accounts/20261234/pin", gin.H{
			"current_pin": "1234",
			"new_pin":     "5678",
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleUnlock(t *testing.T) {
	r := newAccountRouter(&stubAccountService{}, &stubMealResolver{})

	rr := postJSON(t, r, http.MethodPost, "/accounts/20261234/unlock", nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
