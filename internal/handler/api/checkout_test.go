//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/handler/api"
	resdto "unicart/internal/handler/dto/response"
	"unicart/internal/handler/middleware"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/commands"
	"unicart/tests/common/httptest"
	commandsmock "unicart/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	userID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.userID = uuid.New()
	h := api.NewCheckoutHandler(s.mockCommands)

	g := s.router.Group("/checkout", testAuth(s.userID))
	g.POST("/:domain", h.Open)
	g.GET("/:domain", h.Get)
	g.DELETE("/:domain", h.Abandon)
	g.PUT("/:domain/address", h.SetAddress)
	g.PUT("/:domain/payment-method", h.SetPaymentMethod)
	g.POST("/:domain/submit", h.Submit)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) view() *checkout.View {
	addr := uuid.New()
	return &checkout.View{
		ID:                  uuid.New(),
		UserID:              s.userID,
		DomainType:          cart.DomainMarket,
		SelectedAddressID:   &addr,
		DeliveryFeeEstimate: cart.MustMoney(499),
		Status:              checkout.StatusValidating,
		CreatedAt:           time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *CheckoutHandlerTestSuite) TestOpen() {
	s.Run("created session returns 201", func() {
		v := s.view()
		s.mockCommands.EXPECT().Open(gomock.Any(), s.userID, cart.DomainMarket).
			Return(&commands.OpenResult{Session: v, Created: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/market", nil, "bearer-token")

		var body resdto.OpenCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.False(body.RedirectToCart)
		s.Require().NotNil(body.Session)
		s.Equal(v.ID, body.Session.ID)
		s.Equal(int64(499), body.Session.DeliveryFeeEstimate)
		s.Equal(checkout.StatusValidating, body.Session.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/checkout/market"})
	})

	s.Run("existing session returns 200", func() {
		s.mockCommands.EXPECT().Open(gomock.Any(), s.userID, cart.DomainMarket).
			Return(&commands.OpenResult{Session: s.view()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/market", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("empty cart redirects", func() {
		s.mockCommands.EXPECT().Open(gomock.Any(), s.userID, cart.DomainGym).
			Return(&commands.OpenResult{RedirectToCart: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/gym", nil, "bearer-token")

		var body resdto.OpenCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.RedirectToCart)
		s.Nil(body.Session)
	})

	s.Run("delivery fee outage is 502", func() {
		err := errs.Mark(errs.New("timeout"), commands.ErrDeliveryFeeUnavailable)
		s.mockCommands.EXPECT().Open(gomock.Any(), s.userID, cart.DomainMarket).Return(nil, err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/market", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Delivery fee")
	})
}

func (s *CheckoutHandlerTestSuite) TestSelections() {
	addressID := uuid.New()
	paymentMethodID := uuid.New()

	s.Run("set address", func() {
		s.mockCommands.EXPECT().SetAddress(gomock.Any(), s.userID, cart.DomainMarket, addressID).Return(s.view(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/checkout/market/address",
			map[string]any{"addressId": addressID.String()}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("address outside the user's list is 422", func() {
		s.mockCommands.EXPECT().SetAddress(gomock.Any(), s.userID, cart.DomainMarket, addressID).
			Return(nil, account.ErrAddressNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/checkout/market/address",
			map[string]any{"addressId": addressID.String()}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Address not found")
	})

	s.Run("missing address id is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/checkout/market/address",
			map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("editing while submitting is 409", func() {
		s.mockCommands.EXPECT().SetPaymentMethod(gomock.Any(), s.userID, cart.DomainMarket, paymentMethodID).
			Return(nil, checkout.ErrSubmissionInProgress)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/checkout/market/payment-method",
			map[string]any{"paymentMethodId": paymentMethodID.String()}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *CheckoutHandlerTestSuite) TestSubmit() {
	s.Run("success returns receipt", func() {
		receipt := &checkout.OrderReceipt{
			OrderID:           uuid.New(),
			UserID:            s.userID,
			DomainType:        cart.DomainMarket,
			EstimatedDelivery: time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC),
			Total:             cart.MustMoney(7499),
			PlacedAt:          time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		}
		s.mockCommands.EXPECT().Submit(gomock.Any(), s.userID, cart.DomainMarket).Return(receipt, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/market/submit", nil, "bearer-token")

		var body resdto.OrderReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(receipt.OrderID, body.OrderID)
		s.Equal(int64(7499), body.Total)
	})

	cases := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{name: "no address", err: checkout.ErrAddressRequired, status: http.StatusUnprocessableEntity},
		{name: "no payment method", err: checkout.ErrPaymentMethodRequired, status: http.StatusUnprocessableEntity},
		{name: "in flight", err: checkout.ErrSubmissionInProgress, status: http.StatusConflict},
		{name: "no session", err: commands.ErrSessionNotFound, status: http.StatusNotFound},
		{name: "backend failure", err: errs.Mark(errs.New("connection reset"), commands.ErrSubmissionFailed), status: http.StatusBadGateway, retryable: true},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Submit(gomock.Any(), s.userID, cart.DomainMarket).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout/market/submit", nil, "bearer-token")
			resp := httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			s.Equal(tc.retryable, resp.Error.Retryable)
		})
	}
}

func (s *CheckoutHandlerTestSuite) TestGetAndAbandon() {
	s.Run("get without session is 404", func() {
		s.mockCommands.EXPECT().Get(gomock.Any(), s.userID, cart.DomainPharmacy).Return(nil, commands.ErrSessionNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/checkout/pharmacy", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Checkout session not found")
	})

	s.Run("abandon", func() {
		s.mockCommands.EXPECT().Abandon(gomock.Any(), s.userID, cart.DomainPharmacy).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/checkout/pharmacy", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}
