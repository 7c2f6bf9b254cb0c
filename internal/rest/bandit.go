package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"myGreenField/business/bandit"
	"myGreenField/domain"
	"myGreenField/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const defaultObservationLimit = 20

type (
	BanditHandler struct {
		validate      *validator.Validate
		banditService BanditService
	}

	BanditService interface {
		Summaries(ctx context.Context) ([]domain.ContextSummary, error)
		ContextSummary(ctx context.Context, context int) (domain.ContextSummary, error)
		RecentObservations(ctx context.Context, n int) ([]domain.Observation, error)
	}

	ObservationsQuery struct {
		N int `query:"n" validate:"gte=1,lte=1000"`
	}
)

func NewBanditHandler(svc BanditService) *BanditHandler {
	return &BanditHandler{
		validate:      validator.New(),
		banditService: svc,
	}
}

// GET /api/v1/estimates
func (h *BanditHandler) GetEstimates(c echo.Context) error {
	summaries, err := h.banditService.Summaries(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summaries))
}

// GET /api/v1/estimates/:context
func (h *BanditHandler) GetContextEstimates(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("context"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid context index"})
	}

	summary, err := h.banditService.ContextSummary(c.Request().Context(), idx)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

// GET /api/v1/observations?n=20
func (h *BanditHandler) RecentObservations(c echo.Context) error {
	q := ObservationsQuery{N: defaultObservationLimit}
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	obs, err := h.banditService.RecentObservations(c.Request().Context(), q.N)
	if err != nil {
		logger.Error("failed to read observations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(obs))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bandit.ErrContextNotFound), errors.Is(err, bandit.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, bandit.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
