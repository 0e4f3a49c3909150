package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"jobify/internal/auth"
	"jobify/internal/errors"
	"jobify/internal/repository"
	"jobify/internal/service"
)

// ProfileHandler serves the authenticated caller's own account.
type ProfileHandler struct {
	accountService service.AccountService
	log            logrus.FieldLogger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(accountService service.AccountService, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{accountService: accountService, log: log}
}

// Me godoc
// @Summary Get the signed-in account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /employer/me [get]
// @Router /jobseeker/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	subject, ok := auth.SubjectFromContext(c.Request().Context())
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrMissingToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		if stderrors.Is(err, repository.ErrAccountNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: "account not found",
				Code:  "NOT_FOUND",
			})
		}
		requestLogger(h.log, c).WithError(err).Error("profile lookup failed")
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, account)
}

// requestLogger scopes log to the current request ID.
func requestLogger(log logrus.FieldLogger, c echo.Context) logrus.FieldLogger {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}
