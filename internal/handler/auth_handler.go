package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"jobify/internal/errors"
	"jobify/internal/metrics"
	"jobify/internal/model"
	"jobify/internal/service"
)

// SignupSuccessMessage is returned on a successful sign-up. No token is issued.
const SignupSuccessMessage = "Signup successful! Please sign in."

const signinFailedMessage = "User signin failed"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, m *metrics.Metrics, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m, log: log}
}

// SigninRequest represents a sign-in request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// SigninResponse carries the issued bearer token.
type SigninResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup godoc
// @Summary Register a new account
// @Description Any fields besides email, password and role are stored as the account profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Account fields: email, password, role, plus profile fields"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		h.metrics.Signup("invalid_request")
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	acct := model.NewAccountFromPayload(payload)
	if err := h.authService.Register(c.Request().Context(), acct); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		h.metrics.Signup("failure")
		h.logger(c).WithFields(logrus.Fields{
			"email": acct.Email,
			"role":  acct.Role,
			"code":  httpErr.Code,
		}).WithError(err).Warn("signup failed")
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.metrics.Signup("success")
	h.logger(c).WithFields(logrus.Fields{
		"email": acct.Email,
		"role":  acct.Role,
	}).Info("account registered")
	return c.JSON(http.StatusOK, MessageResponse{Message: SignupSuccessMessage})
}

// Signin godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Sign-in credentials"
// @Success 200 {object} SigninResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.Signin("invalid_request")
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		h.metrics.Signin("invalid_request")
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "email, password and role are required",
			Code:  "INVALID_REQUEST",
		})
	}

	role := model.Role(req.Role)
	token, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			httpErr.Message = signinFailedMessage
			httpErr.Code = "SIGNIN_FAILED"
			h.metrics.Signin("error")
			h.logger(c).WithField("role", role).WithError(err).Error("signin failed")
		} else {
			h.metrics.Signin("rejected")
			h.logger(c).WithFields(logrus.Fields{
				"role": role,
				"code": httpErr.Code,
			}).Info("signin rejected")
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.metrics.Signin("success")
	return c.JSON(http.StatusOK, SigninResponse{Token: token})
}

func (h *AuthHandler) logger(c echo.Context) logrus.FieldLogger {
	return requestLogger(h.log, c)
}
