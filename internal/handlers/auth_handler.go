package handlers

import (
	"net/http"
	"strings"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/middleware"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bootstrapHeader = "X-Bootstrap-Token"

type AuthHandler struct {
	auth AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func toAuthResponse(res *service.LoginResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     res.Token,
		TokenType: "bearer",
		ExpiresAt: res.ExpiresAt,
		Email:     res.User.Email,
		User:      res.User,
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} models.User
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 409 {object} dto.ConflictErrorResponse "Пользователь уже существует"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(res))
}

// AdminLogin godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	res, err := h.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(res))
}

// CreateAdmin godoc
// @Summary Создание администратора
// @Description Требует токен администратора. Первый администратор создаётся по заголовку X-Bootstrap-Token.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body dto.RegisterRequest true "Данные администратора"
// @Success 201 {object} models.User
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/auth/create-admin [post]
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	u, err := h.auth.CreateAdmin(c.Request.Context(), service.RegisterInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	}, c.GetHeader(bootstrapHeader))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param token query string false "Токен (если не передан заголовок Authorization)"
// @Success 200 {object} models.User
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		token, _ = middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	}
	u, err := h.auth.Me(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RequestOTP godoc
// @Summary Запрос кода для входа по телефону
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PhoneOTPRequest true "Телефон"
// @Success 200 {object} dto.PhoneOTPResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 429 {object} dto.RateLimitedErrorResponse
// @Router /api/phone-login/request-otp [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.PhoneOTPRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	ch, err := h.auth.RequestPhoneOTP(c.Request.Context(), req.Phone)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhoneOTPResponse{Phone: ch.Phone, ExpiresAt: ch.ExpiresAt, DebugCode: ch.DebugCode})
}

// PhoneLogin godoc
// @Summary Вход по телефону и одноразовому коду
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PhoneLoginRequest true "Телефон и код"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/phone-login [post]
func (h *AuthHandler) PhoneLogin(c *gin.Context) {
	var req dto.PhoneLoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	res, err := h.auth.PhoneLogin(c.Request.Context(), req.Name, req.Phone, req.Code)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(res))
}
