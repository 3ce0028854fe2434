package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookworm/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// POST /api/auth/register
func (s *Server) register(c *gin.Context) {
	const op = "httpapi.register"

	log := s.logger.With("op", op)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "wrong request format")

		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			newErrorResponse(c, http.StatusBadRequest, "please provide all fields")

			return
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			newErrorResponse(c, http.StatusBadRequest, "user already exists")

			return
		}

		log.Error(c.Request.Context(), "failed to create user", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "failed to create user")

		return
	}

	c.JSON(http.StatusCreated, user)
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	const op = "httpapi.login"

	log := s.logger.With("op", op)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "wrong request format")

		return
	}

	pair, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			newErrorResponse(c, http.StatusUnauthorized, "invalid credentials")

			return
		}

		log.Error(c.Request.Context(), "failed to login", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "failed to login")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         user,
	})
}

// POST /api/auth/refresh
func (s *Server) refreshTokens(c *gin.Context) {
	const op = "httpapi.refreshTokens"

	log := s.logger.With("op", op)

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		newErrorResponse(c, http.StatusBadRequest, "wrong request format")

		return
	}

	pair, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			newErrorResponse(c, http.StatusUnauthorized, "invalid refresh token")

			return
		}

		log.Error(c.Request.Context(), "failed to refresh tokens", "error", err.Error())

		newErrorResponse(c, http.StatusInternalServerError, "failed to refresh tokens")

		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
