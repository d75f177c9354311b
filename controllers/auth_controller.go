package controllers

import (
	"errors"
	"net/http"

	"homigo-backend/middleware"
	"homigo-backend/services"
	"homigo-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc   *services.AuthService
	JWTSecret []byte
}

func NewAuthController(svc *services.AuthService, jwtSecret []byte) *AuthController {
	return &AuthController{AuthSvc: svc, JWTSecret: jwtSecret}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := ctrl.AuthSvc.Register(payload.Name, payload.Email, payload.Password, payload.Role)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.JSONError(c, http.StatusConflict, "Email already registered")
			return
		}
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(ctrl.JWTSecret, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := ctrl.AuthSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(ctrl.JWTSecret, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	user, err := ctrl.AuthSvc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
