package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/services"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// RegisterUser handles POST requests to create a new account
func (c *UserController) RegisterUser(ctx *gin.Context) {
	var req dtos.RegisterUserDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	user, err := c.service.RegisterUser(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "User created successfully", gin.H{
		"username": user.Username,
		"name":     user.Name,
		"address":  user.Address,
	})
}

// Login handles POST requests to authenticate and issue a JWT
func (c *UserController) Login(ctx *gin.Context) {
	var req dtos.LoginUserDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	token, err := c.service.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "Login success.", gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Info handles GET requests for the authenticated caller's profile
func (c *UserController) Info(ctx *gin.Context) {
	user, err := c.service.GetUserByID(currentUserID(ctx))
	if err != nil {
		// A valid token pointing at a missing account is a 404, unlike the
		// uniform 400 the rest of the API uses for lookup misses.
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"resp_msg": err.Error(), "resp_data": nil})
			return
		}
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "Success", gin.H{
		"username":   user.Username,
		"name":       user.Name,
		"address":    user.Address,
		"role":       user.Role,
		"created_at": user.CreatedAt.Format("2006-01-02"),
	})
}

// Summary handles GET requests for the caller's borrowing activity counters
func (c *UserController) Summary(ctx *gin.Context) {
	summary, err := c.service.GetUserSummary(currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "Success", summary)
}

// CheckToken confirms the bearer token is still valid; AuthMiddleware has
// already rejected the call otherwise.
func (c *UserController) CheckToken(ctx *gin.Context) {
	respondOK(ctx, "Valid", gin.H{"is_valid": true})
}

// CheckAdmin reports whether the caller holds the admin role
func (c *UserController) CheckAdmin(ctx *gin.Context) {
	isAdmin, err := c.service.IsAdmin(currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !isAdmin {
		respondOK(ctx, "The user is not an administrator.", gin.H{"is_admin": false})
		return
	}
	respondOK(ctx, "Valid", gin.H{"is_admin": true})
}
