package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

// sendTokenResponse issues the credential, sets the token cookie, and
// returns it in the body as well for header-based clients.
func sendTokenResponse(ctx *gin.Context, status int, user *models.User) {
	token, err := auth.GenerateJWT(user.ID, user.Role)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Error generating authentication token")
		return
	}

	maxAge := config.AppConfig.JWTExpireDays * 24 * 60 * 60
	secure := config.AppConfig.Environment == "production"
	ctx.SetCookie("token", token, maxAge, "/", config.AppConfig.CookieDomain, secure, true)

	ctx.JSON(status, types.Response{
		Success: true,
		Token:   token,
		User:    userResponse(user),
	})
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleTeamMember
	}
	if !role.Valid() {
		respondError(ctx, http.StatusBadRequest, "Role must be admin or team-member")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	if err := dataStore.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(ctx, http.StatusConflict, "User already exists")
			return
		}
		log.Printf("Failed to create user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	sendTokenResponse(ctx, http.StatusCreated, user)
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := dataStore.FindUserByEmail(req.Email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sendTokenResponse(ctx, http.StatusOK, user)
}

func Logout(ctx *gin.Context) {
	secure := config.AppConfig.Environment == "production"
	ctx.SetCookie("token", "", -1, "/", config.AppConfig.CookieDomain, secure, true)

	ctx.JSON(http.StatusOK, types.Response{Success: true, Message: "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := dataStore.FindUserByID(currentUser.ID)

	if err != nil {
		respondStoreError(ctx, err, "User")
		return
	}

	respondData(ctx, http.StatusOK, userResponse(user))
}
