package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

func ListUsers(ctx *gin.Context) {
	users, err := dataStore.ListUsers()

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Server Error")
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	respondList(ctx, response, len(response), nil)
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	user, err := dataStore.FindUserByID(userID)

	if err != nil {
		respondStoreError(ctx, err, "User")
		return
	}

	respondData(ctx, http.StatusOK, userResponse(user))
}
