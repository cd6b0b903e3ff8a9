// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/services"
	"github.com/pixelarium/backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(user))
}

// GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(toUserResponses(users), total, params))
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toUserResponse(user))
}

// GET /users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toUserResponse(user))
}

// GET /users/username/:userName
func (h *UserHandler) GetUserByUserName(c *gin.Context) {
	user, err := h.userService.GetUserByUserName(c.Request.Context(), c.Param("userName"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toUserResponse(user))
}

// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toUserResponse(user))
}

// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GET /users/registered/on/:date
func (h *UserHandler) GetUsersRegisteredOn(c *gin.Context) {
	day, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	users, err := h.userService.FindUsersRegisteredOn(c.Request.Context(), day)
	h.respondUsers(c, users, err)
}

// GET /users/registered/after/:date
func (h *UserHandler) GetUsersRegisteredAfter(c *gin.Context) {
	day, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	users, err := h.userService.FindUsersRegisteredAfter(c.Request.Context(), day)
	h.respondUsers(c, users, err)
}

// GET /users/registered/before/:date
func (h *UserHandler) GetUsersRegisteredBefore(c *gin.Context) {
	day, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	users, err := h.userService.FindUsersRegisteredBefore(c.Request.Context(), day)
	h.respondUsers(c, users, err)
}

// GET /users/registered/between?from=&to=
func (h *UserHandler) GetUsersRegisteredBetween(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	users, err := h.userService.FindUsersRegisteredBetween(c.Request.Context(), from, to)
	h.respondUsers(c, users, err)
}

func (h *UserHandler) respondUsers(c *gin.Context, users []models.User, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, toUserResponses(users))
}
