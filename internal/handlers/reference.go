// internal/handlers/reference.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

// GET /categories
func GetCategories(c *gin.Context) {
	categories := make([]EnumResponse, 0, len(models.Categories()))
	for _, category := range models.Categories() {
		categories = append(categories, EnumResponse{
			Name:        string(category),
			Code:        category.Code(),
			DisplayName: category.DisplayName(),
		})
	}

	utils.SuccessResponse(c, categories)
}

// GET /order-statuses
func GetOrderStatuses(c *gin.Context) {
	statuses := make([]EnumResponse, 0, len(models.OrderStatuses()))
	for _, status := range models.OrderStatuses() {
		statuses = append(statuses, EnumResponse{
			Name:        string(status),
			Code:        status.Code(),
			DisplayName: status.DisplayName(),
		})
	}

	utils.SuccessResponse(c, statuses)
}
