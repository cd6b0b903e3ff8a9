// internal/handlers/params.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

const dateLayout = "2006-01-02"

// The parse helpers write a 400 response themselves and report false on failure.

func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidID, what), nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(c *gin.Context, value string) (time.Time, bool) {
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidDate, value), nil)
		return time.Time{}, false
	}
	return day.UTC(), true
}

func parseDecimal(c *gin.Context, value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidDecimal, value), nil)
		return decimal.Zero, false
	}
	return d, true
}

// parseDecimalRange reads the min and max query parameters.
func parseDecimalRange(c *gin.Context) (decimal.Decimal, decimal.Decimal, bool) {
	min, ok := parseDecimal(c, c.Query("min"))
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	max, ok := parseDecimal(c, c.Query("max"))
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	return min, max, true
}

// parseDateRange reads the from and to query parameters.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, ok := parseDate(c, c.Query("from"))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseDate(c, c.Query("to"))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseCategory(c *gin.Context, value string) (models.Category, bool) {
	category, err := models.ParseCategory(value)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductInvalidCategory), nil)
		return "", false
	}
	return category, true
}

func parseOrderStatus(c *gin.Context, value string) (models.OrderStatus, bool) {
	status, err := models.ParseOrderStatus(value)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderInvalidStatus), nil)
		return "", false
	}
	return status, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
