package account

import (
	"net/http"
	"strconv"

	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns users newest first, paginated with the page and limit
// query parameters
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	var users []model.User

	err = d.DB.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}
