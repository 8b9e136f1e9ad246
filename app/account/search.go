package account

import (
	"net/http"

	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Search matches users whose name, username or email contains the q
// query parameter
func Search(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No search query provided",
			"requestID": requestID,
		})
		return
	}

	pattern := "%" + q + "%"

	var users []model.User

	err := d.DB.
		Where("name LIKE ? OR username LIKE ? OR email LIKE ?", pattern, pattern, pattern).
		Find(&users).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to search users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}
