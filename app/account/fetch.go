package account

import (
	"net/http"
	"strconv"

	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fetch returns a single user by ID
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := d.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
