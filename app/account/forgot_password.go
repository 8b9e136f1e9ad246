package account

import (
	"net/http"

	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/internal/service"
	"bitwise74/account-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// ForgotPassword mints a short-lived reset token, persists it on the
// user row and hands it to the delivery channel. A delivery failure is
// logged but never fails the operation
func ForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	if err := d.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
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

	token, err := d.Tokens.Issue(security.Claims{
		UserID: user.ID,
		Email:  user.Email,
	}, security.ResetTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Overwrites any previous token, which invalidates it through the
	// stored-equality check in ResetPassword
	err = d.DB.Model(&user).Update("forgot_password_token", token).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := service.SendResetMail(token, user.Email); err != nil {
		zap.L().Error("Failed to send reset mail", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
