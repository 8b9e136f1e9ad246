package account

import (
	"net/http"

	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := d.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})

		zap.L().Debug("User not found", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	var username string
	if user.Username != nil {
		username = *user.Username
	}

	token, err := d.Tokens.Issue(security.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: username,
	}, security.SessionTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func setAuthCookie(c *gin.Context, token string) {
	maxAge := int(security.SessionTokenTTL.Seconds())
	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", token, maxAge, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", sslEnabled, false)
}
