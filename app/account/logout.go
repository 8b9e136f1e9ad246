package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Logout is advisory only. The server holds no session state, so an
// issued token stays valid until its natural expiry. All this does is
// drop the cookies
func Logout(c *gin.Context) {
	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", "", -1, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "", -1, "/", "", sslEnabled, false)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
