package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SendResetMail delivers a password reset token to sendTo. Without a
// configured mail host the token is logged instead, standing in for a
// real delivery channel. Callers treat a failure here as fire-and-forget
func SendResetMail(token, sendTo string) error {
	host := viper.GetString("mail.host")
	if host == "" {
		zap.L().Info("Password reset token issued", zap.String("email", sendTo), zap.String("token", token))
		return nil
	}

	from := viper.GetString("mail.sender")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	var s string
	if viper.GetBool("host.ssl.enabled") {
		s = "s"
	}

	resetLink := fmt.Sprintf("http%v://%v/reset-password?token=%v",
		s, viper.GetString("host.domain"), token)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to reset your password.\n\nThis link will expire in 1 hour", resetLink))

	d := gomail.NewDialer(host, viper.GetInt("mail.port"), from, viper.GetString("mail.password"))

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}
