package service

import (
	"time"

	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type partialUser struct {
	ID                  uint
	ForgotPasswordToken *string
}

// ResetTokenCleanup periodically clears reset tokens that expired
// without being used, so the reset token column goes back to null even
// for abandoned requests
func ResetTokenCleanup(t time.Duration, db *gorm.DB, tm *security.TokenMaker) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Reset token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			var pending []partialUser

			err := db.
				Model(model.User{}).
				Where("forgot_password_token IS NOT NULL").
				Select("id", "forgot_password_token").
				Find(&pending).
				Error
			if err != nil {
				zap.L().Error("Failed to query db for pending reset tokens", zap.Error(err))
				continue
			}

			for _, u := range pending {
				if u.ForgotPasswordToken == nil {
					continue
				}

				if _, err := tm.Verify(*u.ForgotPasswordToken); err == nil {
					continue
				}

				err = db.
					Model(model.User{}).
					Where("id = ?", u.ID).
					Update("forgot_password_token", nil).
					Error
				if err != nil {
					zap.L().Error("Failed to clear expired reset token", zap.Error(err), zap.Uint("userID", u.ID))
				}
			}
		}
	}()
}
