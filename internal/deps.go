package internal

import (
	"bitwise74/account-api/internal/storage"
	"bitwise74/account-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenMaker
	Pictures storage.Store
}
