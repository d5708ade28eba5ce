package handlers

import (
	"smartpantry/internal/config"
	"smartpantry/internal/lookup"
	"smartpantry/internal/repos"
	"smartpantry/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler   *AuthHandler
	PantryHandler *PantryHandler
	LookupHandler *LookupHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	itemRepo := repos.NewItemRepo(db)
	pantrySvc := services.NewPantryService(itemRepo)

	return &Deps{
		AuthHandler:   &AuthHandler{Auth: auth},
		PantryHandler: &PantryHandler{Pantry: pantrySvc},
		LookupHandler: &LookupHandler{Products: lookup.New(cfg.LookupURL)},
	}
}
