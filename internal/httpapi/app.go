// Package httpapi exposes the dealership back office as a JSON API for
// the dashboard UI.
package httpapi

import (
	"github.com/sbedoyat/carhub/internal/config"
	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/reserve"
	"github.com/sbedoyat/carhub/internal/store"
)

type App struct {
	Cfg    config.Config
	Store  *store.Store
	Engine *reserve.Engine
	Events *events.Publisher
}

func NewApp(cfg config.Config, st *store.Store, eng *reserve.Engine, pub *events.Publisher) *App {
	return &App{Cfg: cfg, Store: st, Engine: eng, Events: pub}
}
