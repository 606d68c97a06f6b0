package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/adapter/http/handler"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/app"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/config"
)

// main.go で使用する依存の差し替えポイントを集約したファイル

type containerFactory func(ctx context.Context) (*app.Container, error)

type routerFactory func(draftHandler *handler.DraftHandler, exportHandler *handler.ExportHandler) http.Handler

type serverFactory func(cfg *config.ServerConfig, h http.Handler) serverRunner

// serverRunner は *http.Server のうち run が使う部分。
type serverRunner interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type containerCloser func(container *app.Container) error

var (
	newContainer containerFactory = app.NewContainer
	newRouter    routerFactory    = func(draftHandler *handler.DraftHandler, exportHandler *handler.ExportHandler) http.Handler {
		return handler.NewRouter(draftHandler, exportHandler)
	}
	newServer serverFactory = func(cfg *config.ServerConfig, h http.Handler) serverRunner {
		return &http.Server{
			Addr:         cfg.Addr(),
			Handler:      h,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}
	}
	loadServerConfig = config.LoadServerConfigFromEnv
	closeContainer   containerCloser = func(container *app.Container) error {
		return container.Close()
	}
	runFunc = run
	fatalf  = log.Fatalf
)
