package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/config"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
)

func main() {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runFunc(ctx); err != nil {
		fatalf("API起動失敗: %v", err)
	}
}

/**
 * 設定の読み込みからサーバーの停止までを行う。
 * ctx がキャンセルされると ShutdownTimeout の範囲で処理中のリクエストを待って終了する。
 */
func run(ctx context.Context) error {
	config.LoadDotEnv()

	cfg, err := loadServerConfig()
	if err != nil {
		return fmt.Errorf("設定読み込み失敗: %w", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Logger.Warn("LOG_LEVEL を解釈できません", zap.String("value", cfg.LogLevel), zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	container, err := newContainer(ctx)
	if err != nil {
		return fmt.Errorf("依存初期化失敗: %w", err)
	}
	defer func() {
		if err := closeContainer(container); err != nil {
			logger.Logger.Warn("依存の終了に失敗しました", zap.Error(err))
		}
	}()

	srv := newServer(cfg, newRouter(container.DraftHandler, container.ExportHandler))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Info("API サーバーを起動します", cfg.Fields()...)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバー起動失敗: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Logger.Info("API サーバーを停止します")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバー停止失敗: %w", err)
		}
		return nil
	})

	return g.Wait()
}
