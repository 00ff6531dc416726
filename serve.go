package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"factcheck/config"
	"factcheck/middleware"
	"factcheck/router"

	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}

		// 命令行参数覆盖端口配置
		if port != "" {
			// 自动添加冒号前缀
			if !strings.HasPrefix(port, ":") {
				port = ":" + port
			}
			cfg.Server.Port = port
			log.Printf("命令行指定端口: %s", port)
		}

		config.PrintConfig(cfg)

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		middleware.InitJWT(cfg)
		r := router.SetupRouter(cfg, router.Deps{DB: a.db, Service: a.service})

		srv := &http.Server{
			Addr:              cfg.Server.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("==========================================")
			log.Printf("  声明核查服务已启动")
			log.Printf("==========================================")
			log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
			log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
			log.Printf("==========================================")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("正在关闭服务...")
		// 等待进行中的核查请求完成
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Provider.Timeout()+5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "监听端口，如: 5001 或 :5001")
}
