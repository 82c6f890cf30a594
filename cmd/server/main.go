package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/user/watchbox/internal/config"
	"github.com/user/watchbox/internal/handler"
	"github.com/user/watchbox/internal/metrics"
	"github.com/user/watchbox/internal/middleware"
	"github.com/user/watchbox/internal/repository"
	"github.com/user/watchbox/internal/router"
	"github.com/user/watchbox/internal/service"
	"github.com/user/watchbox/internal/store"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置，后端参数缺失直接退出
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.BackendURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 指标
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	catalog := service.NewCatalogService(cfg.CatalogBaseURL, cfg.CatalogTimeout, cfg.CatalogCacheTTL, collector)

	// 进程级 store
	auth := store.NewAuthStore(
		store.NewStorage(cfg.SessionFile),
		store.NewTokenCodec(cfg.BackendAPIKey),
		store.WithSessionTTL(cfg.SessionTTL),
	)
	defer auth.Close()
	watchlist := store.NewWatchlistStore(repos.Watchlist, collector)
	filters := store.NewFilterStore(time.Now().Year())

	h := handler.NewHandler(catalog, repos.User, auth, watchlist, filters)

	// 恢复上次的会话，之后任何方式结束会话都清空待看清单
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), cfg.CatalogTimeout)
	h.RestoreSession(restoreCtx)
	cancelRestore()
	unsubscribe := h.ClearWatchlistOnLogout()
	defer unsubscribe()

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		log.Fatalf("注册校验器失败: %v", err)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	defer limiter.Stop()

	// 注册路由
	router.RegisterRoutes(r, h, router.Deps{
		Session:     auth,
		AuthLimiter: limiter,
		Metrics:     collector.Handler(),
	})

	// 配置 HTTP 服务器
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("服务器强制关闭: %v", err)
	}

	log.Println("服务器已退出")
}
