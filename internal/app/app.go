package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	graphqlapi "github.com/shestoi/storefront/internal/api/graphql"
	"github.com/shestoi/storefront/internal/client/odoo"
	"github.com/shestoi/storefront/internal/config"
	"github.com/shestoi/storefront/internal/logging"
	mongorepo "github.com/shestoi/storefront/internal/repository/mongo"
	"github.com/shestoi/storefront/internal/service"
	"github.com/shestoi/storefront/internal/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown Storefront Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *shutdown.Manager
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Storefront Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	// Создаём logger
	logger, err := logging.New(logging.Config{
		ServiceName: "storefront",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Storefront service", zap.String("http_addr", cfg.HTTPAddr))

	// Подключаемся к MongoDB
	logger.Info("Connecting to MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Проверяем подключение к MongoDB
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("MongoDB connection established")

	// Создаём MongoDB репозитории
	accountRepo := mongorepo.NewAccountRepository(client, cfg.MongoDBName)
	productRepo := mongorepo.NewProductRepository(client, cfg.MongoDBName)

	// Создаём Odoo клиент - один на весь процесс,
	// передаётся как зависимость и не пересоздаётся на запрос
	odooClient, err := odoo.New(logger, cfg.Odoo)
	if err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	// Создаём service слой
	partnerService := service.NewPartnerService(logger, odooClient)
	accountService := service.NewAccountService(logger, accountRepo, partnerService, odooClient)
	productService := service.NewProductService(logger, productRepo, accountRepo)

	// Собираем GraphQL схему
	schema, err := graphqlapi.NewSchema(accountService, productService)
	if err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	// Readiness: сервис готов, пока MongoDB отвечает на ping
	readiness := func() bool {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		return client.Ping(pingCtx, nil) == nil
	}

	router := graphqlapi.NewRouter(logger, schema, readiness, cfg.EnableGraphiQL)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	logger.Info("Storefront HTTP server configured", zap.String("addr", cfg.HTTPAddr))

	// Создаём shutdown manager
	shutdownMgr := shutdown.New(cfg.ShutdownTimeout, logger)

	// Функции выполняются в обратном порядке регистрации:
	// сначала останавливаем HTTP сервер, затем отключаемся от MongoDB
	shutdownMgr.Add("mongodb", shutdown.DisconnectMongo(client))
	shutdownMgr.Add("http_server", shutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer logging.Sync(a.logger)

	a.logger.Info("Starting Storefront service", zap.String("addr", a.httpServer.Addr))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Storefront service stopped")
	return nil
}
