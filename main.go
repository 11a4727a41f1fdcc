// main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/housing_macro/ETL/config"
	"github.com/LilVoxy/housing_macro/ETL/utils"
	"github.com/LilVoxy/housing_macro/database"
	"github.com/LilVoxy/housing_macro/routes"
	"github.com/LilVoxy/housing_macro/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := utils.NewETLLogger(cfg.EnableDetailedLogging, cfg.Paths.LogPath())
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Источник таблицы: OLAP, если выгрузка включена, иначе файл
	var source database.Source = database.NewFileSource(cfg.Paths.EnrichedPath())
	var olapDB *sql.DB
	if cfg.OLAP.Enabled {
		olapDB, err = config.ConnectOLAP(cfg.OLAP)
		if err != nil {
			logger.Error("Ошибка подключения к OLAP: %v", err)
			os.Exit(1)
		}
		defer olapDB.Close()
		source = database.NewOLAPSource(olapDB)
	}

	store := database.NewDatasetStore(source, logger)

	// Создаем менеджер WebSocket
	wsManager := websocket.NewManager(logger)
	go wsManager.Run(ctx)

	// Первая загрузка. Отсутствие таблицы не мешает старту: API ответит 503 до первого ETL.
	reloadDataset(store, wsManager, logger)

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()
	if _, err := scheduler.Every(cfg.Server.ReloadInterval).WaitForSchedule().Do(func() {
		reloadDataset(store, wsManager, logger)
	}); err != nil {
		logger.Error("Ошибка при настройке перезагрузки таблицы: %v", err)
		os.Exit(1)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	router := mux.NewRouter()
	routes.SetupRoutes(router, store, wsManager, logger, cfg.StaticPath())

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Запускаем сервер в отдельной горутине
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Сервер дашборда запущен на %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Получен сигнал завершения, закрываем соединения...")
	case err := <-serverErr:
		logger.Error("Ошибка запуска сервера: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера: %v", err)
	}

	logger.Info("Сервер остановлен")
}

// reloadDataset перечитывает таблицу и уведомляет дашборды, если она изменилась
func reloadDataset(store *database.DatasetStore, wsManager *websocket.Manager, logger *utils.ETLLogger) {
	changed, err := store.Reload()
	if err != nil {
		logger.Warn("Не удалось загрузить обогащённую таблицу: %v", err)
		return
	}
	if !changed {
		return
	}

	info, err := store.Info()
	if err != nil {
		logger.Error("Ошибка чтения сведений о таблице: %v", err)
		return
	}
	wsManager.BroadcastDatasetUpdated(info.Rows, info.Version)
}
