package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/housing_macro/ETL/analytics"
	"github.com/LilVoxy/housing_macro/ETL/config"
	"github.com/LilVoxy/housing_macro/ETL/extractors"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// app общее состояние команд: конфигурация и логгер
type app struct {
	verbose bool
	config  config.ETLConfig
	logger  *utils.ETLLogger
}

// newRootCommand собирает дерево команд ETL
func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "housing-etl",
		Short: "Квартальная таблица цен на жильё, инфляции и ставки ЕЦБ",
		Long: `Конвейер из двух стадий:
  merge  - нормализация HPI, HICP и ставки ЕЦБ к кварталу и левое соединение по HPI
  enrich - квартальные и годовые изменения показателей по каждой стране

Пути к файлам задаются конфигурацией (housing_etl.yaml и переменные HOUSING_*).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Close()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "подробное логирование")

	root.AddCommand(
		&cobra.Command{
			Use:   "merge",
			Short: "Объединить исходные ряды в квартальную таблицу",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRunner(func(r *ETLRunner) error {
					_, err := r.ExecuteMerge()
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "enrich",
			Short: "Рассчитать изменения QoQ и YoY по объединённой таблице",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRunner(func(r *ETLRunner) error {
					_, err := r.ExecuteEnrich()
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Выполнить обе стадии один раз",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRunner(func(r *ETLRunner) error {
					return r.ExecuteETL()
				})
			},
		},
		&cobra.Command{
			Use:   "schedule",
			Short: "Запускать обе стадии с интервалом run_interval до SIGINT/SIGTERM",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.withRunner(func(r *ETLRunner) error {
					return r.StartScheduler(ctx)
				})
			},
		},
		a.trendCommand(),
	)

	return root
}

// init загружает конфигурацию и создаёт логгер
func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.EnableDetailedLogging = true
	}

	logger, err := utils.NewETLLogger(cfg.EnableDetailedLogging, cfg.Paths.LogPath())
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger
	return nil
}

// withRunner создаёт ETLRunner на время выполнения команды
func (a *app) withRunner(fn func(*ETLRunner) error) error {
	runner, err := NewETLRunner(a.config, a.logger)
	if err != nil {
		a.logger.Error("Ошибка при создании ETL Runner: %v", err)
		return err
	}
	defer runner.Close()

	if err := fn(runner); err != nil {
		a.logger.Error("Ошибка при выполнении ETL: %v", err)
		return err
	}
	return nil
}

// trendCommand печатает линейный тренд HPI страны по обогащённой таблице
func (a *app) trendCommand() *cobra.Command {
	var country string
	var ahead int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Линейный тренд HPI страны и прогноз на несколько кварталов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := extractors.NewEnrichedExtractor(a.config.Paths.EnrichedPath()).ExtractEnriched()
			if err != nil {
				return fmt.Errorf("ошибка чтения обогащённой таблицы: %w", err)
			}

			a.logger.Info("Построение тренда HPI для %s, прогноз на %d кварталов", country, ahead)
			result, err := analytics.HPITrend(records, country, ahead)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "код страны (geo), например DE")
	cmd.Flags().IntVar(&ahead, "ahead", 4, "число кварталов прогноза")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
