package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix префикс переменных окружения, переопределяющих конфигурацию
const EnvPrefix = "HOUSING"

// ConfigFileEnv переменная окружения с путём к YAML-файлу конфигурации
const ConfigFileEnv = "HOUSING_CONFIG_FILE"

// DefaultConfigFile имя YAML-файла конфигурации в корне проекта
const DefaultConfigFile = "housing_etl.yaml"

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Пути к исходным и результирующим файлам
	Paths PathsConfig `yaml:"paths" split_words:"true"`

	// Выгрузка обогащённой таблицы в OLAP БД (MySQL), по умолчанию выключена
	OLAP DatabaseConfig `yaml:"olap" split_words:"true"`

	// Дополнительная выгрузка таблиц в Excel
	Export ExportConfig `yaml:"export" split_words:"true"`

	// Настройки HTTP-сервера дашборда
	Server ServerConfig `yaml:"server" split_words:"true"`

	// Интервал запуска ETL в режиме schedule
	RunInterval time.Duration `yaml:"run_interval" split_words:"true"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `yaml:"enable_detailed_logging" split_words:"true"`
}

// PathsConfig содержит пути к файлам. Относительные каталоги отсчитываются от Root.
type PathsConfig struct {
	Root         string `yaml:"root" split_words:"true"`
	RawDir       string `yaml:"raw_dir" split_words:"true"`
	ProcessedDir string `yaml:"processed_dir" split_words:"true"`
	EnrichedDir  string `yaml:"enriched_dir" split_words:"true"`
	LogDir       string `yaml:"log_dir" split_words:"true"`

	HPIFile      string `yaml:"hpi_file" split_words:"true"`
	HICPFile     string `yaml:"hicp_file" split_words:"true"`
	RatesFile    string `yaml:"rates_file" split_words:"true"`
	MergedFile   string `yaml:"merged_file" split_words:"true"`
	EnrichedFile string `yaml:"enriched_file" split_words:"true"`

	// Имя столбца значения в файле ставки (зависит от источника)
	RateColumn string `yaml:"rate_column" split_words:"true"`
}

// ExportConfig содержит настройки дополнительных форматов выгрузки
type ExportConfig struct {
	XLSX bool `yaml:"xlsx" split_words:"true"`
}

// ServerConfig содержит настройки HTTP-сервера дашборда
type ServerConfig struct {
	Addr           string        `yaml:"addr" split_words:"true"`
	ReadTimeout    time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout   time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" split_words:"true"`
	ReloadInterval time.Duration `yaml:"reload_interval" split_words:"true"`
	StaticDir      string        `yaml:"static_dir" split_words:"true"`
}

// Значения конфигурации по умолчанию
var (
	DefaultPathsConfig = PathsConfig{
		Root:         ".",
		RawDir:       "data/raw",
		ProcessedDir: "data/processed",
		EnrichedDir:  "data/enriched",
		LogDir:       "logs",
		HPIFile:      "hpi_eurostat_prc_hpi_q.csv",
		HICPFile:     "hicp_eurostat_prc_hicp_manr.csv",
		RatesFile:    "ecb_deposit_facility_rate.csv",
		MergedFile:   "housing_macro_quarterly.csv",
		EnrichedFile: "housing_macro_quarterly_enriched.csv",
		RateColumn:   "ECBDFR",
	}

	DefaultOLAPConfig = DatabaseConfig{
		Enabled: false,
		Driver:  "mysql",
		Host:    "localhost",
		Port:    3306,
		User:    "root",
		DBName:  "housing_analytics",
	}

	DefaultServerConfig = ServerConfig{
		Addr:           ":8080",
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		ReloadInterval: 30 * time.Second,
		StaticDir:      "public",
	}

	DefaultETLConfig = ETLConfig{
		Paths:                 DefaultPathsConfig,
		OLAP:                  DefaultOLAPConfig,
		Server:                DefaultServerConfig,
		RunInterval:           24 * time.Hour,
		EnableDetailedLogging: false,
	}
)

// GetConfig возвращает конфигурацию ETL по умолчанию
func GetConfig() ETLConfig {
	return DefaultETLConfig
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл (если есть),
// затем переменные окружения с префиксом HOUSING.
func Load() (ETLConfig, error) {
	cfg := GetConfig()

	configFile := os.Getenv(ConfigFileEnv)
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(cfg.Paths.Root, DefaultConfigFile)
	}

	// Файл по умолчанию необязателен, явно указанный файл должен существовать
	err := loadFromFile(configFile, &cfg)
	if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return cfg, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", configFile, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("ошибка чтения конфигурации из окружения: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadFromFile накладывает значения из YAML поверх уже заполненной конфигурации
func loadFromFile(path string, cfg *ETLConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate проверяет обязательные параметры
func (c ETLConfig) Validate() error {
	p := c.Paths
	for name, v := range map[string]string{
		"hpi_file":      p.HPIFile,
		"hicp_file":     p.HICPFile,
		"rates_file":    p.RatesFile,
		"merged_file":   p.MergedFile,
		"enriched_file": p.EnrichedFile,
		"rate_column":   p.RateColumn,
	} {
		if v == "" {
			return fmt.Errorf("в конфигурации не задан параметр paths.%s", name)
		}
	}
	if c.RunInterval <= 0 {
		return fmt.Errorf("run_interval должен быть положительным, получено %v", c.RunInterval)
	}
	return nil
}

// resolve строит путь относительно корня проекта
func (p PathsConfig) resolve(elem ...string) string {
	path := filepath.Join(elem...)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// HPIPath путь к исходному файлу HPI
func (p PathsConfig) HPIPath() string { return p.resolve(p.RawDir, p.HPIFile) }

// HICPPath путь к исходному файлу HICP
func (p PathsConfig) HICPPath() string { return p.resolve(p.RawDir, p.HICPFile) }

// RatesPath путь к исходному файлу ставки ЕЦБ
func (p PathsConfig) RatesPath() string { return p.resolve(p.RawDir, p.RatesFile) }

// MergedPath путь к объединённой таблице
func (p PathsConfig) MergedPath() string { return p.resolve(p.ProcessedDir, p.MergedFile) }

// EnrichedPath путь к обогащённой таблице
func (p PathsConfig) EnrichedPath() string { return p.resolve(p.EnrichedDir, p.EnrichedFile) }

// LogPath каталог файлов лога
func (p PathsConfig) LogPath() string { return p.resolve(p.LogDir) }

// StaticPath каталог статических файлов дашборда
func (c ETLConfig) StaticPath() string { return c.Paths.resolve(c.Server.StaticDir) }
