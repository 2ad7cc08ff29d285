package config

import (
	"fmt"
	"image"

	"github.com/spf13/viper"
	"github.com/tarm/serial"
)

// Структура для координат с размером
type CoordinatesWithSize struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Структура для цвета пикселя
type RGB struct {
	R int `mapstructure:"r"`
	G int `mapstructure:"g"`
	B int `mapstructure:"b"`
}

// Области экрана для проверки состояния capscan
type Probe struct {
	MainWindow        CoordinatesWithSize `mapstructure:"main_window"`
	Dialog            CoordinatesWithSize `mapstructure:"dialog"`
	RecognitionButton CoordinatesWithSize `mapstructure:"recognition_button"`
	DialogColor       RGB                 `mapstructure:"dialog_color"`
	ButtonActiveColor RGB                 `mapstructure:"button_active_color"`
	ColorTolerance    int                 `mapstructure:"color_tolerance"`
}

// Точки кликов относительно найденного окна capscan
type Click struct {
	RecognitionButton image.Point `mapstructure:"recognition_button"`
}

// Основная структура конфигурации
type Config struct {
	Port               string `mapstructure:"port"`
	PortObj            *serial.Port
	BaudRate           int    `mapstructure:"baud_rate"`
	InputDir           string `mapstructure:"input_dir"`
	OutputDir          string `mapstructure:"output_dir"`
	CapscanPath        string `mapstructure:"capscan_path"`
	LogFilePath        string `mapstructure:"log_file_path"`
	LaunchTimeout      int    `mapstructure:"launch_timeout"`      // секунды
	OpenTimeout        int    `mapstructure:"open_timeout"`        // секунды
	RecognitionTimeout int    `mapstructure:"recognition_timeout"` // секунды
	SaveTimeout        int    `mapstructure:"save_timeout"`        // секунды
	PollIntervalMs     int    `mapstructure:"poll_interval_ms"`
	SettleDelayMs      int    `mapstructure:"settle_delay_ms"` // пауза после загрузки картинки
	WindowTopOffset    int    `mapstructure:"window_top_offset"`
	Probe              Probe  `mapstructure:"probe"`
	Click              Click  `mapstructure:"click"`
	SaveToDB           int    `mapstructure:"save_to_db"`
	DBDSN              string `mapstructure:"db_dsn"`
	WaitForHotkey      int    `mapstructure:"wait_for_hotkey"`
	RestartOnFailure   int    `mapstructure:"restart_on_failure"`
}

var InitConfig = func() (error, Config) {
	// Инициализация viper для чтения конфигурации из .yaml файла
	viper.SetConfigName("config") // Имя конфигурационного файла без расширения
	viper.AddConfigPath(".")      // Путь к файлу конфигурации
	viper.SetConfigType("yaml")   // Формат файла

	// Значения по умолчанию для ожиданий, чтобы неполный конфиг не давал нулевые таймауты
	viper.SetDefault("launch_timeout", 30)
	viper.SetDefault("open_timeout", 10)
	viper.SetDefault("recognition_timeout", 120)
	viper.SetDefault("save_timeout", 10)
	viper.SetDefault("poll_interval_ms", 1000)
	viper.SetDefault("settle_delay_ms", 1000)
	viper.SetDefault("restart_on_failure", 1)

	var config Config

	// Чтение конфигурации
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("ошибка чтения конфигурационного файла: %v", err), config
	}

	// Создание структуры и заполнение её данными из конфигурации
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("ошибка разбора конфигурации: %v", err), config
	}

	return nil, config
}
