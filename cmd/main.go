package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"cscbatch/internal/batch"
	"cscbatch/internal/capscan"
	"cscbatch/internal/config"
	"cscbatch/internal/database"
	"cscbatch/internal/hid"
	"cscbatch/internal/interrupt"
	"cscbatch/internal/logger"
	"cscbatch/internal/screen"

	_ "github.com/go-sql-driver/mysql"
	"github.com/tarm/serial"
)

func main() {
	// init конфигурации
	err, c := config.InitConfig()
	if err != nil {
		log.Fatal("Error initializing config: ", err)
	}

	// Инициализация логгера
	loggerManager, err := logger.NewLoggerManager(c.LogFilePath)
	if err != nil {
		log.Fatal("Error initializing logger: ", err)
	}
	defer loggerManager.Close()

	loggerManager.Info("🚀 Запуск конвертера партитур cscbatch")

	// Подключение к базе данных MySQL, если включено сохранение результатов
	var resultSaver batch.ResultSaver
	if c.SaveToDB == 1 {
		db, err := sql.Open("mysql", c.DBDSN)
		if err != nil {
			loggerManager.LogError(err, "Error connecting to database")
			return
		}
		defer db.Close()

		// Проверяем подключение к базе данных
		if err := db.Ping(); err != nil {
			loggerManager.LogError(err, "Error pinging database")
			return
		}
		loggerManager.Info("✅ Успешное подключение к базе данных")

		resultSaver = database.NewDatabaseManager(db, &c, loggerManager)
	}

	// Инициализация порта HID-моста с использованием значений из конфигурации
	portObj, err := hid.InitializePort(c.Port, c.BaudRate)
	if err != nil {
		loggerManager.LogError(err, "Error opening HID bridge port")
		return
	}
	c.PortObj = portObj
	defer func(port *serial.Port) {
		err := port.Close()
		if err != nil {
			loggerManager.LogError(err, "Error closing port")
		}
	}(portObj)

	// Инициализация всех менеджеров
	bridge := hid.NewBridge(portObj)
	prober := screen.NewStateProber(&c)
	controller := capscan.NewController(&c, bridge, prober, loggerManager)

	if c.WaitForHotkey == 1 {
		runWithHotkeys(&c, controller, resultSaver, loggerManager)
		return
	}

	// Без горячих клавиш батч стартует сразу
	runner := batch.NewRunner(&c, controller, resultSaver, loggerManager, nil)
	summary, err := runner.Run()
	if err != nil {
		loggerManager.LogError(err, "Фатальная ошибка батча")
		os.Exit(1)
	}
	fmt.Println(renderSummaryTable(summary))
}

// runWithHotkeys ждет Shift+Enter для запуска батча, Q останавливает его на границе файлов
func runWithHotkeys(c *config.Config, controller *capscan.Controller, resultSaver batch.ResultSaver, loggerManager *logger.LoggerManager) {
	interruptManager := interrupt.NewInterruptManager(loggerManager)
	loggerManager.Info("⏸️ Программа готова к работе. Нажмите Shift+Enter для запуска батча, Q для остановки")

	// запускаем мониторинг горячих клавиш
	interruptManager.StartMonitoring()

	for range interruptManager.GetBatchStartChan() {
		loggerManager.Info("🚀 Запуск батча...")
		loggerManager.Info("💡 Для остановки нажмите Q — текущий файл будет доработан")

		interruptManager.SetBatchRunning(true)
		runner := batch.NewRunner(c, controller, resultSaver, loggerManager, interruptManager.GetBatchStopChan())
		summary, err := runner.Run()
		interruptManager.SetBatchRunning(false)

		if err != nil {
			loggerManager.LogError(err, "Фатальная ошибка батча")
			continue
		}
		fmt.Println(renderSummaryTable(summary))
		loggerManager.Info("✅ Батч завершен. Нажмите Shift+Enter для повторного запуска")
	}
}
