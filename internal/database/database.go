package database

import (
	"database/sql"
	"fmt"
	"sync"

	"cscbatch/internal/batch"
	"cscbatch/internal/config"
	"cscbatch/internal/logger"
)

// DatabaseManager сохраняет результаты конвертации в MySQL
type DatabaseManager struct {
	db     *sql.DB
	cfg    *config.Config
	logger *logger.LoggerManager
	wg     sync.WaitGroup // для ожидания завершения асинхронных операций
}

// NewDatabaseManager создает новый экземпляр DatabaseManager
func NewDatabaseManager(db *sql.DB, cfg *config.Config, loggerManager *logger.LoggerManager) *DatabaseManager {
	return &DatabaseManager{
		db:     db,
		cfg:    cfg,
		logger: loggerManager,
	}
}

// ensureTables создает таблицы результатов, если их еще нет
func (h *DatabaseManager) ensureTables() error {
	resultsSQL := `
	CREATE TABLE IF NOT EXISTS conversion_results (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_id VARCHAR(36) NOT NULL,
		input_path VARCHAR(255) NOT NULL,
		output_path VARCHAR(255) NOT NULL,
		status VARCHAR(16) NOT NULL,
		failed_phase VARCHAR(16),
		error_text TEXT,
		open_ms INT,
		recognize_ms INT,
		save_ms INT,
		total_ms INT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := h.db.Exec(resultsSQL); err != nil {
		return fmt.Errorf("ошибка создания таблицы conversion_results: %v", err)
	}

	runsSQL := `
	CREATE TABLE IF NOT EXISTS batch_runs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_id VARCHAR(36) NOT NULL UNIQUE,
		succeeded INT NOT NULL,
		failed INT NOT NULL,
		skipped INT NOT NULL,
		total_ms INT NOT NULL,
		throughput_per_min DECIMAL(10,2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := h.db.Exec(runsSQL); err != nil {
		return fmt.Errorf("ошибка создания таблицы batch_runs: %v", err)
	}

	return nil
}

// SaveResult сохраняет результат одного файла асинхронно, чтобы не тормозить батч
func (h *DatabaseManager) SaveResult(batchID string, res batch.RunResult) {
	// Проверяем настройку сохранения в БД
	if h.cfg.SaveToDB != 1 {
		return
	}

	if err := h.ensureTables(); err != nil {
		h.logger.LogError(err, "Ошибка подготовки таблиц")
		return
	}

	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}

	h.wg.Add(1)
	go func(r batch.RunResult, errText string) {
		defer h.wg.Done()

		insertSQL := `INSERT INTO conversion_results
			(batch_id, input_path, output_path, status, failed_phase, error_text, open_ms, recognize_ms, save_ms, total_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := h.db.Exec(insertSQL,
			batchID, r.Item.Input, r.Item.Output, string(r.Status), string(r.FailedPhase), errText,
			r.OpenTime.Milliseconds(), r.RecognizeTime.Milliseconds(), r.SaveTime.Milliseconds(), r.TotalTime.Milliseconds())
		if err != nil {
			h.logger.LogError(err, "Ошибка асинхронного сохранения результата")
			return
		}
		h.logger.Debug("Результат %s сохранен в базу", r.Item.Input)
	}(res, errText)
}

// SaveSummary сохраняет итоговую строку батча синхронно в конце прогона
func (h *DatabaseManager) SaveSummary(summary *batch.BatchSummary) error {
	if h.cfg.SaveToDB != 1 {
		return nil
	}

	if err := h.ensureTables(); err != nil {
		return err
	}

	insertSQL := `INSERT INTO batch_runs (batch_id, succeeded, failed, skipped, total_ms, throughput_per_min)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := h.db.Exec(insertSQL,
		summary.ID, summary.Succeeded, summary.Failed, summary.Skipped,
		summary.TotalTime.Milliseconds(), summary.Throughput())
	if err != nil {
		return fmt.Errorf("ошибка сохранения итогов батча: %v", err)
	}

	h.logger.Info("💾 Итоги батча %s сохранены в базу", summary.ID)
	return nil
}

// WaitForAsyncOperations ожидает завершения всех асинхронных операций сохранения
func (h *DatabaseManager) WaitForAsyncOperations() {
	h.wg.Wait()
}
