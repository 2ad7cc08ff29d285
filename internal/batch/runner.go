package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cscbatch/internal/config"
	"cscbatch/internal/logger"

	"github.com/google/uuid"
)

// Converter интерфейс управления capscan: фазы обработки одного файла
type Converter interface {
	EnsureReady() error
	Open(inputPath string) error
	Recognize() error
	Save(outputPath string) error
	CloseTab()
	Restart() error
}

// ResultSaver интерфейс для сохранения результатов в базу данных
type ResultSaver interface {
	SaveResult(batchID string, res RunResult)
	SaveSummary(summary *BatchSummary) error
	WaitForAsyncOperations()
}

// Runner последовательно прогоняет все найденные файлы через capscan
type Runner struct {
	cfg       *config.Config
	converter Converter
	dbManager ResultSaver
	logger    *logger.LoggerManager
	stopChan  <-chan bool
}

// NewRunner создает новый экземпляр Runner. dbManager и stopChan могут быть nil.
func NewRunner(cfg *config.Config, converter Converter, dbManager ResultSaver, loggerManager *logger.LoggerManager, stopChan <-chan bool) *Runner {
	return &Runner{
		cfg:       cfg,
		converter: converter,
		dbManager: dbManager,
		logger:    loggerManager,
		stopChan:  stopChan,
	}
}

// Preflight проверяет фатальные условия до начала обработки:
// бинарник capscan существует, входной каталог читается, выходной каталог доступен на запись
func (r *Runner) Preflight() error {
	if _, err := os.Stat(r.cfg.CapscanPath); err != nil {
		return fmt.Errorf("бинарник capscan не найден: %v", err)
	}
	if _, err := os.Stat(r.cfg.InputDir); err != nil {
		return fmt.Errorf("входной каталог недоступен: %v", err)
	}

	// Создаем выходной каталог, если его нет, и проверяем запись пробным файлом
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("ошибка создания выходного каталога: %v", err)
	}
	probe := filepath.Join(r.cfg.OutputDir, ".cscbatch_write_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return fmt.Errorf("выходной каталог недоступен на запись: %v", err)
	}
	os.Remove(probe)

	return nil
}

// Run выполняет весь батч: обнаружение файлов, последовательная обработка, итоги.
// Ошибка одного файла не прерывает батч; фатальны только проблемы конфигурации.
func (r *Runner) Run() (*BatchSummary, error) {
	if err := r.Preflight(); err != nil {
		return nil, err
	}

	files, err := Discover(r.cfg.InputDir)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{ID: uuid.New().String()}
	batchStart := time.Now()

	r.logger.Info("📦 Батч %s: найдено %d файлов в %s", summary.ID, len(files), r.cfg.InputDir)
	if len(files) == 0 {
		r.logger.Info("✅ Входной каталог пуст, делать нечего")
		return summary, nil
	}

	for i, inputPath := range files {
		item := NewWorkItem(inputPath, r.cfg.OutputDir)

		// Проверяем запрос остановки на границе файлов
		if r.stopRequested() {
			r.logger.Warn("⏹️ Остановка по запросу пользователя, осталось файлов: %d", len(files)-i)
			r.skipRemaining(summary, files[i:])
			break
		}

		r.logger.Info("🎼 [%d/%d] %s", i+1, len(files), filepath.Base(item.Input))
		res := r.processOne(item)
		summary.Results = append(summary.Results, res)

		if res.Status == StatusSuccess {
			summary.Succeeded++
			r.logger.Info("✅ %s → %s за %.1f сек", filepath.Base(item.Input), filepath.Base(item.Output), res.TotalTime.Seconds())
		} else {
			summary.Failed++
			r.logger.Error("❌ %s: фаза %s: %v", filepath.Base(item.Input), res.FailedPhase, res.Err)

			// Зависший диалог может испортить следующие файлы, поэтому перезапускаем capscan
			if r.cfg.RestartOnFailure == 1 {
				r.logger.Info("🔄 Перезапуск capscan после ошибки")
				if err := r.converter.Restart(); err != nil {
					r.logger.LogError(err, "Ошибка перезапуска capscan")
				}
			}
		}

		if r.dbManager != nil {
			r.dbManager.SaveResult(summary.ID, res)
		}
	}

	summary.TotalTime = time.Since(batchStart)

	if r.dbManager != nil {
		r.dbManager.WaitForAsyncOperations()
		if err := r.dbManager.SaveSummary(summary); err != nil {
			r.logger.LogError(err, "Ошибка сохранения итогов батча")
		}
	}

	r.logSummary(summary)
	return summary, nil
}

// processOne прогоняет один файл через все фазы: запуск → открытие → распознавание → сохранение
func (r *Runner) processOne(item WorkItem) RunResult {
	res := RunResult{Item: item}
	start := time.Now()

	if err := r.converter.EnsureReady(); err != nil {
		return r.fail(res, PhaseLaunch, err, start)
	}

	phaseStart := time.Now()
	if err := r.converter.Open(item.Input); err != nil {
		r.converter.CloseTab()
		return r.fail(res, PhaseOpen, err, start)
	}
	res.OpenTime = time.Since(phaseStart)
	r.logger.LogPhase("open", res.OpenTime)

	phaseStart = time.Now()
	if err := r.converter.Recognize(); err != nil {
		r.converter.CloseTab()
		return r.fail(res, PhaseRecognize, err, start)
	}
	res.RecognizeTime = time.Since(phaseStart)
	r.logger.LogPhase("recognize", res.RecognizeTime)

	phaseStart = time.Now()
	if err := r.converter.Save(item.Output); err != nil {
		r.converter.CloseTab()
		return r.fail(res, PhaseSave, err, start)
	}

	// Успех засчитывается только если файл реально появился на диске и непустой
	if err := verifyOutput(item.Output); err != nil {
		r.converter.CloseTab()
		return r.fail(res, PhaseSave, err, start)
	}
	res.SaveTime = time.Since(phaseStart)
	r.logger.LogPhase("save", res.SaveTime)

	// Закрываем вкладку, чтобы следующий файл открывался в чистом состоянии
	r.converter.CloseTab()

	res.Status = StatusSuccess
	res.TotalTime = time.Since(start)
	return res
}

// fail финализирует RunResult с ошибкой фазы
func (r *Runner) fail(res RunResult, phase Phase, err error, start time.Time) RunResult {
	res.Status = StatusFailed
	res.FailedPhase = phase
	res.Err = err
	res.TotalTime = time.Since(start)
	return res
}

// verifyOutput проверяет, что результат существует на диске и непустой
func verifyOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return ErrSaveVerificationFailed
	}
	if fi.Size() == 0 {
		return ErrSaveVerificationFailed
	}
	return nil
}

// stopRequested неблокирующе проверяет канал остановки
func (r *Runner) stopRequested() bool {
	if r.stopChan == nil {
		return false
	}
	select {
	case <-r.stopChan:
		return true
	default:
		return false
	}
}

// skipRemaining помечает необработанные файлы как пропущенные
func (r *Runner) skipRemaining(summary *BatchSummary, files []string) {
	for _, inputPath := range files {
		summary.Results = append(summary.Results, RunResult{
			Item:   NewWorkItem(inputPath, r.cfg.OutputDir),
			Status: StatusSkipped,
		})
		summary.Skipped++
	}
}

// logSummary пишет итоговые строки батча в лог
func (r *Runner) logSummary(summary *BatchSummary) {
	r.logger.Info("🏁 Батч %s завершен за %.1f сек", summary.ID, summary.TotalTime.Seconds())
	r.logger.Info("📊 Успешно: %d, с ошибкой: %d, пропущено: %d, скорость: %.2f файлов/мин",
		summary.Succeeded, summary.Failed, summary.Skipped, summary.Throughput())
}
