package batch

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// Ошибки фаз обработки одного файла
var (
	ErrLaunchTimeout          = errors.New("таймаут запуска capscan")
	ErrOpenTimeout            = errors.New("таймаут диалога открытия файла")
	ErrRecognitionTimeout     = errors.New("таймаут распознавания")
	ErrSaveTimeout            = errors.New("таймаут диалога сохранения")
	ErrSaveVerificationFailed = errors.New("выходной файл не появился или пустой")
	ErrPollTimeout            = errors.New("истекло время ожидания условия")
)

// Status представляет итог обработки одного файла
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Phase представляет фазу обработки одного файла
type Phase string

const (
	PhaseLaunch    Phase = "launch"
	PhaseOpen      Phase = "open"
	PhaseRecognize Phase = "recognize"
	PhaseSave      Phase = "save"
)

// WorkItem представляет один входной файл и путь его будущего результата
type WorkItem struct {
	Input  string
	Output string
}

// NewWorkItem строит WorkItem: результат кладется в outputDir с тем же именем и расширением .csc
func NewWorkItem(input, outputDir string) WorkItem {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return WorkItem{
		Input:  input,
		Output: filepath.Join(outputDir, stem+".csc"),
	}
}

// RunResult представляет итог обработки одного файла с таймингами фаз
type RunResult struct {
	Item          WorkItem
	Status        Status
	FailedPhase   Phase
	Err           error
	OpenTime      time.Duration
	RecognizeTime time.Duration
	SaveTime      time.Duration
	TotalTime     time.Duration
}

// BatchSummary накапливает итоги одного прогона
type BatchSummary struct {
	ID        string
	Succeeded int
	Failed    int
	Skipped   int
	TotalTime time.Duration
	Results   []RunResult
}

// Attempted возвращает количество файлов, до которых дошла обработка
func (s *BatchSummary) Attempted() int {
	return s.Succeeded + s.Failed
}

// Throughput возвращает успешно обработанные файлы в минуту
func (s *BatchSummary) Throughput() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.Succeeded) / s.TotalTime.Minutes()
}
