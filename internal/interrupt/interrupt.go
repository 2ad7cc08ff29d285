package interrupt

import (
	"cscbatch/internal/logger"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
)

// InterruptManager управляет горячими клавишами запуска и остановки батча
type InterruptManager struct {
	batchStopChan  chan bool
	batchStartChan chan bool
	isBatchRunning *bool
	loggerManager  *logger.LoggerManager
}

// NewInterruptManager создает новый менеджер прерываний
func NewInterruptManager(loggerManager *logger.LoggerManager) *InterruptManager {
	isBatchRunning := false
	return &InterruptManager{
		batchStopChan:  make(chan bool, 1),
		batchStartChan: make(chan bool, 1),
		isBatchRunning: &isBatchRunning,
		loggerManager:  loggerManager,
	}
}

// StartMonitoring запускает мониторинг горячих клавиш
func (im *InterruptManager) StartMonitoring() {
	go im.monitorHotkeys()
}

// GetBatchStopChan возвращает канал запроса остановки батча.
// Остановка срабатывает только на границе файлов, текущий файл дорабатывается.
func (im *InterruptManager) GetBatchStopChan() <-chan bool {
	return im.batchStopChan
}

// GetBatchStartChan возвращает канал для запуска батча
func (im *InterruptManager) GetBatchStartChan() <-chan bool {
	return im.batchStartChan
}

// SetBatchRunning устанавливает состояние выполнения батча
func (im *InterruptManager) SetBatchRunning(running bool) {
	*im.isBatchRunning = running
}

// IsBatchRunning возвращает состояние выполнения батча
func (im *InterruptManager) IsBatchRunning() bool {
	return *im.isBatchRunning
}

// monitorHotkeys мониторит горячие клавиши
func (im *InterruptManager) monitorHotkeys() {
	eventChan := make(chan types.KeyboardEvent, 100)
	go keyboard.Install(nil, eventChan)
	defer keyboard.Uninstall()

	shiftPressed := false

	for event := range eventChan {
		if event.Message == types.WM_KEYDOWN && (event.VKCode == types.VK_LSHIFT || event.VKCode == types.VK_RSHIFT) {
			shiftPressed = true
		}
		if event.Message == types.WM_KEYUP && (event.VKCode == types.VK_LSHIFT || event.VKCode == types.VK_RSHIFT) {
			shiftPressed = false
		}
		if event.Message == types.WM_KEYDOWN && event.VKCode == types.VK_RETURN && shiftPressed {
			im.batchStartChan <- true
		}
		if event.Message == types.WM_KEYDOWN && event.VKCode == types.VK_Q {
			// Q запрашивает остановку только когда батч действительно идет
			if im.isBatchRunning != nil && *im.isBatchRunning {
				im.batchStopChan <- true
			}
		}
	}
}
