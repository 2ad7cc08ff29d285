package capscan

import (
	"errors"
	"image"
	"time"

	"cscbatch/internal/batch"
	"cscbatch/internal/config"
	"cscbatch/internal/logger"
)

// Keyboard интерфейс ввода через HID-мост
type Keyboard interface {
	Chord(keys string) error
	TypeText(text string) error
	Click(x, y int) error
}

// Prober интерфейс проверки состояния интерфейса capscan
type Prober interface {
	MainWindowVisible() (bool, error)
	DialogVisible() (bool, error)
	RecognitionIdle() (bool, error)
	WindowOrigin() (image.Point, error)
}

// Controller управляет одним экземпляром capscan: жизненный цикл процесса
// и фазы открыть/распознать/сохранить. Доступ строго последовательный,
// фаза начинается только после полного завершения предыдущей.
type Controller struct {
	cfg         *config.Config
	kb          Keyboard
	probe       Prober
	logger      *logger.LoggerManager
	origin      image.Point
	originFound bool
}

// NewController создает новый экземпляр Controller
func NewController(cfg *config.Config, kb Keyboard, probe Prober, loggerManager *logger.LoggerManager) *Controller {
	return &Controller{
		cfg:    cfg,
		kb:     kb,
		probe:  probe,
		logger: loggerManager,
	}
}

// EnsureReady проверяет, что capscan запущен и его главное окно видно.
// Если окна нет — убивает остатки процесса и запускает заново.
func (c *Controller) EnsureReady() error {
	visible, err := c.probe.MainWindowVisible()
	if err != nil {
		return err
	}

	if !visible {
		c.logger.Info("🚀 Окно capscan не найдено, запускаем заново")
		if err := c.relaunch(); err != nil {
			return err
		}
	}

	// Запоминаем угол окна для кликов по относительным координатам
	if !c.originFound {
		origin, err := c.probe.WindowOrigin()
		if err != nil {
			return err
		}
		c.origin = origin
		c.originFound = true
		c.logger.Debug("Окно capscan найдено в точке %v", origin)
	}

	return nil
}

// Restart принудительно перезапускает capscan: Unknown → Ready через kill и запуск
func (c *Controller) Restart() error {
	return c.relaunch()
}

// relaunch убивает остатки процесса, запускает новый и ждет главное окно
func (c *Controller) relaunch() error {
	c.originFound = false

	if err := c.KillStale(); err != nil {
		return err
	}
	if err := c.launch(); err != nil {
		return err
	}

	err := batch.PollUntil(c.seconds(c.cfg.LaunchTimeout), c.pollInterval(), c.probe.MainWindowVisible)
	if errors.Is(err, batch.ErrPollTimeout) {
		return batch.ErrLaunchTimeout
	}
	return err
}

// Open открывает файл изображения через диалог Ctrl+O
func (c *Controller) Open(inputPath string) error {
	if err := c.kb.Chord("ctrl+o"); err != nil {
		return err
	}

	// Ждем появления диалога открытия
	if err := c.waitDialog(c.cfg.OpenTimeout, true); err != nil {
		return phaseError(err, batch.ErrOpenTimeout)
	}

	// Вводим путь и подтверждаем
	if err := c.kb.TypeText(inputPath); err != nil {
		return err
	}
	if err := c.kb.Chord("enter"); err != nil {
		return err
	}

	// Диалог должен закрыться, иначе путь не принят
	if err := c.waitDialog(c.cfg.OpenTimeout, false); err != nil {
		return phaseError(err, batch.ErrOpenTimeout)
	}

	// Пауза на загрузку изображения
	time.Sleep(c.millis(c.cfg.SettleDelayMs))
	return nil
}

// Recognize запускает распознавание и ждет, пока кнопка снова станет активной
func (c *Controller) Recognize() error {
	click := c.origin.Add(c.cfg.Click.RecognitionButton)
	if err := c.kb.Click(click.X, click.Y); err != nil {
		return err
	}

	// Даем интерфейсу время погасить кнопку, иначе опрос сработает до старта
	time.Sleep(c.millis(c.cfg.SettleDelayMs))

	err := batch.PollUntil(c.seconds(c.cfg.RecognitionTimeout), c.pollInterval(), c.probe.RecognitionIdle)
	return phaseError(err, batch.ErrRecognitionTimeout)
}

// Save экспортирует результат через диалог Shift+Ctrl+M
func (c *Controller) Save(outputPath string) error {
	if err := c.kb.Chord("shift+ctrl+m"); err != nil {
		return err
	}

	if err := c.waitDialog(c.cfg.SaveTimeout, true); err != nil {
		return phaseError(err, batch.ErrSaveTimeout)
	}

	if err := c.kb.TypeText(outputPath); err != nil {
		return err
	}
	if err := c.kb.Chord("enter"); err != nil {
		return err
	}

	if err := c.waitDialog(c.cfg.SaveTimeout, false); err != nil {
		return phaseError(err, batch.ErrSaveTimeout)
	}
	return nil
}

// CloseTab закрывает текущую вкладку партитуры. Ошибки только логируются:
// вкладки может и не быть, если файл упал на фазе открытия.
func (c *Controller) CloseTab() {
	if err := c.kb.Chord("ctrl+w"); err != nil {
		c.logger.LogError(err, "Ошибка закрытия вкладки")
	}
}

// waitDialog ждет появления (visible=true) или закрытия (visible=false) диалога
func (c *Controller) waitDialog(timeoutSec int, visible bool) error {
	return batch.PollUntil(c.seconds(timeoutSec), c.pollInterval(), func() (bool, error) {
		shown, err := c.probe.DialogVisible()
		if err != nil {
			return false, err
		}
		return shown == visible, nil
	})
}

// phaseError подменяет таймаут опроса на ошибку конкретной фазы
func phaseError(err, sentinel error) error {
	if errors.Is(err, batch.ErrPollTimeout) {
		return sentinel
	}
	return err
}

func (c *Controller) pollInterval() time.Duration {
	return time.Duration(c.cfg.PollIntervalMs) * time.Millisecond
}

func (c *Controller) seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (c *Controller) millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
