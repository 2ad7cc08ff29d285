package capscan

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// KillStale принудительно завершает все процессы capscan.
// Отсутствие процесса — не ошибка: taskkill возвращает ненулевой код,
// когда убивать нечего, и это нормальный исход для чистого состояния.
func (c *Controller) KillStale() error {
	exe := filepath.Base(c.cfg.CapscanPath)
	cmd := exec.Command("taskkill", "/F", "/IM", exe)
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			c.logger.Debug("Процесс %s уже не запущен", exe)
			return nil
		}
		return fmt.Errorf("ошибка завершения процесса %s: %v", exe, err)
	}
	c.logger.Info("💀 Старый процесс %s завершен", exe)
	return nil
}

// launch запускает новый экземпляр capscan, не дожидаясь его завершения
func (c *Controller) launch() error {
	cmd := exec.Command(c.cfg.CapscanPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ошибка запуска capscan: %v", err)
	}

	// Подбираем статус завершения, чтобы не копить дочерние процессы
	go cmd.Wait()

	c.logger.Info("▶️ capscan запущен (pid %d)", cmd.Process.Pid)
	return nil
}
