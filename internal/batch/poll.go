package batch

import (
	"fmt"
	"time"
)

// PollUntil опрашивает check с заданным интервалом, пока условие не выполнится
// или не истечет таймаут. Условие проверяется минимум один раз, даже при
// нулевом таймауте. Ошибка check прекращает ожидание сразу.
func PollUntil(timeout, interval time.Duration, check func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := check()
		if err != nil {
			return fmt.Errorf("ошибка проверки условия: %v", err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrPollTimeout
		}
		time.Sleep(interval)
	}
}
