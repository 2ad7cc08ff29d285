package hid

import (
	"bytes"
	"fmt"

	"github.com/tarm/serial"
)

// InitializePort открывает serial-порт аппаратного HID-моста
func InitializePort(name string, baud int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	return port, err
}

// Bridge отправляет команды клавиатуры и мыши через HID-мост
type Bridge struct {
	port *serial.Port
}

// NewBridge создает новый экземпляр Bridge
func NewBridge(port *serial.Port) *Bridge {
	return &Bridge{port: port}
}

// Chord нажимает сочетание клавиш, например "ctrl+o" или "shift+ctrl+m"
func (b *Bridge) Chord(keys string) error {
	return b.send(chordMessage(keys))
}

// TypeText вводит текст через буфер обмена: copy_to_clipboard + paste.
// Так путь к файлу попадает в диалог целиком, без посимвольного набора.
func (b *Bridge) TypeText(text string) error {
	if err := b.send(clipboardMessage(text)); err != nil {
		return err
	}
	return b.send(pasteMessage())
}

// Click выполняет клик по абсолютным координатам экрана
func (b *Bridge) Click(x, y int) error {
	return b.send(clickMessage(x, y))
}

// send отправляет команду и ждет подтверждения от моста
func (b *Bridge) send(message string) error {
	_, err := b.port.Write([]byte(message))
	if err != nil {
		return fmt.Errorf("ошибка записи в HID-мост: %v", err)
	}

	// Ожидаем ответа после выполнения команды
	_, err = waitForResponse(b.port, "received")
	if err != nil {
		return fmt.Errorf("ошибка ожидания ответа от HID-моста: %v", err)
	}
	return nil
}

func chordMessage(keys string) string {
	return fmt.Sprintf("key_chord:%s\n", keys)
}

func clipboardMessage(text string) string {
	return fmt.Sprintf("copy_to_clipboard:%s\n", text)
}

func pasteMessage() string {
	return "paste\n"
}

func clickMessage(x, y int) string {
	return fmt.Sprintf("click:%d,%d\n", x, y)
}

// waitForResponse читает порт до перевода строки и сверяет ответ с ожидаемым
func waitForResponse(port *serial.Port, expectedResponse string) (string, error) {
	var response string
	for {
		buf := make([]byte, 128)
		n, err := port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения из HID-моста: %v", err)
		}

		response += string(buf[:n])

		if len(response) > 0 && response[len(response)-1] == '\n' {
			// Убираем перевод строки и пробелы по краям
			response = response[:len(response)-1]
			response = string(bytes.TrimSpace([]byte(response)))

			if response == expectedResponse {
				return response, nil
			}
			return "", fmt.Errorf("неожиданный ответ от HID-моста: '%s'", response)
		}
	}
}
