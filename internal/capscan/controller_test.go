package capscan

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"testing"

	"cscbatch/internal/batch"
	"cscbatch/internal/config"
	"cscbatch/internal/logger"
)

// fakeKeyboard записывает отправленные команды ввода
type fakeKeyboard struct {
	actions []string
}

func (k *fakeKeyboard) Chord(keys string) error {
	k.actions = append(k.actions, "chord:"+keys)
	return nil
}

func (k *fakeKeyboard) TypeText(text string) error {
	k.actions = append(k.actions, "type:"+text)
	return nil
}

func (k *fakeKeyboard) Click(x, y int) error {
	k.actions = append(k.actions, fmt.Sprintf("click:%d,%d", x, y))
	return nil
}

// fakeProber отдает заранее заданные последовательности состояний;
// последнее значение последовательности повторяется
type fakeProber struct {
	mainVisible bool
	dialogSeq   []bool
	idleSeq     []bool
	origin      image.Point
}

func pop(seq *[]bool) bool {
	if len(*seq) == 0 {
		return false
	}
	v := (*seq)[0]
	if len(*seq) > 1 {
		*seq = (*seq)[1:]
	}
	return v
}

func (p *fakeProber) MainWindowVisible() (bool, error) { return p.mainVisible, nil }
func (p *fakeProber) DialogVisible() (bool, error)     { return pop(&p.dialogSeq), nil }
func (p *fakeProber) RecognitionIdle() (bool, error)   { return pop(&p.idleSeq), nil }
func (p *fakeProber) WindowOrigin() (image.Point, error) {
	return p.origin, nil
}

func testConfig() *config.Config {
	return &config.Config{
		OpenTimeout:        1,
		RecognitionTimeout: 1,
		SaveTimeout:        1,
		LaunchTimeout:      1,
		PollIntervalMs:     1,
		SettleDelayMs:      0,
		Click:              config.Click{RecognitionButton: image.Point{X: 15, Y: 48}},
	}
}

func testController(t *testing.T, cfg *config.Config, kb *fakeKeyboard, probe *fakeProber) *Controller {
	t.Helper()
	log, err := logger.NewLoggerManager(filepath.Join(t.TempDir(), "test.log"))
	if err != nil {
		t.Fatalf("NewLoggerManager: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return NewController(cfg, kb, probe, log)
}

func TestOpen_Sequence(t *testing.T) {
	kb := &fakeKeyboard{}
	// Диалог появляется, затем закрывается после Enter
	probe := &fakeProber{dialogSeq: []bool{true, false}}
	c := testController(t, testConfig(), kb, probe)

	if err := c.Open(`C:\img_in\a.png`); err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []string{"chord:ctrl+o", `type:C:\img_in\a.png`, "chord:enter"}
	if len(kb.actions) != len(want) {
		t.Fatalf("действия %v, ожидалось %v", kb.actions, want)
	}
	for i := range want {
		if kb.actions[i] != want[i] {
			t.Errorf("действие %d = %q, ожидалось %q", i, kb.actions[i], want[i])
		}
	}
}

func TestOpen_DialogNeverAppears(t *testing.T) {
	cfg := testConfig()
	cfg.OpenTimeout = 0
	probe := &fakeProber{dialogSeq: []bool{false}}
	c := testController(t, cfg, &fakeKeyboard{}, probe)

	err := c.Open(`C:\img_in\a.png`)
	if !errors.Is(err, batch.ErrOpenTimeout) {
		t.Errorf("ожидался ErrOpenTimeout, получено %v", err)
	}
}

func TestRecognize_ClickAtWindowOffset(t *testing.T) {
	kb := &fakeKeyboard{}
	probe := &fakeProber{
		mainVisible: true,
		origin:      image.Point{X: 100, Y: 200},
		idleSeq:     []bool{false, true},
	}
	c := testController(t, testConfig(), kb, probe)

	// EnsureReady запоминает угол окна, Recognize кликает относительно него
	if err := c.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if err := c.Recognize(); err != nil {
		t.Fatalf("Recognize: %v", err)
	}

	if len(kb.actions) != 1 || kb.actions[0] != "click:115,248" {
		t.Errorf("действия %v, ожидался клик click:115,248", kb.actions)
	}
}

func TestRecognize_Timeout(t *testing.T) {
	cfg := testConfig()
	cfg.RecognitionTimeout = 0
	probe := &fakeProber{idleSeq: []bool{false}}
	c := testController(t, cfg, &fakeKeyboard{}, probe)

	err := c.Recognize()
	if !errors.Is(err, batch.ErrRecognitionTimeout) {
		t.Errorf("ожидался ErrRecognitionTimeout, получено %v", err)
	}
}

func TestSave_Sequence(t *testing.T) {
	kb := &fakeKeyboard{}
	probe := &fakeProber{dialogSeq: []bool{true, false}}
	c := testController(t, testConfig(), kb, probe)

	if err := c.Save(`C:\csc_out\a.csc`); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if kb.actions[0] != "chord:shift+ctrl+m" {
		t.Errorf("первое действие %q, ожидалось сочетание экспорта", kb.actions[0])
	}
	if kb.actions[1] != `type:C:\csc_out\a.csc` {
		t.Errorf("второе действие %q, ожидался ввод пути", kb.actions[1])
	}
}

func TestSave_DialogStuck(t *testing.T) {
	cfg := testConfig()
	cfg.SaveTimeout = 0
	// Диалог открылся, но после Enter так и не закрылся
	probe := &fakeProber{dialogSeq: []bool{true, true}}
	c := testController(t, cfg, &fakeKeyboard{}, probe)

	err := c.Save(`C:\csc_out\a.csc`)
	if !errors.Is(err, batch.ErrSaveTimeout) {
		t.Errorf("ожидался ErrSaveTimeout, получено %v", err)
	}
}

func TestEnsureReady_WindowAlreadyVisible(t *testing.T) {
	probe := &fakeProber{mainVisible: true, origin: image.Point{X: 5, Y: 7}}
	c := testController(t, testConfig(), &fakeKeyboard{}, probe)

	if err := c.EnsureReady(); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if !c.originFound || c.origin.X != 5 || c.origin.Y != 7 {
		t.Errorf("угол окна не сохранен: %v", c.origin)
	}

	// Повторный вызов не должен ничего менять
	if err := c.EnsureReady(); err != nil {
		t.Fatalf("повторный EnsureReady: %v", err)
	}
}
