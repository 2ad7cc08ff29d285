package batch

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewWorkItem(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		want   string
	}{
		{"обычное имя", filepath.Join("in", "score.png"), "out", filepath.Join("out", "score.csc")},
		{"верхний регистр расширения", filepath.Join("in", "score.PNG"), "out", filepath.Join("out", "score.csc")},
		{"точка в имени", filepath.Join("in", "op.27 no.2.png"), "out", filepath.Join("out", "op.27 no.2.csc")},
		{"пробелы в имени", filepath.Join("in", "page 01.png"), "out", filepath.Join("out", "page 01.csc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewWorkItem(tt.input, tt.outDir)
			if item.Output != tt.want {
				t.Errorf("Output = %q, want %q", item.Output, tt.want)
			}
			if item.Input != tt.input {
				t.Errorf("Input = %q, want %q", item.Input, tt.input)
			}
		})
	}
}

func TestBatchSummary_Throughput(t *testing.T) {
	s := &BatchSummary{Succeeded: 6, TotalTime: 3 * time.Minute}
	if got := s.Throughput(); got != 2.0 {
		t.Errorf("Throughput = %v, want 2.0", got)
	}

	empty := &BatchSummary{}
	if got := empty.Throughput(); got != 0 {
		t.Errorf("Throughput пустого батча = %v, want 0", got)
	}
}

func TestBatchSummary_Attempted(t *testing.T) {
	s := &BatchSummary{Succeeded: 3, Failed: 2, Skipped: 4}
	if got := s.Attempted(); got != 5 {
		t.Errorf("Attempted = %d, want 5", got)
	}
}
