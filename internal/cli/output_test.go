package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{
			name:    "text format",
			input:   "text",
			want:    OutputFormatText,
			wantErr: false,
		},
		{
			name:    "json format",
			input:   "json",
			want:    OutputFormatJSON,
			wantErr: false,
		},
		{
			name:    "empty string defaults to text",
			input:   "",
			want:    OutputFormatText,
			wantErr: false,
		},
		{
			name:    "invalid format",
			input:   "xml",
			want:    "",
			wantErr: true,
		},
		{
			name:    "invalid format yaml",
			input:   "yaml",
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputWriter_IsJSON(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		want   bool
	}{
		{
			name:   "json format returns true",
			format: OutputFormatJSON,
			want:   true,
		},
		{
			name:   "text format returns false",
			format: OutputFormatText,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := &OutputWriter{format: tt.format, writer: &buf}
			if got := w.IsJSON(); got != tt.want {
				t.Errorf("OutputWriter.IsJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputWriter_Write(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("json format writes data", func(t *testing.T) {
		var buf bytes.Buffer
		w := &OutputWriter{format: OutputFormatJSON, writer: &buf}

		called := false
		if err := w.Write(payload{Name: "server"}, func() { called = true }); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if called {
			t.Error("Write() called textFunc in JSON mode")
		}
		if !strings.Contains(buf.String(), `"name": "server"`) {
			t.Errorf("Write() output = %q, want JSON payload", buf.String())
		}
	})

	t.Run("text format calls textFunc", func(t *testing.T) {
		var buf bytes.Buffer
		w := &OutputWriter{format: OutputFormatText, writer: &buf}

		called := false
		if err := w.Write(payload{Name: "server"}, func() { called = true }); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !called {
			t.Error("Write() did not call textFunc in text mode")
		}
		if buf.Len() != 0 {
			t.Errorf("Write() wrote %q to writer in text mode", buf.String())
		}
	})
}
