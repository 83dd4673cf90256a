package entity_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/tjjh89017/fxsandbox/internal/entity"
	"pgregory.net/rapid"
)

func Test_InstanceId_Unique(t *testing.T) {
	seen := make(map[entity.InstanceId]bool)
	rapid.Check(t, func(t *rapid.T) {
		id, err := entity.GenerateInstanceId()
		if err != nil {
			t.Fatalf("GenerateInstanceId() error = %v", err)
		}
		if len(id) != 32 {
			t.Fatalf("Expected 32 hex chars, got %d", len(id))
		}
		if seen[id] {
			t.Fatalf("Instance id %s generated twice", id)
		}
		seen[id] = true
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func Test_ReadInstanceId(t *testing.T) {
	tests := []struct {
		name    string
		reader  io.Reader
		want    entity.InstanceId
		wantErr bool
	}{
		{
			name:   "sixteen bytes",
			reader: bytes.NewReader([]byte("0123456789abcdef")),
			want:   "30313233343536373839616263646566",
		},
		{
			name:    "short read",
			reader:  bytes.NewReader([]byte("short")),
			wantErr: true,
		},
		{
			name:    "reader failure",
			reader:  failingReader{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entity.ReadInstanceId(tt.reader)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadInstanceId() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, entity.ErrGenerateInstanceId) {
					t.Errorf("ReadInstanceId() error = %v, want %v", err, entity.ErrGenerateInstanceId)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ReadInstanceId() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_ParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    entity.Category
		wantErr bool
	}{
		{name: "background", value: "background", want: entity.CategoryBackground},
		{name: "hover", value: "hover", want: entity.CategoryHover},
		{name: "text", value: "text", want: entity.CategoryText},
		{name: "unknown", value: "sparkle", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entity.ParseCategory(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, entity.ErrInvalidCategory) {
				t.Errorf("ParseCategory() error = %v, want ErrInvalidCategory", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_CompositionReport_Clean(t *testing.T) {
	report := entity.NewCompositionReport("sandbox", []entity.PluginId{"a"})
	if !report.Clean() {
		t.Error("Expected a fresh report to be clean")
	}

	report.Unresolved = append(report.Unresolved, "a")
	if report.Clean() {
		t.Error("Expected report with unresolved ids to be unclean")
	}
}
