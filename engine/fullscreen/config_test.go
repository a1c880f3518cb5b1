package fullscreen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty keeps defaults",
			input: "",
			want:  DefaultConfig(),
		},
		{
			name: "per effect copies",
			input: `
copy_mode: per_effect
force_intermediate_with_post_process: false
`,
			want: Config{
				CopyMode:           CopyPerEffect,
				WarnPassIndex:      true,
				ScratchTextureName: DefaultConfig().ScratchTextureName,
			},
		},
		{
			name: "all keys",
			input: `
copy_mode: once
force_intermediate_with_post_process: true
warn_pass_index: false
scratch_texture_name: SceneCopy
`,
			want: Config{
				CopyMode:                         CopyOnce,
				ForceIntermediateWithPostProcess: true,
				ScratchTextureName:               "SceneCopy",
			},
		},
		{
			name:    "unknown copy mode",
			input:   "copy_mode: twice\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "copy_mode: [once\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseConfig = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fullscreen.yaml")
	if err := os.WriteFile(path, []byte("copy_mode: per_effect\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CopyMode != CopyPerEffect || !cfg.ForceIntermediateWithPostProcess {
		t.Errorf("LoadConfig = %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
