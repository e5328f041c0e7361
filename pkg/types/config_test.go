// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestClampQuality(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero maps to default", 0, DefaultQuality},
		{"below range", 10, MinQuality},
		{"lower bound", 50, 50},
		{"in range", 85, 85},
		{"upper bound", 100, 100},
		{"above range", 150, MaxQuality},
		{"negative", -5, MinQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampQuality(tt.in); got != tt.want {
				t.Errorf("ClampQuality(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEffectConfigNormalize(t *testing.T) {
	cfg := EffectConfig{Quality: 30}.Normalize()

	if cfg.Quality != MinQuality {
		t.Errorf("Quality = %d, want %d", cfg.Quality, MinQuality)
	}
	if cfg.Contrast != 1.0 || cfg.Sharpness != 1.0 || cfg.Brightness != 1.0 {
		t.Errorf("zero factors not defaulted: %+v", cfg)
	}
}

func TestDefaultEffectConfig(t *testing.T) {
	cfg := DefaultEffectConfig()

	if cfg.Quality != DefaultQuality {
		t.Errorf("Quality = %d, want %d", cfg.Quality, DefaultQuality)
	}
	if !cfg.Askew {
		t.Error("Askew should default to enabled")
	}
	if cfg.BlackAndWhite || cfg.Blur {
		t.Error("photocopy effects should default to disabled")
	}
}
