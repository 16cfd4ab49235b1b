package fetch

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeCORS},
		{in: "cors", want: ModeCORS},
		{in: "No-CORS", want: ModeNoCORS},
		{in: " same-origin ", want: ModeSameOrigin},
		{in: "navigate", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCacheMode(t *testing.T) {
	for _, in := range []string{"default", "no-store", "reload", "no-cache", "force-cache", "only-if-cached"} {
		got, err := ParseCacheMode(in)
		if err != nil {
			t.Errorf("ParseCacheMode(%q) unexpected error: %v", in, err)
		}
		if string(got) != in {
			t.Errorf("ParseCacheMode(%q) = %q", in, got)
		}
	}

	if got, err := ParseCacheMode(""); err != nil || got != CacheDefault {
		t.Errorf("ParseCacheMode(\"\") = %q, %v; want default", got, err)
	}
	if _, err := ParseCacheMode("stale"); err == nil {
		t.Error("ParseCacheMode(\"stale\") expected error")
	}
}

func TestOptionsNormalized_Defaults(t *testing.T) {
	o, err := Options{Method: " post "}.normalized()
	if err != nil {
		t.Fatalf("normalized() unexpected error: %v", err)
	}
	if o.Method != "POST" {
		t.Errorf("Method = %q, want POST", o.Method)
	}
	if o.Mode != ModeCORS {
		t.Errorf("Mode = %q, want cors", o.Mode)
	}
	if o.Cache != CacheDefault {
		t.Errorf("Cache = %q, want default", o.Cache)
	}
}

func TestError_Format(t *testing.T) {
	err := newErrorf(KindPolicy, "method %s is not allowed", "PUT")
	if got := err.Error(); got != "policy: method PUT is not allowed" {
		t.Errorf("Error() = %q", got)
	}
	if KindOf(err) != KindPolicy {
		t.Errorf("KindOf() = %q, want policy", KindOf(err))
	}
	if KindOf(nil) != "" {
		t.Error("KindOf(nil) should be empty")
	}
}
