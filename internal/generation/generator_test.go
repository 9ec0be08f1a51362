package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ignite/brandhub/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	brief := Brief{
		Name:        "Acme Coffee",
		Website:     "https://acme.coffee",
		Industry:    "Food & Beverage",
		Description: "Small-batch roaster in Portland.",
	}

	prompt := buildPrompt(brief, domain.KindStrategy, kindFields[domain.KindStrategy])

	for _, want := range []string{"Acme Coffee", "https://acme.coffee", "strategy", "target_audience"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("buildPrompt() missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_SkipsEmptyContext(t *testing.T) {
	prompt := buildPrompt(Brief{Name: "Acme"}, domain.KindVoice, kindFields[domain.KindVoice])
	if strings.Contains(prompt, "Website:") || strings.Contains(prompt, "About:") {
		t.Errorf("buildPrompt() included empty context lines:\n%s", prompt)
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{
			name: "plain object",
			text: `{"mission": "Roast better coffee", "target_audience": "Home brewers"}`,
			want: 2,
		},
		{
			name: "fenced object",
			text: "Here you go:\n```json\n{\"mission\": \"Roast better coffee\"}\n```",
			want: 1,
		},
		{
			name: "unknown keys dropped",
			text: `{"mission": "x", "confidence": "high"}`,
			want: 1,
		},
		{
			name: "blank values dropped",
			text: `{"mission": "  ", "differentiators": "Single origin"}`,
			want: 1,
		},
		{
			name:    "no json",
			text:    "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			text:    `{"mission": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFields(tt.text, kindFields[domain.KindStrategy])
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("parseFields() error = %v, want ErrUnavailable", err)
				}
				return
			}
			if len(got) != tt.want {
				t.Errorf("parseFields() returned %d fields, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestKindFieldsCoverAllKinds(t *testing.T) {
	for _, kind := range domain.ProfileKinds {
		if len(kindFields[kind]) == 0 {
			t.Errorf("kindFields missing entry for %s", kind)
		}
	}
}
