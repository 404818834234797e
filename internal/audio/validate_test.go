package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		lang    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "bopomofo syllable",
			text: "ㄅㄛ",
			lang: "zh-TW",
		},
		{
			name: "single bopomofo symbol",
			text: "ㄓ",
			lang: "zh-TW",
		},
		{
			name: "han character",
			text: "媽",
			lang: "zh-TW",
		},
		{
			name: "gemini language code",
			text: "罵",
			lang: "cmn-CN",
		},
		{
			name:    "empty text",
			text:    "",
			lang:    "zh-TW",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			lang:    "zh-TW",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "latin text for chinese",
			text:    "ma",
			lang:    "zh-TW",
			wantErr: true,
			errMsg:  "no Han or Bopomofo",
		},
		{
			name:    "too long",
			text:    strings.Repeat("媽", MaxTextLength+1),
			lang:    "zh-TW",
			wantErr: true,
			errMsg:  "maximum is",
		},
		{
			name: "other language accepts latin",
			text: "hello",
			lang: "en",
		},
		{
			name:    "missing language",
			text:    "hello",
			lang:    "",
			wantErr: true,
			errMsg:  "language tag cannot be empty",
		},
		{
			name:    "malformed language",
			text:    "hello",
			lang:    "not_a_tag!",
			wantErr: true,
			errMsg:  "invalid language tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text, tt.lang)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateText() error = %v, want error containing %v", err, tt.errMsg)
			}
		})
	}
}
