package codeassist

import (
	"fmt"
	"strings"
)

// Language is a target language accepted by the code service
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"

	DefaultLanguage = LanguagePython
)

// LanguageOption pairs a language with its display label
type LanguageOption struct {
	Language Language
	Label    string
}

// closed set, in presentation order
var languages = []LanguageOption{
	{Language: LanguagePython, Label: "Python"},
	{Language: LanguageJavaScript, Label: "JavaScript"},
}

// returns the supported languages in presentation order
func SupportedLanguages() []LanguageOption {
	out := make([]LanguageOption, len(languages))
	copy(out, languages)
	return out
}

// validates and normalizes a language name
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if !lang.Valid() {
		return "", fmt.Errorf("unsupported language: %s", s)
	}

	return lang, nil
}

// reports whether l is in the supported set
func (l Language) Valid() bool {
	for _, opt := range languages {
		if opt.Language == l {
			return true
		}
	}

	return false
}

// returns the display label, or the raw value for unknown languages
func (l Language) Label() string {
	for _, opt := range languages {
		if opt.Language == l {
			return opt.Label
		}
	}

	return string(l)
}

// REST API request/response types

type GenerateRequest struct {
	Language         Language `json:"language"`
	ProblemStatement string   `json:"problem_statement"`
}

type GenerateResponse struct {
	Language Language `json:"language,omitempty"`
	Code     string   `json:"code"`
}

type OptimizeRequest struct {
	Language Language `json:"language"`
	Code     string   `json:"code"`
}

type OptimizeResponse struct {
	Language        Language `json:"language,omitempty"`
	OriginalCode    string   `json:"original_code,omitempty"`
	OptimizedCode   string   `json:"optimized_code"`
	Improvements    []string `json:"improvements,omitempty"`
	PerformanceGain string   `json:"performance_gain,omitempty"`
}

// wire shapes used to detect missing required fields
type generateResponseBody struct {
	Language Language `json:"language"`
	Code     *string  `json:"code"`
}

type optimizeResponseBody struct {
	Language        Language `json:"language"`
	OriginalCode    string   `json:"original_code"`
	OptimizedCode   *string  `json:"optimized_code"`
	Improvements    []string `json:"improvements"`
	PerformanceGain string   `json:"performance_gain"`
}

const (
	generateEndpoint = "/generate-code"
	optimizeEndpoint = "/optimize-code"
)
