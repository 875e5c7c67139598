package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts tokens in collected file content.
type Tokenizer interface {
	CountTokens(text string) int
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk  *hf.Tokenizer
	warn func(format string, args ...any)
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		if w.warn != nil {
			w.warn("HF tokenizer failed to encode text: %v", err)
		}
		return 0
	}
	return len(en.Tokens)
}

// --- Tokenizer Loading Logic ---

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// TokenizerOptions selects and configures a tokenizer.
type TokenizerOptions struct {
	Type  string // tiktoken or huggingface
	Model string
	File  string // Local tokenizer.json (huggingface only)
}

// loadTokenizer returns the tokenizer described by opts.
func loadTokenizer(opts TokenizerOptions, log Logger) (Tokenizer, error) {
	switch strings.ToLower(opts.Type) {
	case "", "tiktoken":
		return loadTiktoken(opts.Model, log)
	case "huggingface":
		return loadHuggingFace(opts, log)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", opts.Type)
	}
}

func loadTiktoken(model string, log Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		log.Warn("Tiktoken model '%s' not found, falling back to '%s': %v", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(opts TokenizerOptions, log Logger) (Tokenizer, error) {
	if opts.File != "" {
		ttk, err := pretrained.FromFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", opts.File, err)
		}
		return &HFTokenizerWrapper{htk: ttk, warn: log.Warn}, nil
	}

	model := opts.Model
	if model == "" {
		model = defaultHFModel
	}
	log.Progress("Loading HuggingFace tokenizer for model: %s (this may download files)", model)

	// CachedPath downloads tokenizer.json from the Hub on first use.
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk, warn: log.Warn}, nil
}
