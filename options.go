package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. COLLECT_ROOT.
const envPrefix = "COLLECT"

// Options is the resolved configuration of one run: defaults < env < flags.
type Options struct {
	Root      string
	Exts      []string
	Langs     []string
	Gitignore bool
	Pick      bool
	PDF       string
	Copy      bool
	Tokens    bool
	Tokenizer TokenizerOptions
}

// newConfig returns a viper instance reading COLLECT_* environment variables.
// No config file is consulted.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("tokenizer", "tiktoken")
	return v
}

// loadOptions reads the run configuration out of v.
func loadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		Root:      v.GetString("root"),
		Exts:      v.GetStringSlice("ext"),
		Langs:     v.GetStringSlice("lang"),
		Gitignore: v.GetBool("gitignore"),
		Pick:      v.GetBool("pick"),
		PDF:       v.GetString("pdf"),
		Copy:      v.GetBool("copy"),
		Tokens:    v.GetBool("tokens"),
		Tokenizer: TokenizerOptions{
			Type:  v.GetString("tokenizer"),
			Model: v.GetString("model"),
			File:  v.GetString("tokenizer-file"),
		},
	}

	if opts.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Options{}, fmt.Errorf("error determining working directory: %w", err)
		}
		opts.Root = wd
	}
	info, err := os.Stat(opts.Root)
	if err != nil {
		return Options{}, fmt.Errorf("error accessing root directory %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return Options{}, fmt.Errorf("root %s is not a directory", opts.Root)
	}
	return opts, nil
}
