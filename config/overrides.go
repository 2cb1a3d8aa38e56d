/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by NewViper.
const EnvPrefix = "SNIPFMT"

// NewViper returns a viper instance reading SNIPFMT_* environment variables,
// with dashes in keys mapped to underscores (print-width -> SNIPFMT_PRINT_WIDTH).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key set in v (flag or environment) onto cfg.
// Keys use the CLI flag names.
func ApplyOverrides(cfg *Config, v *viper.Viper) {
	setString(v, "body", &cfg.Body)
	setString(v, "formatter", &cfg.Formatter)
	setString(v, "prettier", &cfg.Prettier)
	setInt(v, "concurrency", &cfg.Concurrency)
	if v.IsSet("continue-on-error") {
		cfg.ContinueOnError = v.GetBool("continue-on-error")
	}
	if v.IsSet("verify") {
		cfg.Verify = v.GetBool("verify")
	}

	f := &cfg.Formatting
	setInt(v, "print-width", &f.PrintWidth)
	setInt(v, "tab-width", &f.TabWidth)
	setBool(v, "use-tabs", &f.UseTabs)
	setBool(v, "semi", &f.Semi)
	setBool(v, "single-quote", &f.SingleQuote)
	setString(v, "trailing-comma", &f.TrailingComma)
	setBool(v, "bracket-spacing", &f.BracketSpacing)
	setBool(v, "jsx-bracket-same-line", &f.JSXBracketSameLine)
	setInt(v, "range-start", &f.RangeStart)
	setInt(v, "range-end", &f.RangeEnd)
	setString(v, "parser", &f.Parser)
	setString(v, "filepath", &f.Filepath)
	setBool(v, "require-pragma", &f.RequirePragma)
	setBool(v, "insert-pragma", &f.InsertPragma)
	setString(v, "prose-wrap", &f.ProseWrap)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setBool(v *viper.Viper, key string, dst **bool) {
	if v.IsSet(key) {
		b := v.GetBool(key)
		*dst = &b
	}
}
