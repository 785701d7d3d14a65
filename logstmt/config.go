package logstmt

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// PathType controls how the file is shown in a log prefix
type PathType string

const (
	PathShort  PathType = "short"
	PathFull   PathType = "full"
	PathCustom PathType = "custom"
)

// TagPosition places the line tag before or after the prefix
type TagPosition string

const (
	TagBegin TagPosition = "begin"
	TagEnd   TagPosition = "end"
)

// Config controls generated log statements
type Config struct {
	LogMethod        string      `yaml:"logMethod"`
	VarPilotSymbol   string      `yaml:"varPilotSymbol"`
	QuotationMark    string      `yaml:"quotationMark"`
	ShowLogSemicolon bool        `yaml:"showLogSemicolon"`
	ShowLineNumber   bool        `yaml:"showLineNumber"`
	ShowFilePath     bool        `yaml:"showFilePath"`
	FilePathType     PathType    `yaml:"filePathType"`
	LineTagPosition  TagPosition `yaml:"lineTagPosition"`
	CustomFormat     string      `yaml:"customFormat"`
}

func DefaultConfig() *Config {
	return &Config{
		LogMethod:       "console.log",
		VarPilotSymbol:  "::",
		QuotationMark:   `"`,
		FilePathType:    PathShort,
		LineTagPosition: TagBegin,
		CustomFormat:    "${filePath}: ${functionName}->${varName}${varPilotSymbol}",
	}
}

// quote returns the configured quotation mark; "single" and "double" are accepted as names
func (c *Config) quote() string {
	switch c.QuotationMark {
	case "single", "'":
		return "'"
	case "backtick", "`":
		return "`"
	}
	return `"`
}

// LoadConfig reads a yaml config from URL over the defaults
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if URL == "" {
		return ret, nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return ret, nil
}
