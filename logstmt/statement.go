package logstmt

import (
	"path"
	"strconv"
	"strings"

	"github.com/viant/logrush/analyzer"
	"github.com/viant/logrush/document"
)

// Method is a console log level
type Method string

const (
	Log            Method = "log"
	Info           Method = "info"
	Warn           Method = "warn"
	Error          Method = "error"
	Debug          Method = "debug"
	Trace          Method = "trace"
	Table          Method = "table"
	Group          Method = "group"
	GroupCollapsed Method = "groupCollapsed"
	GroupEnd       Method = "groupEnd"
	Clear          Method = "clear"
	Count          Method = "count"
	CountReset     Method = "countReset"
	Time           Method = "time"
	TimeLog        Method = "timeLog"
)

var methods = []Method{Log, Info, Warn, Error, Debug, Trace, Table, Group, GroupCollapsed, GroupEnd, Clear, Count, CountReset, Time, TimeLog}

// Methods returns the supported log levels
func Methods() []Method {
	return append([]Method(nil), methods...)
}

// IsValid reports whether m is a supported level
func (m Method) IsValid() bool {
	for _, candidate := range methods {
		if candidate == m {
			return true
		}
	}
	return false
}

// placeholder stands in for the variable when nothing is selected
const placeholder = "$1"

// Edit is a text insertion
type Edit struct {
	Position document.Position `yaml:"position"`
	Text     string            `yaml:"text"`
	// Cursor is where the selection lands after the edit
	Cursor document.Position `yaml:"cursor"`
}

// callee returns the function invoked for method, falling back to the configured one
func callee(cfg *Config, method Method) string {
	if method == "" {
		return cfg.LogMethod
	}
	return "console." + string(method)
}

// contextPath renders object->function, function or nothing
func contextPath(info analyzer.ContextInfo) string {
	if info.ObjectName != "" && info.FunctionName != "" {
		return info.ObjectName + "->" + info.FunctionName
	}
	return info.FunctionName
}

func normalize(location string) string {
	return strings.ReplaceAll(location, "\\", "/")
}

// Build renders the log statement for varName selected in doc
func Build(doc document.Document, selection document.Selection, varName string, info analyzer.ContextInfo, cfg *Config, method Method) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if varName == "" {
		varName = placeholder
	}
	fullPath := normalize(doc.FileName())
	fileName := path.Base(fullPath)
	relativePath := path.Join(path.Base(path.Dir(fullPath)), fileName)
	lineTag := ""
	if cfg.ShowLineNumber {
		lineTag = "l:" + strconv.Itoa(selection.End.Line+1)
	}
	ctxPath := contextPath(info)

	var prefix string
	if cfg.FilePathType == PathCustom && cfg.CustomFormat != "" {
		prefix = strings.NewReplacer(
			"${fileName}", fileName,
			"${filePath}", relativePath,
			"${fullPath}", fullPath,
			"${functionName}", info.FunctionName,
			"${objectName}", info.ObjectName,
			"${contextPath}", ctxPath,
			"${varName}", varName,
			"${lineNumber}", lineTag,
			"${varPilotSymbol}", cfg.VarPilotSymbol,
		).Replace(cfg.CustomFormat)
	} else {
		location := ""
		if cfg.ShowFilePath {
			location = fileName
			if cfg.FilePathType == PathFull {
				location = relativePath
			}
		}
		subject := varName + cfg.VarPilotSymbol
		if ctxPath != "" {
			subject = ctxPath + "->" + subject
		}
		parts := []string{location, subject}
		if lineTag != "" {
			if cfg.LineTagPosition == TagEnd {
				parts = append(parts, lineTag)
			} else {
				parts = append([]string{lineTag}, parts...)
			}
		}
		prefix = join(parts)
	}

	q := cfg.quote()
	builder := strings.Builder{}
	builder.WriteString(callee(cfg, method))
	builder.WriteString("(")
	builder.WriteString(q + prefix + q)
	builder.WriteString(", ")
	builder.WriteString(varName)
	builder.WriteString(")")
	if cfg.ShowLogSemicolon {
		builder.WriteString(";")
	}
	return builder.String()
}

func join(parts []string) string {
	var ret []string
	for _, part := range parts {
		if part != "" {
			ret = append(ret, part)
		}
	}
	return strings.Join(ret, " ")
}

// indentOf returns the leading whitespace of a line
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// Plan computes the edit that logs varName after its declaration
func Plan(doc document.Document, selection document.Selection, varName string, a *analyzer.Analyzer, cfg *Config, method Method) Edit {
	info := a.ResolveContext(doc, selection.Start)
	point := a.ResolveInsertionPoint(doc, selection, varName)
	statement := Build(doc, selection, varName, info, cfg, method)
	indent := indentOf(doc.LineText(point.Line))
	text := "\n" + indent + statement
	return Edit{
		Position: point.Position(),
		Text:     text,
		Cursor:   document.Position{Line: point.Line + 1, Character: len([]rune(indent + statement))},
	}
}

// Apply writes the edit into doc and returns the cursor position
func Apply(doc *document.TextDocument, edit Edit) document.Position {
	doc.Insert(edit.Position, edit.Text)
	return edit.Cursor
}
