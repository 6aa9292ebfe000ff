package program

import (
	"fmt"
	"strings"
)

// Language is a programming language a benchmark can be written in.
type Language int

const (
	LangC Language = iota + 1
	LangCpp
	LangRust
	LangGo
	LangAda
	LangJava
	LangZig
)

// Languages lists every supported language.
var Languages = []Language{LangC, LangCpp, LangRust, LangGo, LangAda, LangJava, LangZig}

// ParseLanguage maps a file suffix, with or without the leading dot, to
// its language.
func ParseLanguage(suffix string) (Language, error) {
	switch strings.TrimPrefix(strings.ToLower(suffix), ".") {
	case "c":
		return LangC, nil
	case "cpp", "cc", "cxx":
		return LangCpp, nil
	case "rs":
		return LangRust, nil
	case "go":
		return LangGo, nil
	case "adb", "ada":
		return LangAda, nil
	case "java":
		return LangJava, nil
	case "zig":
		return LangZig, nil
	}
	return 0, fmt.Errorf("unsupported language suffix %q", suffix)
}

// String returns the key the language is configured under: the canonical
// file suffix.
func (l Language) String() string {
	switch l {
	case LangC:
		return "c"
	case LangCpp:
		return "cpp"
	case LangRust:
		return "rs"
	case LangGo:
		return "go"
	case LangAda:
		return "adb"
	case LangJava:
		return "java"
	case LangZig:
		return "zig"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// DisplayName is the human-readable name used in reports.
func (l Language) DisplayName() string {
	switch l {
	case LangC:
		return "C"
	case LangCpp:
		return "C++"
	case LangRust:
		return "Rust"
	case LangGo:
		return "Go"
	case LangAda:
		return "Ada"
	case LangJava:
		return "Java"
	case LangZig:
		return "Zig"
	}
	return l.String()
}

// envPrefix names the make variables of a language, e.g. CPP_TOOL.
func (l Language) envPrefix() string {
	return strings.ToUpper(l.String())
}
