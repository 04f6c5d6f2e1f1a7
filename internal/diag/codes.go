package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Reader
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006
	LexBadEscape                Code = 1007

	// Delimiter structure
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedDelimiter   Code = 2002
	SynUnmatchedCloser     Code = 2003
	SynMismatchedDelimiter Code = 2004

	// Hygiene
	HygInfo                Code = 3000
	HygInvalidKind         Code = 3001
	HygUnconstructibleKind Code = 3002
	HygInvalidOperation    Code = 3003
	HygMissingLocation     Code = 3004
	HygAmbiguousBinding    Code = 3005
	HygMissingPhase        Code = 3006
	HygAliasCycle          Code = 3007

	// Files, config, cache
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOConfigError   Code = 4002
	IOCacheError    Code = 4003
	IOSnapshotError Code = 4004

	// Scenario scripts
	ScnInfo        Code = 5000
	ScnBadStep     Code = 5001
	ScnUnknownOp   Code = 5002
	ScnBadRange    Code = 5003
	ScnBadBinding  Code = 5004
	ScnUnknownName Code = 5005

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid numeric literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegExp:       "Unterminated regular expression",
		LexBadEscape:                "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnmatchedCloser:          "Closing delimiter without opener",
		SynMismatchedDelimiter:      "Mismatched closing delimiter",
		HygInfo:                     "Hygiene information",
		HygInvalidKind:              "Invalid syntax kind",
		HygUnconstructibleKind:      "Syntax kind cannot be created",
		HygInvalidOperation:         "Invalid operation for syntax kind",
		HygMissingLocation:          "Token has no location info",
		HygAmbiguousBinding:         "Ambiguous binding",
		HygMissingPhase:             "Missing phase",
		HygAliasCycle:               "Alias cycle",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "I/O load file error",
		IOConfigError:               "Invalid configuration",
		IOCacheError:                "Cache error",
		IOSnapshotError:             "Snapshot error",
		ScnInfo:                     "Scenario information",
		ScnBadStep:                  "Invalid scenario entry",
		ScnUnknownOp:                "Unknown scenario operation",
		ScnBadRange:                 "Scenario range out of bounds",
		ScnBadBinding:               "Invalid scenario binding",
		ScnUnknownName:              "Unknown scope name",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("HYG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
