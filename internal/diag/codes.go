package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Построение выражений
	VarInfo           Code = 1000
	VarValueError     Code = 1001
	VarTypeError      Code = 1002
	MatchTypeError    Code = 1003
	ArgumentTypeError Code = 1004
	VarLiftError      Code = 1005

	// Манифест выражений
	ManInfo          Code = 2000
	ManDecodeError   Code = 2001
	ManUnknownKind   Code = 2002
	ManMissingField  Code = 2003
	ManDuplicateName Code = 2004

	// Конфигурация
	CfgInfo         Code = 3000
	CfgDecodeError  Code = 3001
	CfgUnknownKey   Code = 3002
	CfgInvalidValue Code = 3003

	// Рендеринг и кэш
	RenInfo       Code = 4000
	RenCacheError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:       "Unknown error",
		VarInfo:           "Expression information",
		VarValueError:     "Malformed expression arguments",
		VarTypeError:      "Invalid expression type",
		MatchTypeError:    "Match cases have incompatible return types",
		ArgumentTypeError: "Argument rejected by validator",
		VarLiftError:      "Value cannot be converted to an expression",
		ManInfo:           "Manifest information",
		ManDecodeError:    "Manifest cannot be decoded",
		ManUnknownKind:    "Unknown expression kind",
		ManMissingField:   "Missing required field",
		ManDuplicateName:  "Duplicate expression name",
		CfgInfo:           "Configuration information",
		CfgDecodeError:    "Configuration cannot be decoded",
		CfgUnknownKey:     "Unknown configuration key",
		CfgInvalidValue:   "Invalid configuration value",
		RenInfo:           "Rendering information",
		RenCacheError:     "Artifact cache failure",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("REN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
