package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/mareas/internal/model"
)

type Type string

const (
	TypeNumber    Type = "number"
	TypeYear      Type = "year"
	TypeObserver  Type = "observer"
	TypeVessel    Type = "vessel"
	TypeStage     Type = "stage"
	TypeUnstage   Type = "unstage"
	TypeSpecies   Type = "species"
	TypeUnspecies Type = "unspecies"
	TypeToggle    Type = "toggle"
	TypeReset     Type = "reset"
	TypeRun       Type = "run"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldArgs carries the raw value for number and year.
type FieldArgs struct {
	Value string
}

// RefArgs names a catalog entry. None clears the selection.
type RefArgs struct {
	Key  string
	None bool
}

type StageArgs struct {
	Start time.Time
	End   time.Time
}

// IndexArgs is 1-based, as shown in the stage list.
type IndexArgs struct {
	Index int
}

type SpeciesArgs struct {
	ID string
}

type RunArgs struct {
	ActionID string
}

type Command struct {
	Type    Type
	Raw     string
	Field   *FieldArgs
	Ref     *RefArgs
	Stage   *StageArgs
	Index   *IndexArgs
	Species *SpeciesArgs
	Run     *RunArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch t := Type(head); t {
	case TypeNumber, TypeYear:
		return parseField(input, t, args)
	case TypeObserver, TypeVessel:
		return parseRef(input, t, args)
	case TypeStage:
		return parseStage(input, args)
	case TypeUnstage:
		return parseUnstage(input, args)
	case TypeSpecies, TypeUnspecies:
		return parseSpecies(input, t, args)
	case TypeToggle, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", t)}
		}
		return Command{Type: t, Raw: input}, nil
	case TypeRun:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "run requires an action id"}
		}
		return Command{Type: TypeRun, Raw: input, Run: &RunArgs{ActionID: strings.ToLower(args[0])}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseField(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one value", t)}
	}
	return Command{Type: t, Raw: raw, Field: &FieldArgs{Value: args[0]}}, nil
}

// Vessel names contain spaces, so the key is the rest of the line.
func parseRef(raw string, t Type, args []string) (Command, error) {
	key := strings.TrimSpace(strings.Join(args, " "))
	if key == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a key or none", t)}
	}
	if strings.EqualFold(key, "none") {
		return Command{Type: t, Raw: raw, Ref: &RefArgs{None: true}}, nil
	}
	return Command{Type: t, Raw: raw, Ref: &RefArgs{Key: key}}, nil
}

func parseStage(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "stage requires start and end dates"}
	}
	start, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad start date %q", args[0])}
	}
	end, err := model.ParseDate(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad end date %q", args[1])}
	}
	return Command{Type: TypeStage, Raw: raw, Stage: &StageArgs{Start: start, End: end}}, nil
}

func parseUnstage(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "unstage requires a stage number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad stage number %q", args[0])}
	}
	return Command{Type: TypeUnstage, Raw: raw, Index: &IndexArgs{Index: n}}, nil
}

func parseSpecies(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a species id", t)}
	}
	return Command{Type: t, Raw: raw, Species: &SpeciesArgs{ID: args[0]}}, nil
}
