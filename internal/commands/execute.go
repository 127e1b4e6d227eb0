package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers binds each command to the form. Observer and Vessel share RefArgs;
// Species and Unspecies share SpeciesArgs.
type Handlers struct {
	Number    func(FieldArgs) (Result, error)
	Year      func(FieldArgs) (Result, error)
	Observer  func(RefArgs) (Result, error)
	Vessel    func(RefArgs) (Result, error)
	Stage     func(StageArgs) (Result, error)
	Unstage   func(IndexArgs) (Result, error)
	Species   func(SpeciesArgs) (Result, error)
	Unspecies func(SpeciesArgs) (Result, error)
	Toggle    func() (Result, error)
	Reset     func() (Result, error)
	Run       func(RunArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeNumber:
		return call(cmd.Type, handlers.Number, cmd.Field)
	case TypeYear:
		return call(cmd.Type, handlers.Year, cmd.Field)
	case TypeObserver:
		return call(cmd.Type, handlers.Observer, cmd.Ref)
	case TypeVessel:
		return call(cmd.Type, handlers.Vessel, cmd.Ref)
	case TypeStage:
		return call(cmd.Type, handlers.Stage, cmd.Stage)
	case TypeUnstage:
		return call(cmd.Type, handlers.Unstage, cmd.Index)
	case TypeSpecies:
		return call(cmd.Type, handlers.Species, cmd.Species)
	case TypeUnspecies:
		return call(cmd.Type, handlers.Unspecies, cmd.Species)
	case TypeRun:
		return call(cmd.Type, handlers.Run, cmd.Run)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call[A any](t Type, handler func(A) (Result, error), args *A) (Result, error) {
	if handler == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no arguments", t)}
	}
	return handler(*args)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
