package update

import (
	"errors"

	"github.com/sandeepkv93/mareas/internal/form"
)

// describeError maps form failures to the operator-facing text; anything
// else is shown as is.
func describeError(err error) string {
	var overlap *form.OverlapError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &overlap):
		return "la etapa se superpone con " + overlap.Existing.String()
	case errors.Is(err, form.ErrInvalidRange):
		return "la fecha final es anterior a la inicial"
	case errors.Is(err, form.ErrDuplicate):
		return "la especie ya está en la lista"
	case errors.Is(err, form.ErrActionsDisabled):
		return "complete la marea para habilitar los procesos"
	case errors.Is(err, form.ErrUnknownAction):
		return "proceso desconocido"
	case errors.Is(err, form.ErrActionNotImplemented):
		return "proceso no disponible todavía"
	default:
		return err.Error()
	}
}

func actionLabel(actions []form.Action, id string) string {
	for _, a := range actions {
		if a.ID == id {
			return a.Label
		}
	}
	return id
}
