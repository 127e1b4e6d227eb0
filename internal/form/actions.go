package form

// Action is one of the downstream batch processes offered once the trip is
// complete.
type Action struct {
	ID    string
	Label string
}

func DefaultActions() []Action {
	return []Action{
		{ID: "cortar-bases", Label: "Cortar bases"},
		{ID: "control-dias-horas", Label: "Control Dias horas Arrastrero"},
		{ID: "posiciones-especie", Label: "Posiciones con una especie arrastreros"},
		{ID: "resumen-produccion", Label: "Resumen produccion"},
		{ID: "distribucion-tallas", Label: "Distribución de tallas"},
		{ID: "distribucion-tallas-xxxx", Label: "Distribución de tallas XXXX"},
		{ID: "controla-archivo-l", Label: "Controla archivo L"},
		{ID: "largo-peso", Label: "Largo peso"},
		{ID: "reemplaza-especies", Label: "Reemplaza especies"},
		{ID: "resumen-muestra", Label: "Resumen muestra/maduros"},
		{ID: "buscar-codigo-barco", Label: "BUSCAR CODIGO BARCO/AIP"},
	}
}
