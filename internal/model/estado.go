package model

// EstadoOrden is the lifecycle state of a work order. The numeric value is the
// primary key of the matching row in the estados lookup table.
type EstadoOrden uint

const (
	EstadoIniciado            EstadoOrden = 1
	EstadoEnTaller            EstadoOrden = 2
	EstadoCompletadaPorTaller EstadoOrden = 3
	EstadoFinalizada          EstadoOrden = 4
)

// EstadosOrden lists every state in display order.
func EstadosOrden() []EstadoOrden {
	return []EstadoOrden{EstadoIniciado, EstadoEnTaller, EstadoCompletadaPorTaller, EstadoFinalizada}
}

// String returns the name stored in the estados table.
func (e EstadoOrden) String() string {
	switch e {
	case EstadoIniciado:
		return "Iniciado"
	case EstadoEnTaller:
		return "En taller"
	case EstadoCompletadaPorTaller:
		return "Completada por taller"
	case EstadoFinalizada:
		return "Finalizada"
	default:
		return "desconocido"
	}
}

// Valido reports whether e is one of the known states.
func (e EstadoOrden) Valido() bool {
	switch e {
	case EstadoIniciado, EstadoEnTaller, EstadoCompletadaPorTaller, EstadoFinalizada:
		return true
	default:
		return false
	}
}

// Estado is the immutable lookup row referenced by ordenes_de_trabajo.estado_id.
type Estado struct {
	ID     EstadoOrden `gorm:"primaryKey;autoIncrement:false"`
	Nombre string      `gorm:"type:varchar(50);uniqueIndex;not null"`
}

func (Estado) TableName() string { return "estados" }
