package model

// Concepto classifies movimientos. Tipo: "ingreso" | "egreso".
type Concepto struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"type:varchar(100);not null;uniqueIndex:idx_concepto_nombre_tipo"`
	Tipo   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_concepto_nombre_tipo"`
}

func (Concepto) TableName() string { return "conceptos" }
