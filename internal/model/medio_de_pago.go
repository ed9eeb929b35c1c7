package model

// MedioDePago is a payment method (efectivo, transferencia, tarjeta, cheque).
type MedioDePago struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"type:varchar(60);uniqueIndex;not null"`
}

func (MedioDePago) TableName() string { return "medios_de_pago" }
