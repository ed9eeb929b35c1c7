package dto

type TitularRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=80"`
	Apellido  string  `json:"apellido"  validate:"required,min=2,max=80"`
	Documento *string `json:"documento" validate:"omitempty,max=20"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=40"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type TitularResponse struct {
	ID        uint               `json:"id"`
	Nombre    string             `json:"nombre"`
	Apellido  string             `json:"apellido"`
	Documento *string            `json:"documento"`
	Telefono  *string            `json:"telefono"`
	Email     *string            `json:"email"`
	Direccion *string            `json:"direccion"`
	Vehiculos []VehiculoResponse `json:"vehiculos,omitempty"`
}

type VehiculoRequest struct {
	ModeloID uint    `json:"modelo_id" validate:"required"`
	Patente  string  `json:"patente"   validate:"required,min=6,max=10"`
	Anio     *int    `json:"anio"      validate:"omitempty,min=1900,max=2100"`
	Color    *string `json:"color"     validate:"omitempty,max=30"`
}

type VehiculoResponse struct {
	ID                uint    `json:"id"`
	TitularVehiculoID *uint   `json:"titular_vehiculo_id,omitempty"`
	ModeloID          uint    `json:"modelo_id"`
	Marca             string  `json:"marca"`
	Modelo            string  `json:"modelo"`
	Patente           string  `json:"patente"`
	Anio              *int    `json:"anio"`
	Color             *string `json:"color"`
}

type VincularVehiculoRequest struct {
	VehiculoID uint `json:"vehiculo_id" validate:"required"`
}

type TitularVehiculoResponse struct {
	ID         uint   `json:"id"`
	TitularID  uint   `json:"titular_id"`
	VehiculoID uint   `json:"vehiculo_id"`
	Titular    string `json:"titular"`
	Patente    string `json:"patente"`
}
