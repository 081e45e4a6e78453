package entity

// Status estado de ciclo de vida de usuarios, tiendas y productos.
// En almacenamiento se persiste como is_active (1 = active, 0 = inactive).
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	// StatusSuspended reservado; este núcleo no lo persiste.
	StatusSuspended Status = "suspended"
)

// StatusFromFlag traduce la columna is_active al estado de dominio.
func StatusFromFlag(isActive int16) Status {
	if isActive == 1 {
		return StatusActive
	}
	return StatusInactive
}

// Flag devuelve el valor 0/1 de is_active para el estado.
func (s Status) Flag() int16 {
	if s == StatusActive {
		return 1
	}
	return 0
}

// IsActive indica si el registro aparece en los listados.
func (s Status) IsActive() bool { return s == StatusActive }
