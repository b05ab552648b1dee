package repository

import "context"

// Claves conocidas del mapa de configuración contable.
const (
	ConfigIVACreditoCuenta = "IVA_CREDITO_CUENTA"
	ConfigIVADebitoCuenta  = "IVA_DEBITO_CUENTA"
)

// ConfigRepository mapa clave→valor de configuración (solo lectura).
type ConfigRepository interface {
	// GetMany devuelve los valores encontrados; las claves ausentes no aparecen en el mapa.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
}
