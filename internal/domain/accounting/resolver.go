// Package accounting contiene las reglas puras de expansión de plantillas contables:
// resolución de la cuenta de cada línea y construcción de las líneas del comprobante.
package accounting

import (
	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// GenericAccount cuenta de último recurso cuando ningún otro criterio aplica.
const GenericAccount = "999"

// defaultAccounts tabla fija rol→cuenta. Única tabla de cuentas por defecto del sistema.
var defaultAccounts = map[entity.LineRole]string{
	entity.RoleGasto:      "600",
	entity.RoleIngreso:    "700",
	entity.RoleIVACredito: "472",
	entity.RoleIVADebito:  "477",
	entity.RoleProveedor:  "400",
	entity.RoleCliente:    "430",
	entity.RoleCajaBanco:  "110",
}

// Origen de la cuenta resuelta.
const (
	SourceFixed   = "fija"
	SourceConfig  = "configuracion"
	SourceRole    = "rol"
	SourceGeneric = "generica"
)

// DefaultAccount devuelve la cuenta por defecto del rol, si la tiene.
func DefaultAccount(role entity.LineRole) (string, bool) {
	acc, ok := defaultAccounts[role]
	return acc, ok
}

// ConfigKeys claves del mapa de configuración que consume el resolver.
func ConfigKeys() []string {
	return []string{repository.ConfigIVACreditoCuenta, repository.ConfigIVADebitoCuenta}
}

// Resolver resuelve la cuenta contable de una línea de plantilla.
type Resolver struct {
	taxAccounts map[entity.LineRole]string
	fallback    string
}

// NewResolver construye el resolver a partir del mapa de configuración
// (claves IVA_CREDITO_CUENTA / IVA_DEBITO_CUENTA; valores vacíos se ignoran).
func NewResolver(cfg map[string]string) Resolver {
	tax := make(map[entity.LineRole]string, 2)
	if v := cfg[repository.ConfigIVACreditoCuenta]; v != "" {
		tax[entity.RoleIVACredito] = v
	}
	if v := cfg[repository.ConfigIVADebitoCuenta]; v != "" {
		tax[entity.RoleIVADebito] = v
	}
	return Resolver{taxAccounts: tax, fallback: GenericAccount}
}

// Resolve aplica la precedencia: cuenta fija → cuenta de impuesto configurada →
// cuenta por defecto del rol → cuenta genérica. La primera que aplica gana.
func (r Resolver) Resolve(line entity.TemplateLine) (account, source string, err error) {
	switch {
	case line.FixedAccount != "":
		account, source = line.FixedAccount, SourceFixed
	case line.Role.IsTax() && r.taxAccounts[line.Role] != "":
		account, source = r.taxAccounts[line.Role], SourceConfig
	default:
		if acc, ok := defaultAccounts[line.Role]; ok {
			account, source = acc, SourceRole
		} else {
			account, source = r.fallback, SourceGeneric
		}
	}
	if account == "" {
		return "", "", domain.ErrAccountUnresolved
	}
	return account, source, nil
}
