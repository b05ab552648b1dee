package entity

// Roles de usuario del ERP.
const (
	RoleAdmin     = "admin"
	RoleContador  = "contador"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Módulos y acciones sujetos a permisos.
const (
	ModuleContabilidad = "contabilidad"
	ModuleInventario   = "inventario"

	ActionView = "view"
	ActionEdit = "edit"
)

// Permission permiso de un rol sobre un módulo del ERP.
type Permission struct {
	Role   string
	Module string
	Action string
}
