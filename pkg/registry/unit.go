package registry

// Unit is a declared service as seen by registration: a name plus the
// operations the serving host will expose as endpoints. Registration
// never calls the operations; it only records their names.
type Unit interface {
	Name() string
	Endpoints() []string
}

// ServiceUnit is the standard Unit implementation. Endpoints are added by
// explicit registration calls rather than discovered by reflection, so
// the exposed set is enumerable and fixed before registration runs.
type ServiceUnit struct {
	name      string
	endpoints []string
}

func NewServiceUnit(name string) *ServiceUnit {
	return &ServiceUnit{name: name}
}

// AddEndpoint marks one operation for exposure. Returns the unit so
// declarations can be chained.
func (u *ServiceUnit) AddEndpoint(name string) *ServiceUnit {
	u.endpoints = append(u.endpoints, name)
	return u
}

func (u *ServiceUnit) Name() string { return u.name }

func (u *ServiceUnit) Endpoints() []string {
	out := make([]string, len(u.endpoints))
	copy(out, u.endpoints)
	return out
}
