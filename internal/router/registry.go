package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its own routes on the API group.
type Module interface {
	Mount(rg *gin.RouterGroup)
}

// Registry collects feature modules and mounts them under a shared base
// path so main wires routes in one place.
type Registry struct {
	engine  *gin.Engine
	api     *gin.RouterGroup
	modules []Module
}

func New(engine *gin.Engine, base string) *Registry {
	if base == "" {
		base = "/api"
	}
	return &Registry{engine: engine, api: engine.Group(base)}
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// Mount registers every added module on the API group.
func (r *Registry) Mount() {
	for _, m := range r.modules {
		m.Mount(r.api)
	}
}
