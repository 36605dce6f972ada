package catalog

import (
	"net/http"

	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"

	"github.com/gin-gonic/gin"
)

// Module exposes the college catalog over HTTP.
type Module struct {
	catalog *Catalog
}

// NewModule creates the catalog module.
func NewModule(c *Catalog) *Module {
	return &Module{catalog: c}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Catalog returns the catalog served by this module.
func (m *Module) Catalog() *Catalog {
	return m.catalog
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/colleges", m.listColleges)
}

type collegesResponse struct {
	Items []College `json:"items"`
}

// listColleges returns the reference catalog.
// GET /api/v1/colleges
func (m *Module) listColleges(c *gin.Context) {
	c.JSON(http.StatusOK, collegesResponse{Items: m.catalog.Colleges()})
}

var _ apphttp.Module = (*Module)(nil)
