package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogHandler serves the public course catalog. None of its routes fail on
// backend outages; the service degrades instead.
type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
	exportService  services.ExportService
}

func NewCatalogHandler(catalogService services.CatalogService, exportService services.ExportService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		exportService:  exportService,
	}
}

// ListCourses returns every catalog course
// @Summary List catalog courses
// @Tags catalog
// @Produce json
// @Success 200 {array} models.CatalogCourse
// @Router /catalog/courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.ListCourses(c.Request.Context()))
}

// SearchCourses filters the catalog
// @Summary Search catalog courses
// @Tags catalog
// @Produce json
// @Param q query string false "Search term"
// @Param category query string false "Exact category"
// @Param level query string false "Exact level"
// @Success 200 {array} models.CatalogCourse
// @Router /catalog/search [get]
func (h *CatalogHandler) SearchCourses(c *gin.Context) {
	courses := h.catalogService.SearchCourses(c.Request.Context(), c.Query("q"), c.Query("category"), c.Query("level"))
	if courses == nil {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CatalogHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.GetCourseStats(c.Request.Context()))
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.GetCourseCategories(c.Request.Context()))
}

func (h *CatalogHandler) GetLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.GetCourseLevels(c.Request.Context()))
}

// ExportCatalog downloads the catalog as a spreadsheet
// @Summary Export catalog
// @Tags catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /catalog/export [get]
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	data, err := h.exportService.ExportCatalog(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	filename := "catalog-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
