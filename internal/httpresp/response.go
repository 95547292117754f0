package httpresp

import "github.com/gin-gonic/gin"

// ListResponse acompaña toda lista de agenda con la bandera verificado:
// una lista vacía sin verificar no prueba que el empleado esté libre.
type ListResponse[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Verificado bool `json:"verificado"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T, verificado bool) {
	c.JSON(200, ListResponse[T]{
		Data:       data,
		Total:      len(data),
		Verificado: verificado,
	})
}
