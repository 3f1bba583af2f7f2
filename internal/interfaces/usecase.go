package interfaces

import "github.com/gin-gonic/gin"

// Usecase is the handler surface the router wires up.
type Usecase interface {
	CallMetricsHandler(c *gin.Context)
	GetAnalyticsHandler(c *gin.Context)
}
