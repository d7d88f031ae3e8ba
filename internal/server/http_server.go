package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Run serves the router on the given port until the listener fails.
func Run(router *gin.Engine, port string) {
	addr := ":8080"
	if port != "" {
		addr = ":" + port
	}
	if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
