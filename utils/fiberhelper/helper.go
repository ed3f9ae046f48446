package fiberhelpers

import (
	"fmt"
	"strings"
)

// ListenAddress : "8080" -> ":8080", "0.0.0.0:8080" 은 그대로
func ListenAddress(port string) string {
	if !strings.ContainsAny(port, ":") {
		return fmt.Sprintf(":%s", port)
	}
	return port
}
