package notify

import (
	"fmt"
	"os"
	"strings"
)

// DefaultRenderService is the service name assumed on Render when none is exported
const DefaultRenderService = "hubspot-cpq-app"

// BaseURLResolver determines the public base URL of the application when a link is built
type BaseURLResolver struct {
	override string
	port     int
	getenv   func(string) string
}

func NewBaseURLResolver(override string, port int) *BaseURLResolver {
	return &BaseURLResolver{override: override, port: port, getenv: os.Getenv}
}

// Resolve applies the order: configured override, detected Render hostname, localhost
func (r *BaseURLResolver) Resolve() string {
	if r.override != "" {
		return strings.TrimRight(r.override, "/")
	}
	if external := r.getenv("RENDER_EXTERNAL_URL"); external != "" {
		return strings.TrimRight(external, "/")
	}
	if r.getenv("RENDER") != "" {
		service := r.getenv("RENDER_SERVICE_NAME")
		if service == "" {
			service = DefaultRenderService
		}
		return fmt.Sprintf("https://%s.onrender.com", service)
	}
	port := r.port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("http://localhost:%d", port)
}
