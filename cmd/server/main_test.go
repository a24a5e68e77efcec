package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwaggerURL(t *testing.T) {
	tests := []struct {
		host string
		port string
		want string
	}{
		{"", "8080", "http://localhost:8080/swagger/index.html"},
		{"market.example.com", "8080", "http://market.example.com/swagger/index.html"},
		{"https://market.example.com/", "8080", "https://market.example.com/swagger/index.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, swaggerURL(tt.host, tt.port))
	}
}
