// Package service wires MCP transports to the tower service.
package service
