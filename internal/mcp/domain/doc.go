// Package domain translates MCP tool calls into covering engine operations.
package domain
