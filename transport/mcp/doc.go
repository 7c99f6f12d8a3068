// Package mcp provides an MCP (Model Context Protocol) interface to the
// solver.
//
// The mcp package implements a thin MCP server that proxies all requests to
// the REST API, so MCP clients and HTTP clients always observe the same
// sessions and solve results.
//
// Tools exposed:
//   - create_session, get_session, list_sessions, delete_session
//   - list_configs, get_config
//   - solve_puzzle: run the breadth-first search for a session
//   - get_solution: fetch the step-by-step solution with rendered boards
//   - solver_instructions: usage guide for the toolset
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
