package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gridlock-games/rushhour/game/puzzle"
	"github.com/gridlock-games/rushhour/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Large searches can take a while before the first response.
			Timeout: 120 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rush Hour Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

WHAT IT DOES:
Solves sliding-block traffic puzzles. Cars occupy 2 or 3 cells in a straight
line on a square grid and slide only along their own axis. The goal car (X)
must reach the right edge of its row and drive off the board. The solver runs
a breadth-first search, so the solution it reports is always a shortest one.

AVAILABLE TOOLS:
- create_session: Create a solve session for a puzzle configuration
- get_session / list_sessions / delete_session: Session management
- list_configs / get_config: Browse puzzle configurations
- solve_puzzle: Run the search (idempotent; repeat calls return the cached result)
- get_solution: Fetch the step-by-step solution with rendered boards
- solver_instructions: Full usage guide

Typical flow: list_configs, create_session, solve_puzzle, get_solution.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new solve session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the puzzle config to use (optional, defaults to the built-in beginner puzzle)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active solve sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session, including its board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a solve session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Solver operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Run the breadth-first search for a session's puzzle. Idempotent: repeated calls return the cached result.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_solution",
		Description: "Get the step-by-step solution for a solved session, with each board rendered and move arrows drawn in",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSolution)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available puzzle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_config",
		Description: "Get a puzzle configuration, including its layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config ID to retrieve",
				},
			},
			Required: []string{"config_id"},
		},
	}, c.handleGetConfig)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get comprehensive solver instructions and the board notation reference",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nStatus: %s\n\n%s",
		session.ID, session.ConfigName, session.Status, session.Board.String())
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response map[string]string
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["message"]), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.SolveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/solve", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(sessionID, &result)), nil
}

func (c *Client) handleGetSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var solution puzzle.Solution
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/solution", sessionID), nil, &solution)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(solution.Steps) == 0 {
		return mcp.NewToolResultText("No solution available for this session. Run solve_puzzle first."), nil
	}

	return mcp.NewToolResultText(formatSolution(&solution)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, exit row %d, %d cars\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.ExitRow, config.Cars)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	var config puzzle.Config
	err := c.apiCall("GET", fmt.Sprintf("/api/configs/%s", configID), nil, &config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\nBoard %dx%d, exit row %d:\n",
		config.Name, config.Description, config.BoardSize, config.BoardSize, config.ExitRow)
	for _, row := range config.Layout {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Rush Hour Solver - Complete Instructions

OBJECTIVE:
Given a starting arrangement of cars on a square grid, find the shortest
sequence of slides that lets the goal car (X) drive off the right edge of its
row (the exit row).

BOARD NOTATION:
• Upper-case letters - cars; each letter marks every cell of one car
• X - the goal car, always horizontal and on the exit row
• . - empty cell
• Cars are 2 or 3 cells long, in a straight line, and slide only along their
  own axis; they never rotate and never pass through each other

SOLUTION NOTATION:
Each solution step renders the board before a move with an arrow drawn on the
cell the moving car slides into:
• > < - a horizontal car slides right / left
• v ^ - a vertical car slides down / up
A car reaching the exit cell on the exit row drives off the board entirely;
the rendered row then extends one character past the right edge, ending in >.
The final step shows the winning board with no arrow.

SEARCH GUARANTEES:
The solver explores board states breadth-first, so the first solution it
finds has the minimum possible number of moves. When every reachable state
has been explored without freeing the goal car, the puzzle is reported as
unsolvable. Solving is idempotent per session: repeated solve_puzzle calls
return the cached result without searching again.

TYPICAL FLOW:
1. list_configs - see what puzzles are available
2. create_session with a config_id - get a session ID
3. solve_puzzle with the session ID - run the search
4. get_solution - fetch the rendered step-by-step solution

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions persist across server restarts, including solve results`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nStatus: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Status,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Board.String())
}

func formatSolveResult(sessionID string, result *service.SolveResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\nStatus: %s\n%s\n", sessionID, result.Status, result.Message)
	if result.Solved {
		fmt.Fprintf(&b, "\nMoves: %d\nStates explored: %d\nStates discovered: %d\n",
			result.Moves, result.StatesExplored, result.StatesDiscovered)
		b.WriteString("\nUse get_solution to fetch the step-by-step solution.")
	}
	return b.String()
}

func formatSolution(solution *puzzle.Solution) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Solution in %d moves (%d steps):\n\n", solution.Moves, len(solution.Steps))
	for _, step := range solution.Steps {
		fmt.Fprintf(&b, "Step %d", step.Number)
		if step.Move != nil {
			fmt.Fprintf(&b, ": car %s %s", step.Move.Car, step.Move.Direction)
			if step.Move.Exited {
				b.WriteString(" (exits the board)")
			}
		}
		b.WriteString("\n")
		b.WriteString(step.Rendered)
		b.WriteString("\n")
	}
	return b.String()
}
