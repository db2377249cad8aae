package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/decompose"
	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/answer"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// DisambiguateResponse is the result of the disambiguate_story tool.
type DisambiguateResponse struct {
	Sentences []string `json:"sentences" jsonschema_description:"Containment sentences in discovery order"`
}

// ScoreResponse is the result of the score_answer tool.
type ScoreResponse struct {
	Correct    bool   `json:"correct" jsonschema_description:"Whether the response selects the given option"`
	Normalized string `json:"normalized" jsonschema_description:"The response after answer normalization"`
}

// Server exposes a TaskRunner as an MCP server.
type Server struct {
	runner    ports.TaskRunner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(runner ports.TaskRunner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		runner:    runner,
		logger:    logger,
		mcpServer: server.NewMCPServer("decompose-mcp", decompose.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: decompose_task
	taskTool := mcp.NewTool("decompose_task",
		mcp.WithDescription("Answer a nested-belief question about a story by peeling one belief layer at a time."),
		mcp.WithString("story", mcp.Required(), mcp.Description("The story or conversation")),
		mcp.WithString("question", mcp.Required(), mcp.Description("The belief question")),
		mcp.WithString("choices", mcp.Description("Answer options as shown to the model")),
		mcp.WithString("note", mcp.Description("Extra rules for the answer prompt")),
		mcp.WithNumber("max_recursion", mcp.Description("Maximum number of belief layers to peel (0 = unbounded)")),
		mcp.WithOutputSchema[domain.Result](),
	)
	s.mcpServer.AddTool(taskTool, mcp.NewStructuredToolHandler(s.handleTask))

	// TOOL: disambiguate_story
	disambTool := mcp.NewTool("disambiguate_story",
		mcp.WithDescription("List which room each container of a HiToM-style story is in."),
		mcp.WithString("story", mcp.Required(), mcp.Description("The story text")),
		mcp.WithOutputSchema[DisambiguateResponse](),
	)
	s.mcpServer.AddTool(disambTool, mcp.NewStructuredToolHandler(s.handleDisambiguate))

	// TOOL: score_answer
	scoreTool := mcp.NewTool("score_answer",
		mcp.WithDescription("Check whether a free-form response selects the option with the given letter."),
		mcp.WithString("response", mcp.Required(), mcp.Description("The model response")),
		mcp.WithString("letter", mcp.Required(), mcp.Description("The correct option letter")),
		mcp.WithOutputSchema[ScoreResponse](),
	)
	s.mcpServer.AddTool(scoreTool, mcp.NewStructuredToolHandler(s.handleScore))
}

func (s *Server) handleTask(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (domain.Result, error) {
	var task domain.Task
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &task,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Result{}, err
	}
	if err := dec.Decode(args); err != nil {
		return domain.Result{}, fmt.Errorf("invalid arguments: %w", err)
	}

	res, err := s.runner.StartTask(ctx, task)
	if err != nil {
		s.logger.Error("MCP decompose_task failed", "error", err)
		return domain.Result{}, fmt.Errorf("task failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleDisambiguate(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (DisambiguateResponse, error) {
	story, _ := args["story"].(string)
	sentences, err := s.runner.Disambiguate(ctx, story)
	if err != nil {
		return DisambiguateResponse{}, fmt.Errorf("disambiguation failed: %w", err)
	}
	if sentences == nil {
		sentences = []string{}
	}
	return DisambiguateResponse{Sentences: sentences}, nil
}

func (s *Server) handleScore(_ context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (ScoreResponse, error) {
	response, _ := args["response"].(string)
	letter, _ := args["letter"].(string)
	return ScoreResponse{
		Correct:    answer.IsCorrect(response, letter),
		Normalized: answer.Normalize(response),
	}, nil
}
