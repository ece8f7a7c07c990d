package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const serviceName = "voxhire"

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

// PingFunc probes one backing dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	dependencies  map[string]PingFunc
	timeout       time.Duration
}

// NewHealthHandler reports readiness from the AI provider, the prompt
// templates and each named dependency probe (mongo, redis, s3).
func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, dependencies map[string]PingFunc) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		dependencies:  dependencies,
		timeout:       2 * time.Second,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{Status: "failed", Message: "AI provider not initialized"}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil {
		checks["prompt_manager"] = ReadinessCheck{Status: "failed", Message: "Prompt manager not initialized"}
		allChecksPass = false
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{Status: "failed", Message: "No prompt templates loaded"}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	names := make([]string, 0, len(handler.dependencies))
	for name := range handler.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctx, cancel := context.WithTimeout(request.Context(), handler.timeout)
		err := handler.dependencies[name](ctx)
		cancel()
		if err != nil {
			checks[name] = ReadinessCheck{Status: "failed", Message: err.Error()}
			allChecksPass = false
			continue
		}
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: serviceName,
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
