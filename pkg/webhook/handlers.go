package webhook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/voxlane/voxlane/pkg/pipeline"
)

// voiceQueryRequest is the POST /webhook body. The body may arrive as
// plain JSON or as a base64-wrapped JSON document.
type voiceQueryRequest struct {
	RequestID string `json:"request_id"`
	AudioData string `json:"audio_data"`
}

// errorEnvelope is the single error shape returned to callers.
type errorEnvelope struct {
	Error  string `json:"error"`
	Stage  string `json:"stage,omitempty"`
	Status int    `json:"status"`

	// Best-effort diagnostics from partially completed runs.
	Transcript string `json:"transcript,omitempty"`
	ReplyText  string `json:"reply_text,omitempty"`
	Language   string `json:"language,omitempty"`
}

// handleVerify echoes the webhook challenge when the verify token matches.
func (s *Server) handleVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == s.verifyToken {
		return c.SendString(challenge)
	}

	s.logger.Warn("webhook verification rejected", "mode", mode)
	return c.Status(fiber.StatusForbidden).JSON(errorEnvelope{
		Error:  "webhook verification failed",
		Status: fiber.StatusForbidden,
	})
}

// handleVoiceQuery decodes the inbound audio request and runs the pipeline.
func (s *Server) handleVoiceQuery(c *fiber.Ctx) error {
	req, err := decodeBody(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorEnvelope{
			Error:  err.Error(),
			Status: fiber.StatusBadRequest,
		})
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	result, err := s.pipeline.Process(c.UserContext(), pipeline.Request{
		ID:          req.RequestID,
		AudioBase64: req.AudioData,
	})
	if err != nil {
		return s.sendError(c, req.RequestID, err)
	}

	return c.JSON(result)
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.version,
	})
}

// handleMetrics exposes pipeline counters in Prometheus text format.
func (s *Server) handleMetrics(c *fiber.Ctx) error {
	m := s.pipeline.Metrics().Snapshot()

	body := fmt.Sprintf(`# HELP voxlane_requests_total Voice query requests received
# TYPE voxlane_requests_total counter
voxlane_requests_total %d

# HELP voxlane_failures_total Failed voice query requests
# TYPE voxlane_failures_total counter
voxlane_failures_total %d
`, m.Requests, m.Failures)

	for stage, n := range m.FailuresByStage {
		body += fmt.Sprintf("voxlane_stage_failures_total{stage=%q} %d\n", string(stage), n)
	}
	for stage, d := range m.AvgStageLatency {
		body += fmt.Sprintf("voxlane_stage_latency_avg_ms{stage=%q} %d\n", string(stage), d.Milliseconds())
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(body)
}

// sendError maps a pipeline error onto the HTTP envelope.
func (s *Server) sendError(c *fiber.Ctx, requestID string, err error) error {
	env := errorEnvelope{
		Error:  err.Error(),
		Status: fiber.StatusInternalServerError,
	}

	if pe, ok := err.(*pipeline.Error); ok {
		env.Stage = string(pe.Stage)
		env.Status = pe.Status
		env.Transcript = pe.Transcript
		env.ReplyText = pe.ReplyText
		env.Language = pe.Language
	}

	s.logger.Error("voice query failed",
		"request_id", requestID,
		"stage", env.Stage,
		"status", env.Status,
		"error", err,
	)
	return c.Status(env.Status).JSON(env)
}

// decodeBody parses the request body, accepting plain JSON or a
// base64-wrapped JSON document.
func decodeBody(body []byte) (*voiceQueryRequest, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty request body")
	}

	raw := body
	if decoded, err := base64.StdEncoding.DecodeString(string(body)); err == nil && json.Valid(decoded) {
		raw = decoded
	}

	var req voiceQueryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return &req, nil
}
