package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelpilot-org/reelpilot/pkg/api/dto"
	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/planner"
	"github.com/reelpilot-org/reelpilot/pkg/scriptwriter"
	"github.com/reelpilot-org/reelpilot/pkg/store"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// PlanGenerator produces a recording plan for an idea against a live device.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req planner.PlanRequest, port device.Port) (*types.RecordingPlan, error)
}

// ScriptGenerator produces a voiceover script for a plan's recording steps.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, req scriptwriter.ScriptRequest) (*types.VoiceoverScript, error)
}

// VideoHandler handles video-related requests.
type VideoHandler struct {
	store   store.Store
	planner PlanGenerator
	writer  ScriptGenerator
	port    device.Port // nil when the server has no device access
}

// NewVideoHandler creates a new VideoHandler. port may be nil; plan
// generation then reports the device as unavailable.
func NewVideoHandler(st store.Store, pl PlanGenerator, sw ScriptGenerator, port device.Port) *VideoHandler {
	return &VideoHandler{store: st, planner: pl, writer: sw, port: port}
}

// Create stores a new video record from an idea.
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	video := types.NewVideo(types.VideoIdea{
		Title:          req.Title,
		Description:    req.Description,
		Feature:        req.Feature,
		SetupSteps:     req.SetupSteps,
		RecordingSteps: req.RecordingSteps,
	})
	if err := h.store.SaveVideo(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromVideo(video))
}

// List returns all videos, newest first.
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.store.ListVideos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp := dto.VideoListResponse{Videos: make([]dto.VideoResponse, 0, len(videos))}
	for i := range videos {
		resp.Videos = append(resp.Videos, dto.FromVideo(&videos[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one video by id.
func (h *VideoHandler) Get(c *gin.Context) {
	video, ok := h.loadVideo(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromVideo(video))
}

// Delete removes a video record.
func (h *VideoHandler) Delete(c *gin.Context) {
	err := h.store.DeleteVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: true})
}

// GeneratePlan runs the planning conversation for a video against a device
// and persists the result. The call is synchronous; it returns when the plan
// is validated or the conversation fails.
func (h *VideoHandler) GeneratePlan(c *gin.Context) {
	video, ok := h.loadVideo(c)
	if !ok {
		return
	}

	if h.port == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "no device available on this server"})
		return
	}

	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.planner.GeneratePlan(c.Request.Context(), planner.PlanRequest{
		DeviceID: req.DeviceID,
		Idea:     video.Idea,
	}, h.port)
	if err != nil {
		if errors.Is(err, planner.ErrEmptyPlan) {
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	video.Plan = plan
	video.Stage = types.StagePlan
	if err := h.store.SaveVideo(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromVideo(video))
}

// GenerateScript produces a voiceover script for a planned video and
// persists it.
func (h *VideoHandler) GenerateScript(c *gin.Context) {
	video, ok := h.loadVideo(c)
	if !ok {
		return
	}

	if video.Plan == nil {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "video has no plan yet"})
		return
	}

	var req dto.GenerateScriptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	script, err := h.writer.GenerateScript(c.Request.Context(), scriptwriter.ScriptRequest{
		RecordingSteps:   video.Plan.RecordingSteps,
		VideoTitle:       video.Plan.Title,
		VideoDescription: video.Plan.Description,
		Prompt:           req.Prompt,
	})
	if err != nil {
		if errors.Is(err, scriptwriter.ErrInvalidActionIndex) {
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	video.Script = script
	video.Stage = types.StageScript
	if err := h.store.SaveVideo(c.Request.Context(), video); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromVideo(video))
}

func (h *VideoHandler) loadVideo(c *gin.Context) (*types.Video, bool) {
	video, err := h.store.GetVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "video not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return video, true
}
