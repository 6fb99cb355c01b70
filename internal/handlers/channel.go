package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/memohai/targetresolver/internal/channel"
)

// TargetService is the channel service surface used by the HTTP API.
type TargetService interface {
	ListDescriptors() []channel.Descriptor
	GetDescriptor(platform string) (channel.Descriptor, error)
	ParseTarget(req channel.TargetRequest) (channel.TargetResult, error)
	ResolveTarget(ctx context.Context, req channel.TargetRequest) (channel.TargetResult, error)
	ChannelID(platform, input string) (string, error)
}

// TargetRequest is the body of the parse and resolve endpoints.
type TargetRequest struct {
	Input            string `json:"input" validate:"max=512"`
	DefaultKind      string `json:"default_kind,omitempty" validate:"omitempty,oneof=user channel"`
	AmbiguousMessage string `json:"ambiguous_message,omitempty" validate:"max=512"`
	BotID            string `json:"bot_id,omitempty" validate:"max=128"`
}

// ChannelIDResponse is the body returned by the channel-id endpoint.
type ChannelIDResponse struct {
	Platform  channel.Type `json:"platform"`
	ChannelID string       `json:"channel_id"`
}

type ChannelHandler struct {
	service  TargetService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewChannelHandler(log *slog.Logger, service TargetService) *ChannelHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ChannelHandler{
		service:  service,
		validate: validator.New(),
		logger:   log.With(slog.String("handler", "channel")),
	}
}

func (h *ChannelHandler) Register(e *echo.Echo) {
	group := e.Group("/channels")
	group.GET("", h.ListChannels)
	group.GET("/:platform", h.GetChannel)
	group.POST("/:platform/targets/parse", h.ParseTarget)
	group.POST("/:platform/targets/resolve", h.ResolveTarget)
	group.GET("/:platform/channel-id", h.ChannelID)
}

// ListChannels godoc
// @Summary List channels
// @Description List registered channels and the recipient formats they accept
// @Tags channel
// @Success 200 {array} channel.Descriptor
// @Router /channels [get]
func (h *ChannelHandler) ListChannels(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListDescriptors())
}

// GetChannel godoc
// @Summary Get channel
// @Tags channel
// @Param platform path string true "Channel platform"
// @Success 200 {object} channel.Descriptor
// @Failure 404 {object} ErrorResponse
// @Router /channels/{platform} [get]
func (h *ChannelHandler) GetChannel(c echo.Context) error {
	desc, err := h.service.GetDescriptor(c.Param("platform"))
	if err != nil {
		return targetHTTPError(err)
	}
	return c.JSON(http.StatusOK, desc)
}

// ParseTarget godoc
// @Summary Parse recipient
// @Description Interpret a recipient string without directory access
// @Tags channel
// @Param platform path string true "Channel platform"
// @Param payload body TargetRequest true "Recipient"
// @Success 200 {object} channel.TargetResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /channels/{platform}/targets/parse [post]
func (h *ChannelHandler) ParseTarget(c echo.Context) error {
	req, err := h.bindTargetRequest(c)
	if err != nil {
		return err
	}
	res, err := h.service.ParseTarget(req)
	if err != nil {
		return targetHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// ResolveTarget godoc
// @Summary Resolve recipient
// @Description Interpret a recipient string, looking names up in the channel directory
// @Tags channel
// @Param platform path string true "Channel platform"
// @Param payload body TargetRequest true "Recipient"
// @Success 200 {object} channel.TargetResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{platform}/targets/resolve [post]
func (h *ChannelHandler) ResolveTarget(c echo.Context) error {
	req, err := h.bindTargetRequest(c)
	if err != nil {
		return err
	}
	res, err := h.service.ResolveTarget(c.Request().Context(), req)
	if err != nil {
		httpErr := targetHTTPError(err)
		if httpErr.Code >= http.StatusInternalServerError {
			h.logger.Error("resolve target failed",
				slog.String("platform", req.Platform),
				slog.Any("error", err),
			)
		}
		return httpErr
	}
	return c.JSON(http.StatusOK, res)
}

// ChannelID godoc
// @Summary Extract channel id
// @Tags channel
// @Param platform path string true "Channel platform"
// @Param input query string true "Channel reference"
// @Success 200 {object} ChannelIDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /channels/{platform}/channel-id [get]
func (h *ChannelHandler) ChannelID(c echo.Context) error {
	platform := c.Param("platform")
	id, err := h.service.ChannelID(platform, c.QueryParam("input"))
	if err != nil {
		return targetHTTPError(err)
	}
	return c.JSON(http.StatusOK, ChannelIDResponse{
		Platform:  channel.Type(strings.ToLower(strings.TrimSpace(platform))),
		ChannelID: id,
	})
}

func (h *ChannelHandler) bindTargetRequest(c echo.Context) (channel.TargetRequest, error) {
	var body TargetRequest
	if err := c.Bind(&body); err != nil {
		return channel.TargetRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(body); err != nil {
		return channel.TargetRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	kind, err := channel.ParseTargetKind(body.DefaultKind)
	if err != nil {
		return channel.TargetRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return channel.TargetRequest{
		Platform:         c.Param("platform"),
		Input:            body.Input,
		DefaultKind:      kind,
		AmbiguousMessage: body.AmbiguousMessage,
		BotID:            body.BotID,
	}, nil
}

// targetHTTPError maps channel errors to HTTP status codes.
func targetHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, channel.ErrUnsupportedType):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, channel.ErrNoMatch):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, channel.ErrAmbiguousMatch):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, channel.ErrAmbiguousInput),
		errors.Is(err, channel.ErrInvalidMention),
		errors.Is(err, channel.ErrKindMismatch),
		errors.Is(err, channel.ErrTargetRequired),
		errors.Is(err, channel.ErrEmptyTargetID),
		errors.Is(err, channel.ErrInvalidTargetKind),
		errors.Is(err, channel.ErrTargetUnsupported):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
