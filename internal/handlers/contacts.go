package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/memohai/targetresolver/internal/contacts"
)

// ContactStore is the contacts persistence used by ContactsHandler.
type ContactStore interface {
	Create(ctx context.Context, req contacts.CreateRequest) (contacts.Contact, error)
	GetByID(ctx context.Context, contactID string) (contacts.Contact, error)
	Search(ctx context.Context, botID, query string) ([]contacts.Contact, error)
	UpsertChannel(ctx context.Context, req contacts.ChannelRequest) (contacts.ContactChannel, error)
	ListChannelsByContact(ctx context.Context, contactID string) ([]contacts.ContactChannel, error)
}

type CreateContactRequest struct {
	UserID      string         `json:"user_id,omitempty" validate:"max=128"`
	DisplayName string         `json:"display_name" validate:"required_without=Alias,max=256"`
	Alias       string         `json:"alias,omitempty" validate:"max=256"`
	Tags        []string       `json:"tags,omitempty" validate:"max=32,dive,max=64"`
	Status      string         `json:"status,omitempty" validate:"omitempty,oneof=active blocked pending"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type ContactChannelRequest struct {
	Platform   string         `json:"platform" validate:"required,max=64"`
	ExternalID string         `json:"external_id" validate:"required,max=128"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type ContactListResponse struct {
	Items []contacts.Contact `json:"items"`
}

type ContactChannelListResponse struct {
	Items []contacts.ContactChannel `json:"items"`
}

// ContactsHandler manages the contacts that back the local directory.
type ContactsHandler struct {
	store    ContactStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewContactsHandler returns a handler over store. A nil store registers no routes.
func NewContactsHandler(log *slog.Logger, store *contacts.Store) *ContactsHandler {
	if log == nil {
		log = slog.Default()
	}
	h := &ContactsHandler{
		validate: validator.New(),
		logger:   log.With(slog.String("handler", "contacts")),
	}
	if store != nil {
		h.store = store
	}
	return h
}

func (h *ContactsHandler) Register(e *echo.Echo) {
	if h.store == nil {
		return
	}
	group := e.Group("/bots/:bot_id/contacts")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.GET("/:id/channels", h.ListChannels)
	group.PUT("/:id/channels", h.UpsertChannel)
}

// List godoc
// @Summary List contacts
// @Description Search a bot's contacts by name, alias or platform id
// @Tags contacts
// @Param bot_id path string true "Bot ID"
// @Param q query string false "Search query"
// @Success 200 {object} ContactListResponse
// @Failure 400 {object} ErrorResponse
// @Router /bots/{bot_id}/contacts [get]
func (h *ContactsHandler) List(c echo.Context) error {
	botID, err := requiredParam(c, "bot_id", "bot id is required")
	if err != nil {
		return err
	}
	items, err := h.store.Search(c.Request().Context(), botID, c.QueryParam("q"))
	if err != nil {
		return h.internalError("search contacts", err)
	}
	if items == nil {
		items = []contacts.Contact{}
	}
	return c.JSON(http.StatusOK, ContactListResponse{Items: items})
}

// Get godoc
// @Summary Get contact
// @Tags contacts
// @Param bot_id path string true "Bot ID"
// @Param id path string true "Contact ID"
// @Success 200 {object} contacts.Contact
// @Failure 404 {object} ErrorResponse
// @Router /bots/{bot_id}/contacts/{id} [get]
func (h *ContactsHandler) Get(c echo.Context) error {
	item, err := h.loadContact(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create contact
// @Tags contacts
// @Param bot_id path string true "Bot ID"
// @Param payload body CreateContactRequest true "Contact"
// @Success 201 {object} contacts.Contact
// @Failure 400 {object} ErrorResponse
// @Router /bots/{bot_id}/contacts [post]
func (h *ContactsHandler) Create(c echo.Context) error {
	botID, err := requiredParam(c, "bot_id", "bot id is required")
	if err != nil {
		return err
	}
	var req CreateContactRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	item, err := h.store.Create(c.Request().Context(), contacts.CreateRequest{
		BotID:       botID,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Alias:       req.Alias,
		Tags:        req.Tags,
		Status:      req.Status,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return h.internalError("create contact", err)
	}
	return c.JSON(http.StatusCreated, item)
}

// ListChannels godoc
// @Summary List contact channels
// @Tags contacts
// @Param bot_id path string true "Bot ID"
// @Param id path string true "Contact ID"
// @Success 200 {object} ContactChannelListResponse
// @Failure 404 {object} ErrorResponse
// @Router /bots/{bot_id}/contacts/{id}/channels [get]
func (h *ContactsHandler) ListChannels(c echo.Context) error {
	item, err := h.loadContact(c)
	if err != nil {
		return err
	}
	channels, err := h.store.ListChannelsByContact(c.Request().Context(), item.ID)
	if err != nil {
		return h.internalError("list contact channels", err)
	}
	if channels == nil {
		channels = []contacts.ContactChannel{}
	}
	return c.JSON(http.StatusOK, ContactChannelListResponse{Items: channels})
}

// UpsertChannel godoc
// @Summary Link contact to a platform id
// @Description Links the contact to a platform id, moving an existing link for that id
// @Tags contacts
// @Param bot_id path string true "Bot ID"
// @Param id path string true "Contact ID"
// @Param payload body ContactChannelRequest true "Channel"
// @Success 200 {object} contacts.ContactChannel
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bots/{bot_id}/contacts/{id}/channels [put]
func (h *ContactsHandler) UpsertChannel(c echo.Context) error {
	item, err := h.loadContact(c)
	if err != nil {
		return err
	}
	var req ContactChannelRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	link, err := h.store.UpsertChannel(c.Request().Context(), contacts.ChannelRequest{
		ContactID:  item.ID,
		Platform:   strings.ToLower(strings.TrimSpace(req.Platform)),
		ExternalID: req.ExternalID,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return h.internalError("upsert contact channel", err)
	}
	return c.JSON(http.StatusOK, link)
}

// loadContact fetches the contact named by the path, scoped to the path's bot.
func (h *ContactsHandler) loadContact(c echo.Context) (contacts.Contact, error) {
	botID, err := requiredParam(c, "bot_id", "bot id is required")
	if err != nil {
		return contacts.Contact{}, err
	}
	id, err := requiredParam(c, "id", "contact id is required")
	if err != nil {
		return contacts.Contact{}, err
	}
	item, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, contacts.ErrNotFound) || (err == nil && item.BotID != botID) {
		return contacts.Contact{}, echo.NewHTTPError(http.StatusNotFound, contacts.ErrNotFound.Error())
	}
	if err != nil {
		return contacts.Contact{}, h.internalError("get contact", err)
	}
	return item, nil
}

func (h *ContactsHandler) bind(c echo.Context, out any) error {
	if err := c.Bind(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *ContactsHandler) internalError(op string, err error) error {
	h.logger.Error(op+" failed", slog.Any("error", err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func requiredParam(c echo.Context, name, message string) (string, error) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, message)
	}
	return value, nil
}
