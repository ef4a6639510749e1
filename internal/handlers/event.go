package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/eventlane/apiserver/internal/services"
	"github.com/eventlane/apiserver/internal/store"
	"github.com/eventlane/apiserver/types"
	"github.com/go-chi/chi/v5"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// EventHandler provides HTTP handlers for calendar events.
type EventHandler struct {
	eventService *services.EventService
	logger       *slog.Logger
}

// NewEventHandler constructs a handler with the provided dependencies.
func NewEventHandler(eventService *services.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// EventRouter registers event routes on the given router.
func EventRouter(r chi.Router, eventService *services.EventService, logger *slog.Logger) {
	handler := NewEventHandler(eventService, logger)

	r.Get("/", handler.ListEvents)
	r.Post("/", handler.CreateEvent)
	r.Route("/{eventID}", func(r chi.Router) {
		r.Get("/", handler.GetEvent)
		r.Put("/", handler.UpdateEvent)
		r.Delete("/", handler.DeleteEvent)
	})
}

type CreateEventRequest struct {
	UserID      int     `json:"userId"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

type CreateEventResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type UpdateEventRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

type MutationResponse struct {
	Message string `json:"message"`
	EventID int    `json:"eventId"`
}

// ListEvents returns the requesting user's events ordered by date and time.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	rawUserID := r.URL.Query().Get("userId")
	if rawUserID == "" {
		writeError(w, http.StatusBadRequest, "Missing userId")
		return
	}
	userID, err := strconv.Atoi(rawUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	events, err := h.eventService.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list events", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// CreateEvent inserts a new event for the given user.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if req.UserID == 0 || req.Title == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.eventService.Create(r.Context(), types.Event{
		UserID:      req.UserID,
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		h.logger.Error("failed to create event", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	writeJSON(w, http.StatusOK, CreateEventResponse{ID: id, Message: "Event created successfully"})
}

// GetEvent returns a single event by id.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to fetch event", "event_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent replaces all mutable fields of an event. Omitted description
// or link values overwrite the stored ones with null.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if req.Title == "" || req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := validateDateTime(req.Date, req.Time); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.eventService.Update(r.Context(), types.Event{
		ID:          id,
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to update event", "event_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	writeJSON(w, http.StatusOK, MutationResponse{Message: "Event updated successfully", EventID: id})
}

// DeleteEvent removes an event by id.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to delete event", "event_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, MutationResponse{Message: "Event deleted successfully", EventID: id})
}

func parseEventID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil || id < 1 {
		return 0, errors.New("Invalid event id")
	}
	return id, nil
}

func validateDateTime(date, timeOfDay string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return errors.New("Invalid date format, expected YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return errors.New("Invalid time format, expected HH:MM")
	}
	return nil
}
