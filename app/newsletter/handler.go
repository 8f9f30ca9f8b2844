// Package newsletter holds the public signup endpoint and the
// subscriber listing used by the back-office export.
package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/models"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SubscriberResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

type SubscriberProvider interface {
	GetAll() ([]models.Subscriber, error)
	Create(subscriber *models.Subscriber) error
}

type NewsletterHandler struct {
	repo SubscriberProvider
}

func NewNewsletterHandler(r SubscriberProvider) *NewsletterHandler {
	return &NewsletterHandler{repo: r}
}

func (h *NewsletterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.repo.GetAll()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch subscribers")
		return
	}

	response := make([]SubscriberResponse, len(subscribers))
	for i, s := range subscribers {
		response[i] = SubscriberResponse{ID: s.ID, Email: s.Email, SubscribedAt: s.SubscribedAt}
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// HandleSubscribe validates the email shape before anything reaches
// storage; the same address subscribes at most once.
func (h *NewsletterHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		api.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	if !emailRe.MatchString(email) {
		api.Error(w, http.StatusBadRequest, "invalid email")
		return
	}

	subscriber := &models.Subscriber{Email: email}
	if err := h.repo.Create(subscriber); err != nil {
		if errors.Is(err, models.ErrEmailAlreadySubscribed) {
			api.Error(w, http.StatusBadRequest, "email already subscribed")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"subscriber": SubscriberResponse{
			ID:           subscriber.ID,
			Email:        subscriber.Email,
			SubscribedAt: subscriber.SubscribedAt,
		},
	})
}
