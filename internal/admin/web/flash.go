package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "adminbase_flash"

const (
	flashSuccess = "success"
	flashError   = "danger"
	flashInfo    = "info"
)

// Flash is a one-shot notice rendered on the next page view.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// flashBag collects notices rendered within the current response.
// Cookie flashes survive a redirect; bag flashes do not need to.
type flashBag struct {
	flashes []Flash
}

type flashKey struct{}

func withFlashBag(ctx context.Context) context.Context {
	return context.WithValue(ctx, flashKey{}, &flashBag{})
}

// inlineFlash queues a notice for a page rendered in this same
// response, e.g. a re-rendered form after a validation failure.
func inlineFlash(r *http.Request, category, message string) {
	if bag, ok := r.Context().Value(flashKey{}).(*flashBag); ok {
		bag.flashes = append(bag.flashes, Flash{Category: category, Message: message})
	}
}

func drainInline(r *http.Request) []Flash {
	bag, ok := r.Context().Value(flashKey{}).(*flashBag)
	if !ok {
		return nil
	}
	flashes := bag.flashes
	bag.flashes = nil
	return flashes
}

// addFlash queues a notice for the next page view by appending it to
// the flash cookie. Use it before a redirect.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes := readFlashes(r)
	flashes = append(flashes, Flash{Category: category, Message: message})

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns queued notices and clears the cookie.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	flashes := readFlashes(r)
	if len(flashes) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func readFlashes(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
