package handlers

import "net/http"

// ToggleTheme switches between the light and dark theme.
func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ToggleTheme()
	h.finish(w, r)
}

// DismissAlert closes the validation alert.
func (h *Handlers) DismissAlert(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DismissAlert()
	h.finish(w, r)
}
