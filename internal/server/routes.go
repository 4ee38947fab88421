package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"used_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Post("/", handler(s.postV1Search))
			r.Get("/{id}", handler(s.getV1Search))
			r.Post("/{id}/renew", handler(s.postV1SearchRenew))
			r.Delete("/{id}", handler(s.deleteV1Search))
		})

		r.Get("/accounts/{id}/listings", handler(s.getV1AccountListings))

		r.Route("/listings/{id}", func(r chi.Router) {
			r.Post("/inspection", handler(s.postV1Inspection))
			r.Delete("/inspection", handler(s.deleteV1Inspection))
			r.Post("/offer", handler(s.postV1Offer))
			r.Post("/counter/decline", handler(s.postV1DeclineCounter))
			r.Post("/purchase", handler(s.postV1Purchase))
		})

		r.Route("/clock", func(r chi.Router) {
			r.Get("/", handler(s.getV1Clock))
			r.Post("/month", handler(s.postV1AdvanceMonth))
			r.Post("/hour", handler(s.postV1AdvanceHour))
		})

		r.Post("/state/save", handler(s.postV1SaveState))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
