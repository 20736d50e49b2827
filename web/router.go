package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every endpoint. Reads on public resources go through
// OptionalAuth so anonymous viewers get the un-enriched feed; all
// mutations require a viewer.
func NewRouter(
	auth *AuthMiddleware,
	flows *FlowHandler,
	engagement *EngagementHandler,
	follow *FollowHandler,
	dashboard *DashboardHandler) http.Handler {

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/posts", func(r chi.Router) {
		r.With(auth.OptionalAuth).Get("/", flows.GetFeed)
		r.With(auth.OptionalAuth).Get("/{postId}", flows.GetFlow)
		r.With(auth.OptionalAuth).Get("/{postId}/comments", engagement.GetComments)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", flows.CreateDraft)
			r.Get("/me", flows.GetOwnFlows)
			r.Get("/drafts", flows.GetDrafts)
			r.Get("/history", flows.GetHistory)
			r.Get("/bookmarked", flows.GetBookmarked)
			r.Get("/liked", flows.GetLiked)
			r.Patch("/{postId}/title", flows.UpdateTitle)
			r.Patch("/{postId}/description", flows.UpdateDescription)
			r.Patch("/{postId}/content", flows.UpdateContent)
			r.Post("/{postId}/publish", flows.Publish)
			r.Delete("/{postId}", flows.Delete)
			r.Post("/{postId}/like", engagement.ToggleLike)
			r.Post("/{postId}/view", engagement.RecordView)
			r.Post("/{postId}/bookmark", engagement.ToggleBookmark)
			r.Post("/{postId}/comments", engagement.AddComment)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/{commentId}/like", engagement.ToggleCommentLike)
		r.Delete("/{commentId}", engagement.DeleteComment)
	})

	r.Route("/follow", func(r chi.Router) {
		r.Get("/followers/{userId}", follow.GetFollowers)
		r.Get("/following/{userId}", follow.GetFollowing)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/{userId}", follow.ToggleFollow)
			r.Get("/suggestions", follow.GetSuggestions)
			r.Delete("/followers/{followerId}", follow.RemoveFollower)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/views", dashboard.ViewsReceived)
		r.Get("/views/daily", dashboard.ViewsPerDay)
		r.Get("/followers", dashboard.FollowerGrowth)
		r.Get("/recent", dashboard.RecentFlows)
	})

	r.With(auth.OptionalAuth).Get("/tags", flows.GetTags)
	r.With(auth.RequireAuth).Post("/reports", flows.ReportFlow)

	return r
}
