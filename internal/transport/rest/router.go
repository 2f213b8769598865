package rest

import "net/http"

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Leads     *LeadHandler
	UserLeads *UserLeadHandler
	Referrals *ReferralHandler
	Pipeline  *PipelineHandler
	Publish   *PublishHandler
	ParseJob  *ParseJobHandler
}

// NewRouter mounts all routes on a ServeMux. Method patterns make the mux
// answer 405 for unsupported methods on known paths.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	mux.HandleFunc("GET /api/leads", h.Leads.List)
	mux.HandleFunc("POST /api/leads", h.Leads.Create)
	mux.HandleFunc("GET /api/leads/{id}", h.Leads.Get)
	mux.HandleFunc("PUT /api/leads/{id}", h.Leads.Update)
	mux.HandleFunc("DELETE /api/leads/{id}", h.Leads.Delete)

	mux.HandleFunc("GET /api/user-leads", h.UserLeads.List)
	mux.HandleFunc("POST /api/user-leads", h.UserLeads.Save)
	mux.HandleFunc("GET /api/user-leads/{id}", h.UserLeads.Get)
	mux.HandleFunc("PUT /api/user-leads/{id}", h.UserLeads.Update)
	mux.HandleFunc("DELETE /api/user-leads/{id}", h.UserLeads.Remove)

	mux.HandleFunc("GET /api/referrals", h.Referrals.List)
	mux.HandleFunc("POST /api/referrals", h.Referrals.Create)
	mux.HandleFunc("GET /api/referrals/{id}", h.Referrals.Get)
	mux.HandleFunc("PUT /api/referrals/{id}", h.Referrals.Update)
	mux.HandleFunc("DELETE /api/referrals/{id}", h.Referrals.Delete)

	mux.HandleFunc("GET /api/pipeline", h.Pipeline.Get)
	mux.HandleFunc("POST /api/publish-leads", h.Publish.Publish)
	mux.HandleFunc("POST /api/parse-job-url", h.ParseJob.Parse)

	return mux
}
