package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	body := vdom.Main(
		vdom.ID(s.config.MountID),
		vdom.Data("hashroute", "mount"),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.RenderPage(w, render.PageData{
		Title:  s.config.Title,
		Body:   body,
		Styles: s.config.Styles,
		Scripts: []render.ScriptTag{
			{Inline: clientScript(s.config.MountID)},
		},
	})
	if err != nil {
		s.logger.Error("render shell failed", "error", err)
	}
}

// ResolveResponse is the body of GET /api/resolve.
type ResolveResponse struct {
	Hash     string   `json:"hash"`
	Base     string   `json:"base"`
	SubRoute string   `json:"subRoute"`
	Extra    []string `json:"extra,omitempty"`
	Route    string   `json:"route,omitempty"`
	Path     string   `json:"path,omitempty"`
	Fallback bool     `json:"fallback"`
	HTML     string   `json:"html,omitempty"`
	Code     string   `json:"code,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")
	m, err := s.router.Resolve(hash)

	resp := ResolveResponse{
		Hash:     hash,
		Base:     m.Fragment.Base,
		SubRoute: m.Fragment.SubRoute,
		Extra:    m.Fragment.Extra,
		Fallback: m.Fallback,
	}
	if err != nil {
		resp.Code = s.errorCode(err)
		resp.Error = err.Error()
		status := http.StatusBadRequest
		if errors.Is(err, router.ErrNoDefaultRoute) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, resp)
		return
	}

	resp.Route = m.Route.Name
	resp.Path = m.Route.Path
	if r.URL.Query().Get("render") != "" && m.Route.Template != nil {
		html, err := s.renderer.RenderToString(m.Route.Template())
		if err != nil {
			resp.Code = "render"
			resp.Error = err.Error()
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
		resp.HTML = html
	}
	writeJSON(w, http.StatusOK, resp)
}

// RouteInfo describes one registered route in GET /api/routes.
type RouteInfo struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	HasTemplate   bool   `json:"hasTemplate"`
	HasController bool   `json:"hasController"`
}

// RouteTable lists r's routes sorted by path.
func RouteTable(r *router.Router) []RouteInfo {
	routes := r.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		out = append(out, RouteInfo{
			Name:          route.Name,
			Path:          route.Path,
			HasTemplate:   route.Template != nil,
			HasController: route.Controller != nil,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RouteTable(s.router))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"routes":   s.router.Len(),
		"sessions": s.sessions.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
