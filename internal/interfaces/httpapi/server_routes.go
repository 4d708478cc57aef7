package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.Handle("POST /v1/auth/logout", RequireSession(resolver, http.HandlerFunc(handler.Logout)))
	mux.Handle("GET /v1/session", RequireSession(resolver, http.HandlerFunc(handler.GetSession)))
}

func registerEquipoRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver, prober TeamProber) {
	withSession := func(h http.HandlerFunc) http.Handler {
		return RequireSession(resolver, h)
	}
	withEquipo := func(h http.HandlerFunc) http.Handler {
		return RequireSession(resolver, RequireEquipo(prober, h))
	}

	// Creation is the one team route that must work without a team.
	mux.Handle("POST /v1/equipos", withSession(handler.CreateEquipo))
	mux.Handle("GET /v1/equipos/mi-equipo", withEquipo(handler.GetMiEquipo))
	mux.Handle("POST /v1/equipos/mi-equipo/seleccion", withEquipo(handler.ClickPlayer))
	mux.Handle("GET /v1/equipos/{equipoID}/historial", withEquipo(handler.GetHistorial))
	mux.Handle("GET /v1/equipos/{equipoID}/jornadas", withEquipo(handler.GetJornadaDetails))
	mux.Handle("GET /v1/equipos/{equipoID}/jornadas/{jornadaID}", withEquipo(handler.GetJornadaDetail))
}

func registerJornadaRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("GET /v1/jornadas", RequireSession(resolver, http.HandlerFunc(handler.ListJornadas)))
	mux.Handle("GET /v1/jornadas/{jornadaID}", RequireSession(resolver, http.HandlerFunc(handler.GetJornada)))
	mux.Handle("GET /v1/jornadas/{jornadaID}/partidos", RequireSession(resolver, http.HandlerFunc(handler.ListPartidosByJornada)))
	mux.Handle("GET /v1/config", RequireSession(resolver, http.HandlerFunc(handler.GetConfig)))
	mux.Handle("GET /v1/partidos", RequireSession(resolver, http.HandlerFunc(handler.ListPartidos)))
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("GET /v1/clubs", RequireSession(resolver, http.HandlerFunc(handler.ListClubs)))
	mux.Handle("GET /v1/positions", RequireSession(resolver, http.HandlerFunc(handler.ListPositions)))
	mux.Handle("GET /v1/players", RequireSession(resolver, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("GET /v1/players/{playerID}", RequireSession(resolver, http.HandlerFunc(handler.GetPlayer)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireSession(resolver, RequireAdmin(h))
	}

	mux.Handle("PATCH /v1/admin/config", admin(handler.UpdateConfig))
	mux.Handle("POST /v1/admin/jornadas/{jornadaID}/procesar", admin(handler.ProcesarJornada))
	mux.Handle("POST /v1/admin/jornadas/{jornadaID}/recalcular", admin(handler.RecalcularJornada))

	mux.Handle("POST /v1/clubs", admin(handler.CreateClub))
	mux.Handle("PUT /v1/clubs/{clubID}", admin(handler.UpdateClub))
	mux.Handle("DELETE /v1/clubs/{clubID}", admin(handler.DeleteClub))

	mux.Handle("POST /v1/positions", admin(handler.CreatePosition))
	mux.Handle("PUT /v1/positions/{positionID}", admin(handler.UpdatePosition))
	mux.Handle("DELETE /v1/positions/{positionID}", admin(handler.DeletePosition))

	mux.Handle("POST /v1/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/players/{playerID}", admin(handler.DeletePlayer))

	mux.Handle("GET /v1/users", admin(handler.ListUsers))
	mux.Handle("PATCH /v1/users/{userID}", admin(handler.UpdateUserRole))
	mux.Handle("DELETE /v1/users/{userID}", admin(handler.DeleteUser))

	mux.Handle("POST /v1/partidos", admin(handler.CreatePartido))
	mux.Handle("PUT /v1/partidos/{partidoID}", admin(handler.UpdatePartido))
	mux.Handle("DELETE /v1/partidos/{partidoID}", admin(handler.DeletePartido))
}
