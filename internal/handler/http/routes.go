package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. The policy middleware runs before every handler,
// including the not-found one.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		h.withTraceID,
		withLogging,
		middleware.Recoverer,
		middleware.CleanPath,
		middleware.GetHead,
		h.withSecurityHeaders,
		withGZip,
		h.withSession,
		h.withCSRF,
		h.withPolicy,
	)

	static := staticHandler()
	router.Get("/css/*", static.ServeHTTP)
	router.Get("/js/*", static.ServeHTTP)

	router.Get("/", h.home)
	router.Get("/login", h.loginPage)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
	router.Get("/whoami", h.whoami)
	router.Get("/version", h.getServerVersion)

	router.Get("/users", h.listUsers)
	router.Post("/users", h.register)
	router.Get("/users/new", h.registrationPage)
	router.Get("/users/{id:[0-9]+}", h.showUser)
	router.Post("/users/{id:[0-9]+}", h.updateUser)
	router.Get("/users/{id:[0-9]+}/edit", h.editUserPage)
	router.Post("/users/{id:[0-9]+}/delete", h.deleteUser)

	router.Get("/courses", h.listCourses)
	router.Post("/courses", h.createCourse)
	router.Get("/courses/new", h.newCoursePage)
	router.Post("/courses/enroll", h.enroll)
	router.Get("/courses/{id:[0-9]+}", h.showCourse)
	router.Post("/courses/{id:[0-9]+}", h.updateCourse)
	router.Get("/courses/{id:[0-9]+}/edit", h.editCoursePage)
	router.Post("/courses/{id:[0-9]+}/delete", h.deleteCourse)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
