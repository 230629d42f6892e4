package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
)

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.services.CourseService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "courses", "Courses", courses, nil)
}

func (h *Handler) showCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	course, err := h.services.CourseService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "course", course.Title, course, nil)
}

func (h *Handler) newCoursePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "course_form", "New course", courseForm{Action: "/courses"}, nil)
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	payload, mismatches, err := decodeCoursePayload(form)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	rerender := func(errs validators.FieldErrors) {
		h.render(w, r, http.StatusOK, "course_form", "New course", courseFormFromValues("/courses", false, form), errs)
	}

	if len(mismatches) > 0 {
		errs, err := h.withStructuralErrors(ctx, payload, mismatches)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		rerender(errs)
		return
	}

	course, err := h.services.CourseService.Create(ctx, payload, currentPrincipal(r).Username)
	if err != nil {
		var fieldErrs validators.FieldErrors
		if errors.As(err, &fieldErrs) {
			rerender(fieldErrs)
			return
		}
		h.handleError(w, r, err)
		return
	}

	sessionFrom(ctx).AddFlash(flashSuccess, fmt.Sprintf(app.MsgCourseCreated, course.Title))
	http.Redirect(w, r, "/courses", http.StatusFound)
}

func (h *Handler) editCoursePage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	course, err := h.services.CourseService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "course_form", "Edit course", courseFormFromCourse(course), nil)
}

func (h *Handler) updateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	payload, mismatches, err := decodeCoursePayload(form)
	if err == nil {
		err = requireVersion(payload.Version)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	rerender := func(errs validators.FieldErrors) {
		view := courseFormFromValues(fmt.Sprintf("/courses/%d", id), true, form)
		view.ID = id
		h.render(w, r, http.StatusOK, "course_form", "Edit course", view, errs)
	}

	if len(mismatches) > 0 {
		errs, err := h.withStructuralErrors(ctx, payload, mismatches)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		rerender(errs)
		return
	}

	course, err := h.services.CourseService.Update(ctx, id, payload, currentPrincipal(r).Username)
	if err != nil {
		var fieldErrs validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			rerender(fieldErrs)
		case errors.Is(err, service.ErrCourseNotFound):
			sessionFrom(ctx).AddFlash(flashError, app.MsgCourseNotFoundForUpdate)
			http.Redirect(w, r, "/courses", http.StatusFound)
		default:
			h.handleError(w, r, err)
		}
		return
	}

	sessionFrom(ctx).AddFlash(flashSuccess, fmt.Sprintf(app.MsgCourseUpdated, course.Title))
	http.Redirect(w, r, "/courses", http.StatusFound)
}

func (h *Handler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	course, err := h.services.CourseService.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			sessionFrom(ctx).AddFlash(flashError, app.MsgCourseNotFoundForDelete)
			http.Redirect(w, r, "/courses", http.StatusFound)
			return
		}
		h.handleError(w, r, err)
		return
	}

	sessionFrom(ctx).AddFlash(flashSuccess, fmt.Sprintf(app.MsgCourseDeleted, course.Title))
	http.Redirect(w, r, "/courses", http.StatusFound)
}

// enroll acknowledges an enrollment request of the current principal.
func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := strconv.ParseInt(form.Get("courseId"), 10, 64)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("%w: courseId %q", ErrMalformedForm, form.Get("courseId")))
		return
	}

	course, err := h.services.CourseService.Enroll(ctx, id, *currentPrincipal(r))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			sessionFrom(ctx).AddFlash(flashError, app.MsgCourseNotFound)
			http.Redirect(w, r, "/courses", http.StatusFound)
			return
		}
		h.handleError(w, r, err)
		return
	}

	sessionFrom(ctx).AddFlash(flashSuccess, fmt.Sprintf(app.MsgEnrolled, course.Title))
	http.Redirect(w, r, fmt.Sprintf("/courses/%d", course.ID), http.StatusFound)
}
