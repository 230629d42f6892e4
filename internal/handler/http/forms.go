package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/go-chi/chi/v5"
)

// parseID reads the {id} route parameter.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPathID, chi.URLParam(r, "id"))
	}
	return id, nil
}

func postForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}
	return r.PostForm, nil
}

// formVersion reads the hidden optimistic version. An absent field yields nil;
// edit handlers reject that with [requireVersion].
func formVersion(form url.Values) (*int64, error) {
	raw := strings.TrimSpace(form.Get("version"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrMalformedForm, raw)
	}
	return &v, nil
}

// requireVersion rejects an edit form posted without its hidden version, so
// that an update can never skip the concurrent-modification check.
func requireVersion(v *int64) error {
	if v == nil {
		return fmt.Errorf("%w: missing version", ErrMalformedForm)
	}
	return nil
}

// userForm holds the values shown in the registration and profile forms.
// The password is never echoed back.
type userForm struct {
	Action       string
	Registration bool
	ID           int64

	Username  string
	FirstName string
	LastName  string
	Email     string
	Version   string
}

func userFormFromValues(action string, form url.Values) userForm {
	return userForm{
		Action:    action,
		Username:  form.Get("username"),
		FirstName: form.Get("firstName"),
		LastName:  form.Get("lastName"),
		Email:     form.Get("email"),
		Version:   form.Get("version"),
	}
}

func userFormFromUser(u models.User) userForm {
	p := models.PayloadOf(u)
	return userForm{
		Action:    fmt.Sprintf("/users/%d", u.ID),
		ID:        u.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Version:   strconv.FormatInt(*p.Version, 10),
	}
}

// decodeRegistration binds the registration form. Only the declared fields
// are read, so a submitted "role" goes nowhere.
func decodeRegistration(form url.Values) models.RegistrationPayload {
	return models.RegistrationPayload{
		Username:  form.Get("username"),
		Password:  form.Get("password"),
		FirstName: form.Get("firstName"),
		LastName:  form.Get("lastName"),
		Email:     form.Get("email"),
	}
}

func decodeUserPayload(form url.Values) (models.UserPayload, error) {
	version, err := formVersion(form)
	if err != nil {
		return models.UserPayload{}, err
	}
	return models.UserPayload{
		Username:  form.Get("username"),
		Password:  form.Get("password"),
		FirstName: form.Get("firstName"),
		LastName:  form.Get("lastName"),
		Email:     form.Get("email"),
		Version:   version,
	}, nil
}

type courseForm struct {
	Action  string
	Editing bool
	ID      int64

	Title           string
	Description     string
	DurationInHours string
	Instructor      string
	Fees            string
	Version         string
}

func courseFormFromValues(action string, editing bool, form url.Values) courseForm {
	return courseForm{
		Action:          action,
		Editing:         editing,
		Title:           form.Get("title"),
		Description:     form.Get("description"),
		DurationInHours: form.Get("durationInHours"),
		Instructor:      form.Get("instructor"),
		Fees:            form.Get("fees"),
		Version:         form.Get("version"),
	}
}

func courseFormFromCourse(c models.Course) courseForm {
	p := models.CoursePayloadOf(c)
	f := courseForm{
		Action:      fmt.Sprintf("/courses/%d", c.ID),
		Editing:     true,
		ID:          c.ID,
		Title:       p.Title,
		Description: p.Description,
		Instructor:  p.Instructor,
		Version:     strconv.FormatInt(*p.Version, 10),
	}
	if p.DurationInHours != nil {
		f.DurationInHours = strconv.Itoa(*p.DurationInHours)
	}
	if p.Fees != nil {
		f.Fees = strconv.FormatFloat(*p.Fees, 'f', 2, 64)
	}
	return f
}

// decodeCoursePayload binds the course form. Numbers that do not parse are
// reported as typeMismatch field errors rather than failing the request.
func decodeCoursePayload(form url.Values) (models.CoursePayload, validators.FieldErrors, error) {
	var payload models.CoursePayload
	var mismatches validators.FieldErrors

	payload.Title = form.Get("title")
	payload.Description = form.Get("description")
	payload.Instructor = form.Get("instructor")

	if raw := strings.TrimSpace(form.Get("durationInHours")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			mismatches.Add("durationInHours", validators.CodeTypeMismatch,
				validators.MessageFor(payload, "durationInHours", validators.CodeTypeMismatch))
		} else {
			payload.DurationInHours = &hours
		}
	}

	if raw := strings.TrimSpace(form.Get("fees")); raw != "" {
		fees, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(fees) || math.IsInf(fees, 0) {
			mismatches.Add("fees", validators.CodeTypeMismatch,
				validators.MessageFor(payload, "fees", validators.CodeTypeMismatch))
		} else {
			payload.Fees = &fees
		}
	}

	version, err := formVersion(form)
	if err != nil {
		return models.CoursePayload{}, nil, err
	}
	payload.Version = version

	return payload, mismatches, nil
}

// withStructuralErrors runs the form validator over payload and appends its
// findings to mismatches, so that one round trip reports every problem.
func (h *Handler) withStructuralErrors(ctx context.Context, payload any, mismatches validators.FieldErrors) (validators.FieldErrors, error) {
	err := h.validator.Validate(ctx, payload)
	if err == nil {
		return mismatches, nil
	}

	var fieldErrs validators.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	// a field that failed to parse is nil in payload; drop the rules that
	// fire on it so only the typeMismatch is shown
	out := mismatches
	for _, fe := range fieldErrs {
		if !mismatches.Has(fe.Field, "") {
			out = append(out, fe)
		}
	}
	return out, nil
}
