package controllers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	mailsvc "github.com/candyland-dev/candyland-backend/internal/mail"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

type testEmailRequest struct {
	To string `json:"to" validate:"required,email"`
}

// ContactEmail forwards a storefront contact-form message to the shop inbox,
// with reply-to pointing at the visitor.
func ContactEmail(mailer *mailsvc.Mailer, contactInbox string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mailer == nil || contactInbox == "" {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeDependency, "contact mail is not configured"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		body := fmt.Sprintf(
			"<h3>Nuevo mensaje de contacto</h3><p><b>%s</b> (%s)</p><p>%s</p>",
			html.EscapeString(payload.Name),
			html.EscapeString(payload.Email),
			html.EscapeString(payload.Message),
		)
		receipt, err := mailer.Send(r.Context(), mailsvc.Message{
			To:      contactInbox,
			Subject: "Contacto: " + payload.Name,
			HTML:    &body,
			ReplyTo: &payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}

// TestEmail sends a fixed probe message so SMTP wiring can be verified.
func TestEmail(mailer *mailsvc.Mailer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mailer == nil {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeDependency, "mail is not configured"))
			return
		}

		var payload testEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		text := "Correo de prueba del backend de Candyland."
		receipt, err := mailer.Send(r.Context(), mailsvc.Message{
			To:      payload.To,
			Subject: "Candyland: correo de prueba",
			Text:    &text,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}
